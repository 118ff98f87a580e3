package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/presentation/graph"
	"github.com/aretw0/espalier/pkg/schema"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the machine graph visualization",
	Long:  `Loads a machine definition and outputs a Mermaid stateDiagram (default) or a Graphviz DOT digraph representing its transition table.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		if !cmd.Flags().Changed("file") && len(args) > 0 {
			file = args[0]
		}
		format, _ := cmd.Flags().GetString("format")

		machine, err := loadMachine(file)
		if err != nil {
			fmt.Printf("Error loading machine: %v\n", err)
			os.Exit(1)
		}

		switch format {
		case "mermaid":
			fmt.Print(graph.Mermaid(machine.Transitions(), machine.InitialStateName()))
		case "dot":
			fmt.Print(graph.Dot(machine.Name(), machine.Transitions(), machine.InitialStateName()))
		default:
			fmt.Printf("Unsupported format %q (want mermaid or dot)\n", format)
			os.Exit(1)
		}
	},
}

func init() {
	graphCmd.Flags().String("format", "mermaid", "Output format: mermaid or dot")
	rootCmd.AddCommand(graphCmd)
}

func loadMachine(file string) (*espalier.Machine, error) {
	def, err := schema.Load(file)
	if err != nil {
		return nil, err
	}
	return def.Machine()
}
