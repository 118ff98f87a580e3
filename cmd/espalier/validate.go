package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/espalier/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a machine definition for consistency",
	Long:  `Parses the machine document and reports every structural problem: duplicate names, missing or ambiguous initial state, dangling transition references, token collisions.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Machine is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	if !cmd.Flags().Changed("file") && len(args) > 0 {
		file = args[0]
	}

	def, err := schema.Load(file)
	if err != nil {
		return err
	}

	// Building exercises the engine's own invariants on top of the
	// document-level checks.
	if _, err := def.Machine(); err != nil {
		return err
	}
	return nil
}
