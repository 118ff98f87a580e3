package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	adapter "github.com/aretw0/espalier/internal/adapters/http"
	"github.com/aretw0/espalier/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve machine introspection over HTTP",
	Long:  `Loads a machine definition and serves its transition table, graph exports and Prometheus metrics on the given address.`,
	Run: func(cmd *cobra.Command, args []string) {
		file, _ := cmd.Flags().GetString("file")
		addr, _ := cmd.Flags().GetString("addr")

		logger := logging.New(slog.LevelInfo)

		machine, err := loadMachine(file)
		if err != nil {
			fmt.Printf("Error loading machine: %v\n", err)
			os.Exit(1)
		}

		logger.Info("serving machine introspection", "machine", machine.Name(), "addr", addr)
		if err := http.ListenAndServe(addr, adapter.NewHandler(machine)); err != nil {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8460", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
