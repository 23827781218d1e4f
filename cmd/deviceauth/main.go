package main

import (
	"os"

	"github.com/spf13/cobra"

	"deviceauth/internal/interfaces/cli/migrate"
	"deviceauth/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deviceauth",
		Short: "Device authorization token service",
		Long:  `Deviceauth issues, validates, refreshes and revokes opaque device access tokens over HTTP.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
