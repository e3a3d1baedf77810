// Package main provides the accounts CLI: the admin HTTP server, schema
// migrations and superuser bootstrap.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "accounts",
		Short:         "Multi-tenant business accounts service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(
		serveCommand(),
		migrateCommand(),
		createSuperuserCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
