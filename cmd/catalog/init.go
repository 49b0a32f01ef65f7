// Init command for the catalog CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize catalog storage",
		Long:  "Create the configuration and data directories, write a default config.yaml\nif missing, and create the games table. Safe to run more than once.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// setup already created the config dir and default config.yaml.
			store, err := a.readyStore(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Catalog initialized successfully")
			fmt.Fprintln(out, "  config:  ", a.configDir)
			fmt.Fprintln(out, "  database:", store.Path())
			return nil
		},
	}
}
