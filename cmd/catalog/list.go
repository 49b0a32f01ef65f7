// List command prints every game ordered by title.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gamecatalog/internal/menu"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all games ordered by title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.readyStore(cmd.Context())
			if err != nil {
				return err
			}
			games, err := store.ListGames(cmd.Context())
			if err != nil {
				return classify(fmt.Errorf("list games: %w", err))
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), games)
			}
			menu.RenderTable(cmd.OutOrStdout(), games)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print games as a JSON array")

	return cmd
}
