// Update command changes the play status of one game.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

func newUpdateCmd(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update the status of a game",
		Long: `Update sets the play status of the game with the given ID.

Example:
  catalog update 3 --status Playing`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			store, err := a.readyStore(cmd.Context())
			if err != nil {
				return err
			}
			n, err := store.UpdateStatus(cmd.Context(), id, status)
			if err != nil {
				return classify(fmt.Errorf("update game %d: %w", id, err))
			}
			if n == 0 {
				return userError(fmt.Errorf("game with ID %d: %w", id, types.ErrNotFound))
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Status of game ID %d updated to '%s'\n", id, status)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "new play status (required)")
	_ = cmd.MarkFlagRequired("status")

	return cmd
}
