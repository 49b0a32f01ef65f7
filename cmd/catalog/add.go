// Add command creates a new game record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

func newAddCmd(a *app) *cobra.Command {
	var title, platform, genre, status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a game to the catalog",
		Long: `Add inserts one game and prints its new ID.

Example:
  catalog add --title "Chrono Trigger" --platform SNES --genre RPG --status Completed
  catalog add --title "Celeste" --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := types.ValidateTitle(title); err != nil {
				return userError(err)
			}

			store, err := a.readyStore(cmd.Context())
			if err != nil {
				return err
			}
			id, err := store.AddGame(cmd.Context(), title, platform, genre, status)
			if err != nil {
				return classify(fmt.Errorf("add game: %w", err))
			}

			if asJSON {
				return printJSON(cmd.OutOrStdout(), types.GameRecord{
					ID: id, Title: title, Platform: platform, Genre: genre, Status: status,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added game %d: %s\n", id, title)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "game title (required)")
	cmd.Flags().StringVar(&platform, "platform", "", "platform (PC, PS5, ...)")
	cmd.Flags().StringVar(&genre, "genre", "", "genre (RPG, FPS, ...)")
	cmd.Flags().StringVar(&status, "status", "", "play status (Playing, Completed, Want to Play)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the new game as JSON")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}
