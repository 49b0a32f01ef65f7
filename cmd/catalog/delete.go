// Delete command removes one game after confirmation.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/gamecatalog/internal/menu"
	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

func newDeleteCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a game by ID",
		Long: `Delete removes the game with the given ID. This is a hard delete.

Without --yes the command asks for confirmation on standard input.

Example:
  catalog delete 3
  catalog delete 3 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !yes {
				fmt.Fprintf(out, "Are you sure you want to delete game ID %d? (y/n): ", id)
				answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return sysError(fmt.Errorf("read confirmation: %w", err))
				}
				// End of input without an answer cancels.
				if !menu.Confirmed(answer) {
					fmt.Fprintln(out, "Operation cancelled.")
					return nil
				}
			}

			store, err := a.readyStore(cmd.Context())
			if err != nil {
				return err
			}
			n, err := store.DeleteGame(cmd.Context(), id)
			if err != nil {
				return classify(fmt.Errorf("delete game %d: %w", id, err))
			}
			if n == 0 {
				return userError(fmt.Errorf("game with ID %d: %w", id, types.ErrNotFound))
			}

			fmt.Fprintf(out, "Deleted game %d\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")

	return cmd
}
