// Package menu implements the interactive text menu for the game catalog.
//
// The menu collects raw values from the operator, validates the ones that
// need a shape (ids, titles), and calls into a types.Catalog. Every outcome,
// including storage failures, is printed and the loop continues; only the
// quit option or the end of input stops it. The delete confirmation lives
// here, never in the store.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

// Menu options.
const (
	optionAdd    = "1"
	optionList   = "2"
	optionUpdate = "3"
	optionDelete = "4"
	optionQuit   = "0"
)

// Menu drives one interactive session against a Catalog.
type Menu struct {
	catalog types.Catalog
	in      *bufio.Reader
	out     io.Writer
	log     *zap.Logger
}

// New returns a Menu reading operator input from in and writing to out.
// A nil logger disables logging.
func New(catalog types.Catalog, in io.Reader, out io.Writer, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{
		catalog: catalog,
		in:      bufio.NewReader(in),
		out:     out,
		log:     logger,
	}
}

// Run ensures the schema, then shows the menu until the operator quits or
// input ends. Catalog errors are reported to the operator and never end the
// loop. Run returns a non-nil error only when ctx is done or reading input
// fails for a reason other than end of file.
func (m *Menu) Run(ctx context.Context) error {
	if err := m.catalog.EnsureSchema(ctx); err != nil {
		m.printf("An error occurred while creating the games table: %v\n", err)
	} else {
		m.println("Games table checked/created successfully.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		m.printMenu()
		choice, err := m.prompt("Choose an option: ")
		if err != nil {
			return m.endOfInput(err)
		}

		m.log.Debug("menu option selected", zap.String("option", choice))
		switch choice {
		case optionAdd:
			err = m.addGame(ctx)
		case optionList:
			m.listGames(ctx)
		case optionUpdate:
			err = m.updateStatus(ctx)
		case optionDelete:
			err = m.deleteGame(ctx)
		case optionQuit:
			m.println("Exiting... See you later!")
			return nil
		default:
			m.println("Invalid option. Try again.")
		}
		if err != nil {
			return m.endOfInput(err)
		}
	}
}

func (m *Menu) printMenu() {
	m.println("\n===== GAME CATALOG =====")
	m.println("1. Add a new game")
	m.println("2. List all games")
	m.println("3. Update a game's status")
	m.println("4. Delete a game")
	m.println("0. Quit")
}

// endOfInput turns a closed input stream into a clean exit.
func (m *Menu) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		m.println("")
		return nil
	}
	return fmt.Errorf("read input: %w", err)
}

func (m *Menu) addGame(ctx context.Context) error {
	m.println("\n--- Add New Game ---")
	title, err := m.prompt("Title: ")
	if err != nil {
		return err
	}
	platform, err := m.prompt("Platform (PC, PS5, etc.): ")
	if err != nil {
		return err
	}
	genre, err := m.prompt("Genre (RPG, FPS, etc.): ")
	if err != nil {
		return err
	}
	status, err := m.prompt("Status (" + strings.Join(types.Statuses(), ", ") + "): ")
	if err != nil {
		return err
	}

	if err := types.ValidateTitle(title); err != nil {
		m.reportInput(err)
		return nil
	}

	id, err := m.catalog.AddGame(ctx, title, platform, genre, status)
	if err != nil {
		m.report("adding the game", err)
		return nil
	}
	m.printf("Game '%s' added successfully with ID %d!\n", title, id)
	return nil
}

func (m *Menu) listGames(ctx context.Context) {
	m.println("\n--- My Game Catalog ---")
	games, err := m.catalog.ListGames(ctx)
	if err != nil {
		m.report("listing the games", err)
		return
	}
	RenderTable(m.out, games)
}

func (m *Menu) updateStatus(ctx context.Context) error {
	m.println("\n--- Update Game Status ---")
	m.listGames(ctx)

	raw, err := m.prompt("\nEnter the ID of the game to update: ")
	if err != nil {
		return err
	}
	id, err := types.ParseID(raw)
	if err != nil {
		m.reportInput(err)
		return nil
	}
	status, err := m.prompt("Enter the new status (" + strings.Join(types.Statuses(), ", ") + "): ")
	if err != nil {
		return err
	}

	n, err := m.catalog.UpdateStatus(ctx, id, status)
	if err != nil {
		m.report("updating the game", err)
		return nil
	}
	if n == 0 {
		m.printf("Error: game with ID %d not found.\n", id)
		return nil
	}
	m.printf("Status of game ID %d updated to '%s'!\n", id, status)
	return nil
}

func (m *Menu) deleteGame(ctx context.Context) error {
	m.println("\n--- Delete Game ---")
	m.listGames(ctx)

	raw, err := m.prompt("\nEnter the ID of the game to DELETE: ")
	if err != nil {
		return err
	}
	id, err := types.ParseID(raw)
	if err != nil {
		m.reportInput(err)
		return nil
	}
	answer, err := m.prompt(fmt.Sprintf("Are you sure you want to delete game ID %d? (y/n): ", id))
	if err != nil {
		return err
	}
	if !Confirmed(answer) {
		m.println("Operation cancelled.")
		return nil
	}

	n, err := m.catalog.DeleteGame(ctx, id)
	if err != nil {
		m.report("deleting the game", err)
		return nil
	}
	if n == 0 {
		m.printf("Error: game with ID %d not found.\n", id)
		return nil
	}
	m.printf("Game ID %d DELETED successfully.\n", id)
	return nil
}

// Confirmed reports whether answer is an affirmative reply to a (y/n) prompt.
func Confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

// prompt prints label and returns the next input line without surrounding
// whitespace. A final line without a newline is still returned; io.EOF is
// returned only when nothing is left to read.
func (m *Menu) prompt(label string) (string, error) {
	fmt.Fprint(m.out, label)
	line, err := m.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (m *Menu) reportInput(err error) {
	m.log.Debug("invalid input", zap.Error(err))
	switch {
	case errors.Is(err, types.ErrInvalidID):
		m.println("Invalid input. The ID must be a number.")
	default:
		m.printf("Invalid input: %v\n", err)
	}
}

// report prints a failure from the catalog. Input errors raised by the
// catalog itself (strict status checking) get the input wording.
func (m *Menu) report(action string, err error) {
	if types.IsInputError(err) {
		m.reportInput(err)
		return
	}
	m.printf("An error occurred while %s: %v\n", action, err)
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}
