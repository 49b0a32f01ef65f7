// Shared helpers for catalog CLI commands.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/gamecatalog/internal/paths"
	"github.com/mesh-intelligence/gamecatalog/internal/sqlite"
	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for an error returned by a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }

func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error { return &exitError{code: exitUserError, err: err} }

func sysError(err error) error { return &exitError{code: exitSysError, err: err} }

// classify maps a catalog error to an exit code: bad input and missing
// records are the operator's to fix, everything else is a system failure.
func classify(err error) error {
	if types.IsInputError(err) || errors.Is(err, types.ErrNotFound) {
		return userError(err)
	}
	return sysError(err)
}

// exitCode returns the process exit code for err. Errors that did not pass
// through userError or sysError come from cobra itself (bad flags or
// arguments) and count as user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// newStore resolves the data directory and returns a store for it. The
// schema is not touched.
func (a *app) newStore() (*sqlite.Store, error) {
	dataDir, err := paths.ResolveDataDir(a.flagDataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, sysError(fmt.Errorf("resolve data dir: %w", err))
	}
	store, err := sqlite.NewStore(storeConfig(a.cfg, dataDir), a.logger)
	if err != nil {
		return nil, classifyOpen(err)
	}
	return store, nil
}

// classifyOpen treats config validation failures as user errors.
func classifyOpen(err error) error {
	if types.IsStorageError(err) {
		return sysError(err)
	}
	return userError(fmt.Errorf("invalid config: %w", err))
}

// readyStore returns a store whose schema is known to exist, mirroring the
// menu, which ensures the schema before anything else.
func (a *app) readyStore(ctx context.Context) (*sqlite.Store, error) {
	store, err := a.newStore()
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		return nil, sysError(err)
	}
	return store, nil
}

// parseIDArg parses a positional id argument.
func parseIDArg(raw string) (int64, error) {
	id, err := types.ParseID(raw)
	if err != nil {
		return 0, userError(err)
	}
	return id, nil
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}
