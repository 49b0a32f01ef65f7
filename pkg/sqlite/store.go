// Package sqlite is the public entry point to the SQLite game catalog. It
// exposes the store constructor while keeping implementation details
// internal.
package sqlite

import (
	"go.uber.org/zap"

	"github.com/mesh-intelligence/gamecatalog/internal/sqlite"
	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

// NewCatalog returns a Catalog stored in <config.DataDir>/<config.DBFile>.
// Call EnsureSchema before any other operation. A nil logger disables
// logging.
//
// Example:
//
//	catalog, err := sqlite.NewCatalog(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: "games",
//	}, nil)
//	if err != nil {
//	    return err
//	}
//	if err := catalog.EnsureSchema(ctx); err != nil {
//	    return err
//	}
//	id, err := catalog.AddGame(ctx, "Chrono Trigger", "SNES", "RPG", types.StatusCompleted)
func NewCatalog(config types.Config, logger *zap.Logger) (types.Catalog, error) {
	store, err := sqlite.NewStore(config, logger)
	if err != nil {
		return nil, err
	}
	return store, nil
}
