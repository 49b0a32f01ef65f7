package types

import "context"

// Catalog is the record store. Each method is an independent unit of work:
// no call depends on state left behind by a previous one.
type Catalog interface {
	// EnsureSchema creates the games table if it is absent. Idempotent.
	EnsureSchema(ctx context.Context) error

	// AddGame inserts one record and returns its newly assigned id.
	AddGame(ctx context.Context, title, platform, genre, status string) (int64, error)

	// ListGames returns every record ordered by title. An empty catalog
	// yields an empty slice, not an error.
	ListGames(ctx context.Context) ([]GameRecord, error)

	// UpdateStatus sets the status of the record with the given id and
	// returns the number of records affected. Zero means no such record.
	UpdateStatus(ctx context.Context, id int64, status string) (int64, error)

	// DeleteGame removes the record with the given id and returns the number
	// of records affected. Zero means no such record.
	DeleteGame(ctx context.Context, id int64) (int64, error)
}
