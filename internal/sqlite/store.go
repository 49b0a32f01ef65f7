// Package sqlite implements the game catalog store on SQLite.
//
// The Store keeps no connection between calls. Every operation opens its own
// database handle, runs a single statement, and closes the handle before
// returning, on success and failure alike. The Store is not safe for
// concurrent operators: two processes or goroutines writing at once rely on
// SQLite's own file locking and busy timeout only.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

const driverName = "sqlite"

// Store implements types.Catalog over a single SQLite file.
type Store struct {
	path         string
	dsn          string
	strictStatus bool
	log          *zap.Logger
}

var _ types.Catalog = (*Store)(nil)

// NewStore validates config, creates the data directory if needed, and
// returns a Store for <DataDir>/<DBFile>. The database file itself is created
// lazily by the first operation. A nil logger disables logging.
func NewStore(config types.Config, logger *zap.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, &types.StorageError{Op: "create data dir", Err: err}
	}

	path := filepath.Join(dataDir, config.GetDBFile())
	return &Store{
		path:         path,
		dsn:          path + "?_pragma=busy_timeout(5000)",
		strictStatus: config.StrictStatus,
		log:          logger.With(zap.String("db", path)),
	}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// withConn opens a dedicated handle for one operation and releases it on
// every exit path. Failures from the engine, including a failed close, come
// back as *types.StorageError.
func (s *Store) withConn(ctx context.Context, op string, fn func(db *sql.DB) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	db, err := sql.Open(driverName, s.dsn)
	if err != nil {
		return &types.StorageError{Op: op, Err: err}
	}
	db.SetMaxOpenConns(1)
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = &types.StorageError{Op: op, Err: cerr}
		}
	}()

	if err := db.PingContext(ctx); err != nil {
		return &types.StorageError{Op: op, Err: err}
	}

	if err := fn(db); err != nil {
		return &types.StorageError{Op: op, Err: err}
	}
	return nil
}

// EnsureSchema creates the games table if it does not exist. An existing
// table that lacks any of the expected columns is reported as a
// *types.StorageError wrapping types.ErrSchema.
func (s *Store) EnsureSchema(ctx context.Context) error {
	err := s.withConn(ctx, "create games table", func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, createGames); err != nil {
			return err
		}
		return checkColumns(ctx, db)
	})
	if err != nil {
		s.log.Warn("ensure schema failed", zap.Error(err))
		return err
	}
	s.log.Debug("schema ready")
	return nil
}

// checkColumns verifies that the games table carries every column the store
// reads and writes.
func checkColumns(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, tableInfoGames)
	if err != nil {
		return err
	}
	defer rows.Close()

	present := make(map[string]bool)
	var found []string
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return fmt.Errorf("reading table info: %w", err)
		}
		present[name] = true
		found = append(found, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for _, col := range gameColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing columns %s (found %s)", types.ErrSchema,
			strings.Join(missing, ", "), strings.Join(found, ", "))
	}
	return nil
}

// AddGame inserts one record and returns its id. Empty values are stored as
// given; with strict status checking enabled an unknown status is rejected
// before the database is opened.
func (s *Store) AddGame(ctx context.Context, title, platform, genre, status string) (int64, error) {
	if s.strictStatus {
		if err := types.ValidateStatus(status); err != nil {
			return 0, err
		}
	}

	query, args, err := insertGameSQL(title, platform, genre, status)
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	err = s.withConn(ctx, "insert game", func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		s.log.Warn("add game failed", zap.String("title", title), zap.Error(err))
		return 0, err
	}

	s.log.Debug("game added", zap.Int64("id", id), zap.String("title", title))
	return id, nil
}

// ListGames returns a snapshot of all records ordered by title, then id.
// Titles compare with SQLite's BINARY collation: byte-wise, case-sensitive,
// and independent of locale, so "Zelda" sorts before "alan wake".
func (s *Store) ListGames(ctx context.Context) ([]types.GameRecord, error) {
	query, args, err := listGamesSQL()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	games := []types.GameRecord{}
	err = s.withConn(ctx, "list games", func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			g, err := scanGame(rows)
			if err != nil {
				return err
			}
			games = append(games, g)
		}
		return rows.Err()
	})
	if err != nil {
		s.log.Warn("list games failed", zap.Error(err))
		return nil, err
	}

	s.log.Debug("games listed", zap.Int("count", len(games)))
	return games, nil
}

// scanGame reads one row in gameColumns order. NULL text columns, which other
// tools may have written, read back as empty strings.
func scanGame(rows *sql.Rows) (types.GameRecord, error) {
	var g types.GameRecord
	var platform, genre, status sql.NullString
	if err := rows.Scan(&g.ID, &g.Title, &platform, &genre, &status); err != nil {
		return types.GameRecord{}, fmt.Errorf("scanning game: %w", err)
	}
	g.Platform = platform.String
	g.Genre = genre.String
	g.Status = status.String
	return g, nil
}

// UpdateStatus sets the status of one record. It returns 0 with a nil error
// when no record has the id.
func (s *Store) UpdateStatus(ctx context.Context, id int64, status string) (int64, error) {
	if s.strictStatus {
		if err := types.ValidateStatus(status); err != nil {
			return 0, err
		}
	}

	query, args, err := updateStatusSQL(id, status)
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	n, err := s.execAffecting(ctx, "update game status", query, args)
	if err != nil {
		return n, err
	}
	s.log.Debug("game status updated", zap.Int64("id", id), zap.String("status", status), zap.Int64("affected", n))
	return n, nil
}

// DeleteGame removes one record. It returns 0 with a nil error when no record
// has the id.
func (s *Store) DeleteGame(ctx context.Context, id int64) (int64, error) {
	query, args, err := deleteGameSQL(id)
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	n, err := s.execAffecting(ctx, "delete game", query, args)
	if err != nil {
		return n, err
	}
	s.log.Debug("game deleted", zap.Int64("id", id), zap.Int64("affected", n))
	return n, nil
}

// execAffecting runs a single-row mutation and returns the affected count.
// More than one affected row means the id column lost its uniqueness.
func (s *Store) execAffecting(ctx context.Context, op, query string, args []any) (int64, error) {
	var n int64
	err := s.withConn(ctx, op, func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	if err != nil {
		s.log.Warn(op+" failed", zap.Error(err))
		return 0, err
	}
	if n > 1 {
		s.log.Error("id matched more than one game", zap.String("op", op), zap.Int64("affected", n))
		return n, fmt.Errorf("%s: %w: %d rows affected", op, types.ErrIntegrity, n)
	}
	return n, nil
}
