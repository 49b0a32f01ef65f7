package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/gamecatalog/pkg/types"
)

// setupStore creates a Store in a temp directory with its schema in place.
func setupStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(context.Background()))
	return s
}

// countTables returns how many tables named name exist in the store's file.
func countTables(t *testing.T, s *Store, name string) int {
	t.Helper()
	db, err := sql.Open(driverName, s.dsn)
	require.NoError(t, err)
	defer db.Close()

	var n int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&n)
	require.NoError(t, err)
	return n
}

func titles(games []types.GameRecord) []string {
	out := make([]string, len(games))
	for i, g := range games {
		out[i] = g.Title
	}
	return out
}

func TestNewStore(t *testing.T) {
	t.Run("creates missing data dir", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "data")
		s, err := NewStore(types.Config{Backend: types.BackendSQLite, DataDir: dir}, nil)
		require.NoError(t, err)
		assert.DirExists(t, dir)
		assert.Equal(t, filepath.Join(dir, types.DefaultDBFile), s.Path())
	})

	t.Run("honours db file name", func(t *testing.T) {
		dir := t.TempDir()
		s, err := NewStore(types.Config{Backend: types.BackendSQLite, DataDir: dir, DBFile: "catalogo_jogos.db"}, nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "catalogo_jogos.db"), s.Path())
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		_, err := NewStore(types.Config{Backend: "postgres"}, nil)
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})

	t.Run("data dir blocked by a file is a storage error", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "occupied")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

		_, err := NewStore(types.Config{Backend: types.BackendSQLite, DataDir: file}, nil)
		require.Error(t, err)
		assert.True(t, types.IsStorageError(err))
	})

	t.Run("does not create the database file eagerly", func(t *testing.T) {
		s, err := NewStore(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, nil)
		require.NoError(t, err)
		assert.NoFileExists(t, s.Path())
	})
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx))
	assert.Equal(t, 1, countTables(t, s, tableGames))
}

func TestEnsureSchemaKeepsExistingRecords(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	_, err := s.AddGame(ctx, "Hades", "PC", "Roguelike", types.StatusPlaying)
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(ctx))

	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	assert.Len(t, games, 1)
}

func TestOperationsWithoutSchemaFail(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, nil)
	require.NoError(t, err)

	_, err = s.AddGame(ctx, "Celeste", "Switch", "Platformer", "")
	assert.True(t, types.IsStorageError(err), "got %v", err)

	_, err = s.ListGames(ctx)
	assert.True(t, types.IsStorageError(err), "got %v", err)

	// Retrying EnsureSchema recovers.
	require.NoError(t, s.EnsureSchema(ctx))
	_, err = s.AddGame(ctx, "Celeste", "Switch", "Platformer", "")
	assert.NoError(t, err)
}

func TestAddGameRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	id, err := s.AddGame(ctx, "Chrono Trigger", "SNES", "RPG", "Completed")
	require.NoError(t, err)
	assert.Positive(t, id)

	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, types.GameRecord{
		ID:       id,
		Title:    "Chrono Trigger",
		Platform: "SNES",
		Genre:    "RPG",
		Status:   "Completed",
	}, games[0])
}

func TestAddGameAcceptsEmptyValues(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	id, err := s.AddGame(ctx, "", "", "", "")
	require.NoError(t, err)

	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, types.GameRecord{ID: id}, games[0])
}

func TestListGamesEmpty(t *testing.T) {
	s := setupStore(t)

	games, err := s.ListGames(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, games)
	assert.Empty(t, games)
}

func TestListGamesOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("sorted by title not insertion", func(t *testing.T) {
		s := setupStore(t)
		for _, title := range []string{"Zelda", "Celeste", "Alan Wake"} {
			_, err := s.AddGame(ctx, title, "", "", "")
			require.NoError(t, err)
		}

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Alan Wake", "Celeste", "Zelda"}, titles(games))
	})

	t.Run("binary collation is case-sensitive", func(t *testing.T) {
		s := setupStore(t)
		for _, title := range []string{"alan wake", "Zelda", "celeste"} {
			_, err := s.AddGame(ctx, title, "", "", "")
			require.NoError(t, err)
		}

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Zelda", "alan wake", "celeste"}, titles(games))
	})

	t.Run("duplicate titles ordered by id", func(t *testing.T) {
		s := setupStore(t)
		first, err := s.AddGame(ctx, "Doom", "PC", "FPS", "")
		require.NoError(t, err)
		second, err := s.AddGame(ctx, "Doom", "PS5", "FPS", "")
		require.NoError(t, err)

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, games, 2)
		assert.Equal(t, first, games[0].ID)
		assert.Equal(t, second, games[1].ID)
	})
}

func TestListGamesReturnsDetachedCopies(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)
	_, err := s.AddGame(ctx, "Celeste", "Switch", "Platformer", types.StatusPlaying)
	require.NoError(t, err)

	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	games[0].Title = "mutated"

	again, err := s.ListGames(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Celeste", again[0].Title)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("nonexistent id affects nothing", func(t *testing.T) {
		s := setupStore(t)
		n, err := s.UpdateStatus(ctx, 9999, "Playing")
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("existing id changes only status", func(t *testing.T) {
		s := setupStore(t)
		id, err := s.AddGame(ctx, "Hollow Knight", "PC", "Metroidvania", types.StatusWantToPlay)
		require.NoError(t, err)
		other, err := s.AddGame(ctx, "Celeste", "Switch", "Platformer", types.StatusWantToPlay)
		require.NoError(t, err)

		n, err := s.UpdateStatus(ctx, id, "Playing")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, games, 2)
		byID := map[int64]types.GameRecord{}
		for _, g := range games {
			byID[g.ID] = g
		}
		assert.Equal(t, types.GameRecord{
			ID: id, Title: "Hollow Knight", Platform: "PC", Genre: "Metroidvania", Status: "Playing",
		}, byID[id])
		assert.Equal(t, types.StatusWantToPlay, byID[other].Status)
	})
}

func TestDeleteGame(t *testing.T) {
	ctx := context.Background()

	t.Run("removes exactly one record", func(t *testing.T) {
		s := setupStore(t)
		first, err := s.AddGame(ctx, "Alan Wake", "PC", "Horror", "")
		require.NoError(t, err)
		_, err = s.AddGame(ctx, "Zelda", "Switch", "Adventure", "")
		require.NoError(t, err)

		n, err := s.DeleteGame(ctx, first)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		games, err := s.ListGames(ctx)
		require.NoError(t, err)
		require.Len(t, games, 1)
		assert.NotEqual(t, first, games[0].ID)
	})

	t.Run("nonexistent id affects nothing", func(t *testing.T) {
		s := setupStore(t)
		n, err := s.DeleteGame(ctx, 42)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("second delete of same id affects nothing", func(t *testing.T) {
		s := setupStore(t)
		id, err := s.AddGame(ctx, "Celeste", "", "", "")
		require.NoError(t, err)

		n, err := s.DeleteGame(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = s.DeleteGame(ctx, id)
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	seen := map[int64]bool{}
	var last int64
	for i := 0; i < 5; i++ {
		id, err := s.AddGame(ctx, "Game", "", "", "")
		require.NoError(t, err)
		assert.False(t, seen[id], "id %d reused", id)
		assert.Greater(t, id, last)
		seen[id] = true
		last = id

		// Delete the newest record so a non-AUTOINCREMENT table would hand
		// the same rowid out again.
		if i%2 == 0 {
			_, err := s.DeleteGame(ctx, id)
			require.NoError(t, err)
		}
	}
	assert.Len(t, seen, 5)
}

func TestInjectionSafety(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	hostile := []string{
		`Robert'); DROP TABLE jogos;--`,
		`" OR "1"="1`,
		`O'Brien's "Quest" ; -- %_ \`,
	}
	for _, title := range hostile {
		_, err := s.AddGame(ctx, title, "PC'", `"RPG"`, "Playing; DELETE FROM jogos")
		require.NoError(t, err)
	}

	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, len(hostile))
	assert.ElementsMatch(t, hostile, titles(games))
	for _, g := range games {
		assert.Equal(t, "PC'", g.Platform)
		assert.Equal(t, `"RPG"`, g.Genre)
		assert.Equal(t, "Playing; DELETE FROM jogos", g.Status)
	}
	assert.Equal(t, 1, countTables(t, s, tableGames))
}

func TestNullColumnsReadAsEmpty(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	db, err := sql.Open(driverName, s.dsn)
	require.NoError(t, err)
	_, err = db.Exec("INSERT INTO jogos (title) VALUES (?)", "Legacy Row")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	games, err := s.ListGames(ctx)
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Legacy Row", games[0].Title)
	assert.Empty(t, games[0].Platform)
	assert.Empty(t, games[0].Genre)
	assert.Empty(t, games[0].Status)
}

func TestStrictStatus(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      t.TempDir(),
		StrictStatus: true,
	}, nil)
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(ctx))

	_, err = s.AddGame(ctx, "Celeste", "Switch", "Platformer", "Zerado")
	assert.ErrorIs(t, err, types.ErrInvalidStatus)
	assert.True(t, types.IsInputError(err))

	id, err := s.AddGame(ctx, "Celeste", "Switch", "Platformer", types.StatusWantToPlay)
	require.NoError(t, err)

	_, err = s.UpdateStatus(ctx, id, "done")
	assert.ErrorIs(t, err, types.ErrInvalidStatus)

	n, err := s.UpdateStatus(ctx, id, types.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestStorageFailureIsReported(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, nil)
	require.NoError(t, err)

	// A directory where the database file should be cannot be opened.
	require.NoError(t, os.Mkdir(s.Path(), 0o755))

	err = s.EnsureSchema(ctx)
	require.Error(t, err)
	assert.True(t, types.IsStorageError(err))

	_, err = s.AddGame(ctx, "Celeste", "", "", "")
	assert.True(t, types.IsStorageError(err))
	_, err = s.UpdateStatus(ctx, 1, "Playing")
	assert.True(t, types.IsStorageError(err))
	_, err = s.DeleteGame(ctx, 1)
	assert.True(t, types.IsStorageError(err))
}

func TestCanceledContextSkipsStorage(t *testing.T) {
	s := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.AddGame(ctx, "Celeste", "", "", "")
	assert.ErrorIs(t, err, context.Canceled)

	games, err := s.ListGames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestOperationsAreLogged(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.DebugLevel)
	s, err := NewStore(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, zap.New(core))
	require.NoError(t, err)
	require.NoError(t, s.EnsureSchema(ctx))

	id, err := s.AddGame(ctx, "Celeste", "", "", "")
	require.NoError(t, err)
	_, err = s.UpdateStatus(ctx, id, types.StatusPlaying)
	require.NoError(t, err)

	added := logs.FilterMessage("game added").All()
	require.Len(t, added, 1)
	assert.Equal(t, id, added[0].ContextMap()["id"])

	updated := logs.FilterMessage("game status updated").All()
	require.Len(t, updated, 1)
	assert.Equal(t, int64(1), updated[0].ContextMap()["affected"])
}

// execRaw runs statements directly against the store's file, bypassing the
// store, to build layouts the store itself never writes.
func execRaw(t *testing.T, s *Store, stmts ...string) {
	t.Helper()
	db, err := sql.Open(driverName, s.dsn)
	require.NoError(t, err)
	defer db.Close()
	for _, stmt := range stmts {
		_, err := db.Exec(stmt)
		require.NoError(t, err, stmt)
	}
}

func TestEnsureSchemaRejectsFirstReleaseLayout(t *testing.T) {
	ctx := context.Background()
	s, err := NewStore(types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
		DBFile:  "catalogo_jogos.db",
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	execRaw(t, s,
		`CREATE TABLE jogos (
			id_jogo INTEGER PRIMARY KEY AUTOINCREMENT,
			titulo TEXT NOT NULL,
			plataforma TEXT,
			genero TEXT,
			status TEXT
		)`,
		`INSERT INTO jogos (titulo, plataforma, genero, status) VALUES ('Celeste', 'PC', 'Platformer', 'Completed')`,
	)

	err = s.EnsureSchema(ctx)
	require.Error(t, err)
	assert.True(t, types.IsStorageError(err))
	assert.ErrorIs(t, err, types.ErrSchema)
	assert.Contains(t, err.Error(), "id, title, platform, genre")
	assert.Contains(t, err.Error(), "id_jogo")
}

func TestAffectingMoreThanOneRowIsAnIntegrityError(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.DebugLevel)
	s, err := NewStore(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, zap.New(core))
	require.NoError(t, err)

	// Without a primary key nothing stops two rows from sharing an id.
	execRaw(t, s,
		`CREATE TABLE jogos (id INTEGER, title TEXT NOT NULL, platform TEXT, genre TEXT, status TEXT)`,
		`INSERT INTO jogos (id, title, status) VALUES (1, 'Celeste', 'Want to Play')`,
		`INSERT INTO jogos (id, title, status) VALUES (1, 'Hades', 'Want to Play')`,
	)
	require.NoError(t, s.EnsureSchema(ctx))

	n, err := s.UpdateStatus(ctx, 1, types.StatusPlaying)
	assert.Equal(t, int64(2), n)
	assert.ErrorIs(t, err, types.ErrIntegrity)
	assert.Len(t, logs.FilterLevelExact(zap.ErrorLevel).All(), 1)

	n, err = s.DeleteGame(ctx, 1)
	assert.Equal(t, int64(2), n)
	assert.ErrorIs(t, err, types.ErrIntegrity)

	errorLogs := logs.FilterLevelExact(zap.ErrorLevel).All()
	require.Len(t, errorLogs, 2)
	assert.Equal(t, "delete game", errorLogs[1].ContextMap()["op"])
	assert.Equal(t, int64(2), errorLogs[1].ContextMap()["affected"])
}
