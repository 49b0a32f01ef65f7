package sqlite

import (
	sq "github.com/Masterminds/squirrel"
)

// tableGames holds one row per cataloged game. Files written by the first
// catalog release use the same table name with Portuguese column names
// (id_jogo, titulo, ...); EnsureSchema rejects that layout rather than
// reading it.
const tableGames = "jogos"

// Column names for the games table.
const (
	colID       = "id"
	colTitle    = "title"
	colPlatform = "platform"
	colGenre    = "genre"
	colStatus   = "status"
)

// createGames is the only DDL the store runs. AUTOINCREMENT keeps ids
// monotonic and prevents reuse of ids freed by deletes.
const createGames = `CREATE TABLE IF NOT EXISTS jogos (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    platform TEXT,
    genre TEXT,
    status TEXT
);`

// tableInfoGames lists the columns of an existing games table.
const tableInfoGames = `PRAGMA table_info(jogos)`

// gameColumns is the scan order used by listGamesSQL and scanGame.
var gameColumns = []string{colID, colTitle, colPlatform, colGenre, colStatus}

// Statement builders. squirrel emits "?" placeholders and returns the values
// as arguments, so operator text is never spliced into SQL.

func insertGameSQL(title, platform, genre, status string) (string, []any, error) {
	return sq.Insert(tableGames).
		Columns(colTitle, colPlatform, colGenre, colStatus).
		Values(title, platform, genre, status).
		ToSql()
}

func listGamesSQL() (string, []any, error) {
	return sq.Select(gameColumns...).
		From(tableGames).
		OrderBy(colTitle, colID).
		ToSql()
}

func updateStatusSQL(id int64, status string) (string, []any, error) {
	return sq.Update(tableGames).
		Set(colStatus, status).
		Where(sq.Eq{colID: id}).
		ToSql()
}

func deleteGameSQL(id int64) (string, []any, error) {
	return sq.Delete(tableGames).
		Where(sq.Eq{colID: id}).
		ToSql()
}
