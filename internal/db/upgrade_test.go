package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMigrate_UpgradePath_FirstReleaseSchema upgrades a database created by
// the first release: no author or seq columns and a five-color palette.
// Existing notes and their tags must survive, gain the new columns, and be
// numbered in their original insertion order.
func TestMigrate_UpgradePath_FirstReleaseSchema(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`PRAGMA foreign_keys = ON`)
	require.NoError(t, err)

	legacy := []string{
		`CREATE TABLE notes (
			id          TEXT PRIMARY KEY,
			x           REAL NOT NULL DEFAULT 0,
			y           REAL NOT NULL DEFAULT 0,
			width       REAL NOT NULL DEFAULT 200 CHECK(width >= 180),
			height      REAL NOT NULL DEFAULT 200 CHECK(height >= 150),
			z_index     INTEGER NOT NULL DEFAULT 0,
			color       TEXT NOT NULL DEFAULT 'yellow'
			            CHECK(color IN ('yellow','green','blue','pink','purple')),
			importance  TEXT NOT NULL DEFAULT 'medium'
			            CHECK(importance IN ('low','medium','high')),
			is_locked   INTEGER NOT NULL DEFAULT 0,
			content     TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL
		)`,
		`CREATE TABLE tags (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL COLLATE NOCASE UNIQUE,
			color       TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		)`,
		`CREATE TABLE note_tags (
			note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
			tag_id  TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
			PRIMARY KEY (note_id, tag_id)
		)`,
		`INSERT INTO notes (id, x, y, z_index, color, content, created_at, updated_at)
			VALUES ('second', 10, 20, 3, 'blue', 'inserted first', ?, ?)`,
		`INSERT INTO notes (id, x, y, z_index, is_locked, content, created_at, updated_at)
			VALUES ('first', 30, 40, 1, 1, 'inserted second', ?, ?)`,
		`INSERT INTO tags (id, name, created_at) VALUES ('t1', 'work', ?)`,
		`INSERT INTO note_tags (note_id, tag_id) VALUES ('second', 't1')`,
	}
	for i, stmt := range legacy {
		var args []any
		switch {
		case i == 3 || i == 4:
			args = []any{stamp, stamp}
		case i == 5:
			args = []any{stamp}
		}
		_, err := db.Exec(stmt, args...)
		require.NoError(t, err, "legacy statement %d failed", i)
	}

	require.NoError(t, Migrate(db), "migration on legacy schema should succeed")

	// Data survived.
	var content, color string
	var x float64
	require.NoError(t, db.QueryRow(`SELECT content, color, x FROM notes WHERE id = 'second'`).Scan(&content, &color, &x))
	assert.Equal(t, "inserted first", content)
	assert.Equal(t, "blue", color)
	assert.Equal(t, 10.0, x)

	var locked int
	require.NoError(t, db.QueryRow(`SELECT is_locked FROM notes WHERE id = 'first'`).Scan(&locked))
	assert.Equal(t, 1, locked)

	var tagged int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM note_tags WHERE note_id = 'second'`).Scan(&tagged))
	assert.Equal(t, 1, tagged, "associations survive the table rebuild")

	// New columns have defaults and seq follows insertion order.
	var author string
	var seqSecond, seqFirst int
	require.NoError(t, db.QueryRow(`SELECT author, seq FROM notes WHERE id = 'second'`).Scan(&author, &seqSecond))
	require.NoError(t, db.QueryRow(`SELECT seq FROM notes WHERE id = 'first'`).Scan(&seqFirst))
	assert.Equal(t, "", author)
	assert.Equal(t, 1, seqSecond)
	assert.Equal(t, 2, seqFirst)

	// The widened palette is accepted.
	_, err = db.Exec(`UPDATE notes SET color = 'orange' WHERE id = 'first'`)
	assert.NoError(t, err)

	// Foreign keys are back on after the rebuild.
	var fk int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)

	// A second run changes nothing.
	require.NoError(t, Migrate(db))
	require.NoError(t, db.QueryRow(`SELECT seq FROM notes WHERE id = 'first'`).Scan(&seqFirst))
	assert.Equal(t, 2, seqFirst)
}
