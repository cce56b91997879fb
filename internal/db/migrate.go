package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateNotesColorPalette(db); err != nil {
		return fmt.Errorf("migrating notes color constraint: %w", err)
	}
	if err := migrateBackfillNoteSeq(db); err != nil {
		return fmt.Errorf("backfilling note seq values: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS notes (
		id          TEXT PRIMARY KEY,
		x           REAL NOT NULL DEFAULT 0,
		y           REAL NOT NULL DEFAULT 0,
		width       REAL NOT NULL DEFAULT 200 CHECK(width >= 180),
		height      REAL NOT NULL DEFAULT 200 CHECK(height >= 150),
		z_index     INTEGER NOT NULL DEFAULT 0,
		color       TEXT NOT NULL DEFAULT 'yellow'
		            CHECK(color IN ('yellow','green','blue','pink','purple','orange')),
		importance  TEXT NOT NULL DEFAULT 'medium'
		            CHECK(importance IN ('low','medium','high')),
		is_locked   INTEGER NOT NULL DEFAULT 0,
		content     TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_notes_z ON notes(z_index)`,

	`CREATE TABLE IF NOT EXISTS tags (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL COLLATE NOCASE UNIQUE,
		color       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS note_tags (
		note_id TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
		tag_id  TEXT NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
		PRIMARY KEY (note_id, tag_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_note_tags_tag ON note_tags(tag_id)`,

	// Provenance and insertion order arrived after the first release.
	`ALTER TABLE notes ADD COLUMN author TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE notes ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_notes_seq ON notes(seq)`,
}

// migrateNotesColorPalette rebuilds the notes table when its color CHECK
// predates the 'orange' palette entry. SQLite cannot alter a constraint in
// place.
func migrateNotesColorPalette(db *sql.DB) error {
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquiring db connection: %w", err)
	}
	defer conn.Close()

	var createSQL string
	if err := conn.QueryRowContext(ctx, `SELECT sql FROM sqlite_master WHERE type = 'table' AND name = 'notes'`).Scan(&createSQL); err != nil {
		return fmt.Errorf("loading notes schema: %w", err)
	}
	if strings.Contains(strings.ToLower(createSQL), "'orange'") {
		return nil
	}

	if _, err := conn.ExecContext(ctx, `PRAGMA foreign_keys = OFF`); err != nil {
		return fmt.Errorf("disabling foreign keys: %w", err)
	}
	defer func() {
		_, _ = conn.ExecContext(ctx, `PRAGMA foreign_keys = ON`)
	}()

	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	steps := []struct {
		what string
		stmt string
	}{
		{"dropping stale notes_new", `DROP TABLE IF EXISTS notes_new`},
		{"creating notes_new", `CREATE TABLE notes_new (
			id          TEXT PRIMARY KEY,
			x           REAL NOT NULL DEFAULT 0,
			y           REAL NOT NULL DEFAULT 0,
			width       REAL NOT NULL DEFAULT 200 CHECK(width >= 180),
			height      REAL NOT NULL DEFAULT 200 CHECK(height >= 150),
			z_index     INTEGER NOT NULL DEFAULT 0,
			color       TEXT NOT NULL DEFAULT 'yellow'
			            CHECK(color IN ('yellow','green','blue','pink','purple','orange')),
			importance  TEXT NOT NULL DEFAULT 'medium'
			            CHECK(importance IN ('low','medium','high')),
			is_locked   INTEGER NOT NULL DEFAULT 0,
			content     TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL,
			updated_at  TEXT NOT NULL,
			author      TEXT NOT NULL DEFAULT '',
			seq         INTEGER NOT NULL DEFAULT 0
		)`},
		{"copying notes data", `INSERT INTO notes_new (
			id, x, y, width, height, z_index, color, importance, is_locked,
			content, created_at, updated_at, author, seq
		) SELECT
			id, x, y, width, height, z_index, color, importance, is_locked,
			content, created_at, updated_at, author, seq
		FROM notes`},
		{"dropping old notes", `DROP TABLE notes`},
		{"renaming notes_new", `ALTER TABLE notes_new RENAME TO notes`},
		{"recreating idx_notes_z", `CREATE INDEX IF NOT EXISTS idx_notes_z ON notes(z_index)`},
		{"recreating idx_notes_seq", `CREATE INDEX IF NOT EXISTS idx_notes_seq ON notes(seq)`},
	}
	for _, s := range steps {
		if _, err := tx.ExecContext(ctx, s.stmt); err != nil {
			return fmt.Errorf("%s: %w", s.what, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing notes migration: %w", err)
	}
	committed = true
	return nil
}

// migrateBackfillNoteSeq numbers notes that predate the seq column in
// their original insertion (rowid) order, after every numbered note.
// Idempotent: does nothing once every note has seq > 0.
func migrateBackfillNoteSeq(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE seq = 0`).Scan(&count); err != nil {
		return fmt.Errorf("checking notes seq: %w", err)
	}
	if count == 0 {
		return nil
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM notes WHERE seq = 0 ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("listing unnumbered notes: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning note id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating unnumbered notes: %w", err)
	}

	var next int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM notes`).Scan(&next); err != nil {
		return fmt.Errorf("reading max seq: %w", err)
	}
	for _, id := range ids {
		if _, err := db.ExecContext(ctx, `UPDATE notes SET seq = ? WHERE id = ? AND seq = 0`, next, id); err != nil {
			return fmt.Errorf("updating note seq: %w", err)
		}
		next++
	}
	return nil
}
