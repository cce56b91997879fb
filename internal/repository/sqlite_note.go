package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pinboard/internal/db"
	"github.com/alexanderramin/pinboard/internal/domain"
)

// SQLiteNoteRepo implements NoteRepo. It accepts a *sql.DB or a *sql.Tx,
// so the service layer can compose it inside a UnitOfWork.
type SQLiteNoteRepo struct {
	db db.DBTX
}

func NewSQLiteNoteRepo(conn db.DBTX) *SQLiteNoteRepo {
	return &SQLiteNoteRepo{db: conn}
}

const noteColumns = `id, x, y, width, height, z_index, color, importance, is_locked,
	content, author, created_at, updated_at`

func (r *SQLiteNoteRepo) Create(ctx context.Context, n *domain.Note) error {
	query := `INSERT INTO notes (` + noteColumns + `, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM notes))`
	_, err := r.db.ExecContext(ctx, query,
		n.ID,
		n.X, n.Y,
		n.Width, n.Height,
		n.ZIndex,
		string(n.Color),
		string(n.Importance),
		boolToInt(n.IsLocked),
		n.Content,
		n.Author,
		formatTime(n.CreatedAt),
		formatTime(n.UpdatedAt),
	)
	if err != nil {
		return insertErr(err, "note")
	}
	if len(n.TagIDs) > 0 {
		if err := r.SetTags(ctx, n.ID, n.TagIDs); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteNoteRepo) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if err != nil {
		return nil, notFound(err, "note")
	}
	tags, err := r.tagIDs(ctx, `SELECT note_id, tag_id FROM note_tags WHERE note_id = ? ORDER BY tag_id`, id)
	if err != nil {
		return nil, err
	}
	n.TagIDs = tags[id]
	return n, nil
}

func (r *SQLiteNoteRepo) List(ctx context.Context) ([]*domain.Note, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY seq, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning note row: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notes: %w", err)
	}
	rows.Close()

	tags, err := r.tagIDs(ctx, `SELECT note_id, tag_id FROM note_tags ORDER BY note_id, tag_id`)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		n.TagIDs = tags[n.ID]
	}
	return notes, nil
}

func (r *SQLiteNoteRepo) Update(ctx context.Context, n *domain.Note) error {
	query := `UPDATE notes SET width = ?, height = ?, z_index = ?, color = ?, importance = ?,
		is_locked = ?, content = ?, author = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		n.Width, n.Height,
		n.ZIndex,
		string(n.Color),
		string(n.Importance),
		boolToInt(n.IsLocked),
		n.Content,
		n.Author,
		formatTime(n.UpdatedAt),
		n.ID,
	)
	if err != nil {
		return fmt.Errorf("updating note: %w", err)
	}
	return requireAffected(res, "note")
}

func (r *SQLiteNoteRepo) UpdatePosition(ctx context.Context, id string, x, y float64, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET x = ?, y = ?, updated_at = ? WHERE id = ?`, x, y, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("updating note position: %w", err)
	}
	return requireAffected(res, "note")
}

func (r *SQLiteNoteRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting note: %w", err)
	}
	return requireAffected(res, "note")
}

func (r *SQLiteNoteRepo) MaxZIndex(ctx context.Context) (int, error) {
	var z int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(z_index), 0) FROM notes`).Scan(&z); err != nil {
		return 0, fmt.Errorf("reading max z_index: %w", err)
	}
	return z, nil
}

func (r *SQLiteNoteRepo) SetTags(ctx context.Context, noteID string, tagIDs []string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM note_tags WHERE note_id = ?`, noteID); err != nil {
		return fmt.Errorf("clearing note tags: %w", err)
	}
	for _, tagID := range domain.NormalizeTagIDs(tagIDs) {
		// The SELECT yields no row for an unknown tag, so nothing is inserted.
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO note_tags (note_id, tag_id) SELECT ?, id FROM tags WHERE id = ?`,
			noteID, tagID)
		if err != nil {
			return fmt.Errorf("inserting note tag: %w", err)
		}
	}
	return nil
}

func (r *SQLiteNoteRepo) tagIDs(ctx context.Context, query string, args ...any) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing note tags: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var noteID, tagID string
		if err := rows.Scan(&noteID, &tagID); err != nil {
			return nil, fmt.Errorf("scanning note tag: %w", err)
		}
		out[noteID] = append(out[noteID], tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating note tags: %w", err)
	}
	return out, nil
}

func scanNote(s scanner) (*domain.Note, error) {
	var n domain.Note
	var color, importance, createdAt, updatedAt string
	var locked int

	err := s.Scan(
		&n.ID, &n.X, &n.Y, &n.Width, &n.Height, &n.ZIndex,
		&color, &importance, &locked,
		&n.Content, &n.Author, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.Color = domain.Color(color)
	n.Importance = domain.Importance(importance)
	n.IsLocked = intToBool(locked)
	if n.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if n.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &n, nil
}
