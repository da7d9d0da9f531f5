// Package storage persists form drafts locally so an interrupted session can
// be resumed or replayed with `mutasi submit`.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/hwgcc/mutasi-flow/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ErrDraftNotFound is returned when no draft exists for an id.
var ErrDraftNotFound = errors.New("draft tidak ditemukan")

// DraftStore is the SQLite-backed draft repository.
type DraftStore struct {
	db *sql.DB
}

// Open opens (creating if needed) the draft database at dbPath.
func Open(dbPath string) (*DraftStore, error) {
	if dbPath == "" {
		return nil, errors.New("dbPath is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &DraftStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *DraftStore) Close() error {
	return s.db.Close()
}

func (s *DraftStore) migrate() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS drafts (
		id TEXT PRIMARY KEY,
		no_form TEXT NOT NULL DEFAULT '',
		tanggal TEXT NOT NULL DEFAULT '',
		outlet_pengirim_id TEXT NOT NULL DEFAULT '',
		outlet_pengirim TEXT NOT NULL DEFAULT '',
		outlet_penerima_id TEXT NOT NULL DEFAULT '',
		outlet_penerima TEXT NOT NULL DEFAULT '',
		dibuat_oleh TEXT NOT NULL DEFAULT '',
		disetujui_oleh TEXT NOT NULL DEFAULT '',
		diterima_oleh TEXT NOT NULL DEFAULT '',
		items_json TEXT NOT NULL DEFAULT '[]',
		attachment_path TEXT NOT NULL DEFAULT '',
		updated_at TIMESTAMP NOT NULL
	)`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create drafts table: %w", err)
	}
	return nil
}

// Save inserts or updates a draft. A draft without an ID gets one assigned;
// the (possibly new) ID is returned.
func (s *DraftStore) Save(ctx context.Context, d model.Draft) (string, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.UpdatedAt = time.Now().UTC()

	const query = `
	INSERT INTO drafts (
		id, no_form, tanggal,
		outlet_pengirim_id, outlet_pengirim, outlet_penerima_id, outlet_penerima,
		dibuat_oleh, disetujui_oleh, diterima_oleh,
		items_json, attachment_path, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		no_form = excluded.no_form,
		tanggal = excluded.tanggal,
		outlet_pengirim_id = excluded.outlet_pengirim_id,
		outlet_pengirim = excluded.outlet_pengirim,
		outlet_penerima_id = excluded.outlet_penerima_id,
		outlet_penerima = excluded.outlet_penerima,
		dibuat_oleh = excluded.dibuat_oleh,
		disetujui_oleh = excluded.disetujui_oleh,
		diterima_oleh = excluded.diterima_oleh,
		items_json = excluded.items_json,
		attachment_path = excluded.attachment_path,
		updated_at = excluded.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		d.ID, d.NoForm, d.Tanggal,
		d.OutletPengirimID, d.OutletPengirim, d.OutletPenerimaID, d.OutletPenerima,
		d.DibuatOleh, d.DisetujuiOleh, d.DiterimaOleh,
		d.ItemsJSON, d.AttachmentPath, d.UpdatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save draft: %w", err)
	}
	return d.ID, nil
}

// Get loads one draft by id.
func (s *DraftStore) Get(ctx context.Context, id string) (model.Draft, error) {
	const query = `
	SELECT id, no_form, tanggal,
		outlet_pengirim_id, outlet_pengirim, outlet_penerima_id, outlet_penerima,
		dibuat_oleh, disetujui_oleh, diterima_oleh,
		items_json, attachment_path, updated_at
	FROM drafts WHERE id = ?`

	var d model.Draft
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.NoForm, &d.Tanggal,
		&d.OutletPengirimID, &d.OutletPengirim, &d.OutletPenerimaID, &d.OutletPenerima,
		&d.DibuatOleh, &d.DisetujuiOleh, &d.DiterimaOleh,
		&d.ItemsJSON, &d.AttachmentPath, &d.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Draft{}, ErrDraftNotFound
	}
	if err != nil {
		return model.Draft{}, fmt.Errorf("failed to load draft: %w", err)
	}
	return d, nil
}

// List returns all drafts, newest first.
func (s *DraftStore) List(ctx context.Context) ([]model.Draft, error) {
	const query = `
	SELECT id, no_form, tanggal,
		outlet_pengirim_id, outlet_pengirim, outlet_penerima_id, outlet_penerima,
		dibuat_oleh, disetujui_oleh, diterima_oleh,
		items_json, attachment_path, updated_at
	FROM drafts ORDER BY updated_at DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list drafts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var drafts []model.Draft
	for rows.Next() {
		var d model.Draft
		if err := rows.Scan(
			&d.ID, &d.NoForm, &d.Tanggal,
			&d.OutletPengirimID, &d.OutletPengirim, &d.OutletPenerimaID, &d.OutletPenerima,
			&d.DibuatOleh, &d.DisetujuiOleh, &d.DiterimaOleh,
			&d.ItemsJSON, &d.AttachmentPath, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan draft: %w", err)
		}
		drafts = append(drafts, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate drafts: %w", err)
	}
	return drafts, nil
}

// Latest returns the most recently updated draft.
func (s *DraftStore) Latest(ctx context.Context) (model.Draft, error) {
	drafts, err := s.List(ctx)
	if err != nil {
		return model.Draft{}, err
	}
	if len(drafts) == 0 {
		return model.Draft{}, ErrDraftNotFound
	}
	return drafts[0], nil
}

// Delete removes a draft by id.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrDraftNotFound
	}
	return nil
}
