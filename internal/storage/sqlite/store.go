// Package sqlite stores calculator snapshots in a local SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/logger"
	"github.com/hammamikhairi/levain/internal/storage"
	"github.com/hammamikhairi/levain/internal/storage/sqlite/migrations"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*Store)(nil)

// Store is a SQLite-backed snapshot store.
type Store struct {
	sqlDB *sql.DB
	log   *logger.Logger
}

// Open opens a SQLite snapshot store at path and applies migrations.
func Open(path string, log *logger.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}

	ctx := context.Background()
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}

	if err := applyMigrations(ctx, sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate sqlite store: %w", err)
	}

	log.Debug("opened snapshot store at %s", path)
	return &Store{sqlDB: sqlDB, log: log}, nil
}

// Close closes the underlying SQLite database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts a snapshot.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) error {
	storage.Prepare(snap)

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO snapshots (id, preset_id, payload, saved_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    preset_id = excluded.preset_id,
    payload = excluded.payload,
    saved_at = excluded.saved_at`,
		snap.ID, snap.PresetID, string(payload), snap.SavedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snap.ID, err)
	}
	s.log.Debug("saved snapshot %s (mode=%s, preset=%s)", snap.ID, snap.Recipe.Mode, snap.PresetID)
	return nil
}

// Load retrieves a snapshot by ID.
func (s *Store) Load(ctx context.Context, id string) (*domain.Snapshot, error) {
	row := s.sqlDB.QueryRowContext(ctx, `SELECT payload, saved_at FROM snapshots WHERE id = ?`, id)
	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot %s: %w", id, err)
	}
	return snap, nil
}

// Latest returns the most recently saved snapshot.
func (s *Store) Latest(ctx context.Context) (*domain.Snapshot, error) {
	list, err := s.List(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.ErrNotFound
	}
	return list[0], nil
}

// List returns up to limit snapshots, newest first. limit ≤ 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT payload, saved_at FROM snapshots ORDER BY saved_at DESC, id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []*domain.Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}

// Delete removes a snapshot by ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	s.log.Debug("deleted snapshot %s", id)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (*domain.Snapshot, error) {
	var (
		payload string
		savedAt int64
	)
	if err := row.Scan(&payload, &savedAt); err != nil {
		return nil, err
	}
	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.SavedAt = time.UnixMilli(savedAt).UTC()
	return &snap, nil
}
