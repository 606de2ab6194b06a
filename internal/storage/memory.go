// Package storage provides persistence for last-used calculator inputs.
package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/logger"
)

// Compile-time interface check.
var _ domain.SnapshotStore = (*MemoryStore)(nil)

// MemoryStore is an in-memory snapshot store. Safe for concurrent access.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*domain.Snapshot
	log       *logger.Logger
}

// NewMemoryStore creates an empty in-memory snapshot store.
func NewMemoryStore(log *logger.Logger) *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string]*domain.Snapshot),
		log:       log,
	}
}

// Prepare fills in a missing ID and timestamp. Stores call it before
// writing.
func Prepare(snap *domain.Snapshot) {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.SavedAt.IsZero() {
		snap.SavedAt = time.Now().UTC()
	}
}

// Save persists a snapshot. Overwrites if it already exists.
func (s *MemoryStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	Prepare(snap)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("saving snapshot %s (mode=%s, preset=%s)", snap.ID, snap.Recipe.Mode, snap.PresetID)
	cp := *snap
	s.snapshots[snap.ID] = &cp
	return nil
}

// Load retrieves a snapshot by ID.
func (s *MemoryStore) Load(ctx context.Context, id string) (*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snapshots[id]
	if !ok {
		s.log.Debug("snapshot not found: %s", id)
		return nil, domain.ErrNotFound
	}
	cp := *snap
	return &cp, nil
}

// Latest returns the most recently saved snapshot.
func (s *MemoryStore) Latest(ctx context.Context) (*domain.Snapshot, error) {
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
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Snapshot, 0, len(s.snapshots))
	for _, snap := range s.snapshots {
		cp := *snap
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SavedAt.After(out[j].SavedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	s.log.Debug("listing snapshots, count=%d", len(out))
	return out, nil
}

// Delete removes a snapshot by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snapshots[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.snapshots, id)
	s.log.Debug("deleted snapshot %s", id)
	return nil
}
