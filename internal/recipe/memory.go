// Package recipe provides preset sources: the built-in ratio table and
// YAML preset files that can be merged over it.
package recipe

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/logger"
)

// Compile-time interface check.
var _ domain.PresetSource = (*MemorySource)(nil)

// MemorySource holds presets in memory. Safe for concurrent use.
type MemorySource struct {
	mu      sync.RWMutex
	presets map[string]*domain.Preset
	log     *logger.Logger
}

// NewMemorySource creates a preset source preloaded with built-in presets.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{
		presets: make(map[string]*domain.Preset),
		log:     log,
	}
	src.seed()
	return src
}

// List returns summaries of all presets, sorted by name.
func (s *MemorySource) List(ctx context.Context) ([]domain.PresetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("listing all presets, count=%d", len(s.presets))

	out := make([]domain.PresetSummary, 0, len(s.presets))
	for _, p := range s.presets {
		out = append(out, summarize(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns a preset by ID. A 1-based position in List order is also
// accepted, so "2" selects the second listed preset.
func (s *MemorySource) Get(ctx context.Context, id string) (*domain.Preset, error) {
	key := strings.ToLower(strings.TrimSpace(id))

	s.mu.RLock()
	p, ok := s.presets[key]
	s.mu.RUnlock()
	if ok {
		cp := *p
		return &cp, nil
	}

	if n, err := strconv.Atoi(key); err == nil {
		list, _ := s.List(ctx)
		if n >= 1 && n <= len(list) {
			return s.Get(ctx, list[n-1].ID)
		}
	}

	s.log.Debug("preset not found: %s", id)
	return nil, domain.ErrNotFound
}

// Search returns presets whose name, tip or tags contain the query string.
func (s *MemorySource) Search(ctx context.Context, query string) ([]domain.PresetSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	s.log.Debug("searching presets for: %s", q)

	var out []domain.PresetSummary
	for _, p := range s.presets {
		if s.matches(p, q) {
			out = append(out, summarize(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Merge adds or replaces presets by ID. Built-ins not named in presets
// are kept.
func (s *MemorySource) Merge(presets []*domain.Preset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range presets {
		cp := *p
		s.presets[strings.ToLower(p.ID)] = &cp
	}
	s.log.Info("merged %d presets (total=%d)", len(presets), len(s.presets))
}

func (s *MemorySource) matches(p *domain.Preset, query string) bool {
	if strings.Contains(strings.ToLower(p.ID), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), query) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Tip), query) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func summarize(p *domain.Preset) domain.PresetSummary {
	return domain.PresetSummary{
		ID:   p.ID,
		Name: p.Name,
		Tip:  p.Tip,
		Tags: p.Tags,
	}
}

// seed populates the source with the built-in presets.
func (s *MemorySource) seed() {
	presets := builtins()
	for _, p := range presets {
		s.presets[p.ID] = p
	}
	s.log.Debug("seeded %d presets", len(presets))
}

func builtins() []*domain.Preset {
	return []*domain.Preset{
		{
			ID: "sourdough", Name: "Sourdough",
			Hydration: 75, Salt: 2, Starter: 20, StarterHydration: domain.DefaultStarterHydration,
			Tip:  "Classic rustic loaf. Good for beginners.",
			Tags: []string{"loaf", "beginner"},
		},
		{
			ID: "focaccia", Name: "Focaccia",
			Hydration: 85, Salt: 2.5, Starter: 15, StarterHydration: domain.DefaultStarterHydration,
			Tip:  "Very sticky dough. Use olive oil on hands!",
			Tags: []string{"flatbread", "wet"},
		},
		{
			ID: "pizza", Name: "Pizza",
			Hydration: 62, Salt: 3, Starter: 15, StarterHydration: domain.DefaultStarterHydration,
			Tip:  "Stiffer dough for high heat ovens.",
			Tags: []string{"flatbread", "stiff"},
		},
		{
			ID: "bagel", Name: "Bagel",
			Hydration: 58, Salt: 2, Starter: 1, StarterHydration: domain.DefaultStarterHydration,
			Tip:  "Extremely stiff. Requires kneader or muscle.",
			Tags: []string{"stiff", "boiled"},
		},
		{
			ID: "ciabatta", Name: "Ciabatta",
			Hydration: 80, Salt: 2.2, Starter: 40, StarterHydration: domain.DefaultStarterHydration,
			Tip:  "High starter amount for flavor and structure.",
			Tags: []string{"loaf", "wet"},
		},
		{
			ID: "wholewheat", Name: "Whole Wheat",
			Hydration: 80, Salt: 2, Starter: 20, StarterHydration: domain.DefaultStarterHydration,
			Tip:  "Whole wheat is thirsty. Hydration increased.",
			Tags: []string{"loaf", "wholegrain"},
		},
	}
}
