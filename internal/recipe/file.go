package recipe

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/levain/internal/domain"
)

// presetFile is the on-disk layout:
//
//	presets:
//	  - id: rye
//	    name: Rye
//	    hydration: 82
//	    salt: 2
//	    starter: 30
//	    starter_hydration: 80
//	    tip: Sticky, use wet hands.
type presetFile struct {
	Presets []*domain.Preset `yaml:"presets"`
}

// LoadFile reads and validates a YAML preset file.
func LoadFile(path string) ([]*domain.Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preset file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates YAML preset data. IDs are lower-cased and
// a missing name falls back to the ID.
func Parse(data []byte) ([]*domain.Preset, error) {
	var f presetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing preset file: %w", err)
	}

	seen := make(map[string]bool, len(f.Presets))
	for i, p := range f.Presets {
		if p == nil {
			return nil, fmt.Errorf("preset %d: empty entry", i)
		}
		p.ID = strings.ToLower(strings.TrimSpace(p.ID))
		if p.ID == "" {
			return nil, fmt.Errorf("preset %d: id is required", i)
		}
		if seen[p.ID] {
			return nil, fmt.Errorf("preset %q: %w", p.ID, domain.ErrAlreadyExists)
		}
		seen[p.ID] = true

		if p.Name == "" {
			p.Name = p.ID
		}
		if p.StarterHydration == 0 {
			p.StarterHydration = domain.DefaultStarterHydration
		}
		for _, v := range []struct {
			name string
			val  float64
		}{
			{"hydration", p.Hydration},
			{"salt", p.Salt},
			{"starter", p.Starter},
			{"starter_hydration", p.StarterHydration},
		} {
			if v.val < 0 {
				return nil, fmt.Errorf("preset %q: %s cannot be negative", p.ID, v.name)
			}
		}
	}
	return f.Presets, nil
}
