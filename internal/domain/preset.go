package domain

// Preset is a named set of ratios, e.g. "focaccia".
type Preset struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Hydration        float64  `yaml:"hydration"`
	Salt             float64  `yaml:"salt"`
	Starter          float64  `yaml:"starter"`
	StarterHydration float64  `yaml:"starter_hydration"`
	Tip              string   `yaml:"tip"`
	Tags             []string `yaml:"tags"`
}

// Ratios returns the preset's percentages. A zero starter hydration is
// read as the default.
func (p *Preset) Ratios() Ratios {
	sh := p.StarterHydration
	if sh == 0 {
		sh = DefaultStarterHydration
	}
	return Ratios{
		Hydration:        p.Hydration,
		Salt:             p.Salt,
		Starter:          p.Starter,
		StarterHydration: sh,
	}
}

// PresetSummary is a lightweight view of a preset for listing.
type PresetSummary struct {
	ID   string
	Name string
	Tip  string
	Tags []string
}
