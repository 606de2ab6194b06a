package domain

import "time"

// RecipeForm holds the recipe inputs exactly as the user typed them.
type RecipeForm struct {
	Mode             string `json:"mode"`
	Flour            string `json:"flour"`
	Dough            string `json:"dough"`
	BatchCount       string `json:"batch_count"`
	BatchUnit        string `json:"batch_unit"`
	Hydration        string `json:"hydration"`
	Salt             string `json:"salt"`
	Starter          string `json:"starter"`
	StarterHydration string `json:"starter_hydration"`
}

// TemperatureForm holds the water-temperature inputs as typed.
type TemperatureForm struct {
	Room     string `json:"room"`
	Flour    string `json:"flour"`
	Friction string `json:"friction"`
	Target   string `json:"target"`
}

// Snapshot is a saved copy of the last-used raw inputs.
type Snapshot struct {
	ID          string          `json:"id"`
	PresetID    string          `json:"preset_id,omitempty"`
	Recipe      RecipeForm      `json:"recipe"`
	Temperature TemperatureForm `json:"temperature"`
	LevainRatio string          `json:"levain_ratio"`
	SavedAt     time.Time       `json:"saved_at"`
}
