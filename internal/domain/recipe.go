// Package domain defines the core types and interfaces for the bread calculator.
// All other packages depend on domain; domain depends on nothing.
package domain

import "math"

// DefaultStarterHydration is the hydration of a starter fed equal parts
// flour and water.
const DefaultStarterHydration = 100

// Ratios holds baker's percentages relative to flour (flour = 100%).
type Ratios struct {
	Hydration        float64 // water as % of flour
	Salt             float64 // salt as % of flour
	Starter          float64 // starter as % of flour
	StarterHydration float64 // starter water as % of the starter's own flour
}

// AnchorMode selects which quantity the user supplied.
type AnchorMode int

const (
	// ModeFlour anchors the recipe on the flour weight.
	ModeFlour AnchorMode = iota
	// ModeDough anchors the recipe on the total dough weight.
	ModeDough
	// ModeBatch anchors the recipe on count × unit weight.
	ModeBatch
)

// String returns the mode name used in forms and commands.
func (m AnchorMode) String() string {
	switch m {
	case ModeFlour:
		return "flour"
	case ModeDough:
		return "dough"
	case ModeBatch:
		return "batch"
	default:
		return "unknown"
	}
}

var modeNames = map[string]AnchorMode{
	"flour": ModeFlour,
	"dough": ModeDough,
	"total": ModeDough,
	"batch": ModeBatch,
}

// AnchorModeFromString converts a mode name to an AnchorMode.
// The second return value is false for unrecognized names.
func AnchorModeFromString(name string) (AnchorMode, bool) {
	m, ok := modeNames[name]
	return m, ok
}

// Anchor is the one user-supplied quantity a recipe is scaled from.
// Only the fields relevant to Mode are meaningful.
type Anchor struct {
	Mode       AnchorMode
	Flour      float64 // grams, ModeFlour
	Total      float64 // grams, ModeDough
	Count      float64 // pieces, ModeBatch
	UnitWeight float64 // grams per piece, ModeBatch
}

// ByFlourWeight anchors on flour grams.
func ByFlourWeight(grams float64) Anchor {
	return Anchor{Mode: ModeFlour, Flour: grams}
}

// ByTotalDoughWeight anchors on total dough grams.
func ByTotalDoughWeight(grams float64) Anchor {
	return Anchor{Mode: ModeDough, Total: grams}
}

// ByBatch anchors on a number of pieces of a given unit weight.
func ByBatch(count, unitWeight float64) Anchor {
	return Anchor{Mode: ModeBatch, Count: count, UnitWeight: unitWeight}
}

// Target returns the total dough weight the anchor asks for.
// It is zero in flour mode, where there is no external total.
func (a Anchor) Target() float64 {
	switch a.Mode {
	case ModeDough:
		return a.Total
	case ModeBatch:
		return a.Count * a.UnitWeight
	default:
		return 0
	}
}

// Reduce turns a batch anchor into the equivalent total-dough anchor.
// Other modes are returned unchanged.
func (a Anchor) Reduce() Anchor {
	if a.Mode == ModeBatch {
		return ByTotalDoughWeight(a.Target())
	}
	return a
}

// Result is the computed recipe. Weights are whole grams.
type Result struct {
	Flour   int
	Water   int
	Salt    int
	Starter int
	Total   int

	// TrueHydration folds the starter's own flour and water into the ratio.
	TrueHydration float64
	Feel          HydrationFeel

	// Correction is the gram difference folded into water so the total
	// matches the target. Always zero in flour mode.
	Correction int

	// Warnings lists soft conditions such as implausibly high hydration.
	Warnings []*ValidationError
}

// HydrationFeel is a coarse handling description of a dough.
type HydrationFeel int

const (
	FeelVeryStiff HydrationFeel = iota
	FeelStiff
	FeelStandard
	FeelWet
	FeelHighHydration
)

// String returns the human-readable label.
func (f HydrationFeel) String() string {
	switch f {
	case FeelVeryStiff:
		return "Very Stiff"
	case FeelStiff:
		return "Stiff"
	case FeelStandard:
		return "Standard"
	case FeelWet:
		return "Wet"
	case FeelHighHydration:
		return "High Hydration"
	default:
		return "unknown"
	}
}

// FeelFor maps a hydration percentage onto its band. Every real number,
// NaN included, lands in exactly one band.
func FeelFor(pct float64) HydrationFeel {
	switch {
	case math.IsNaN(pct):
		return FeelVeryStiff
	case pct < 60:
		return FeelVeryStiff
	case pct < 68:
		return FeelStiff
	case pct < 74:
		return FeelStandard
	case pct < 82:
		return FeelWet
	default:
		return FeelHighHydration
	}
}

// LevainBuild is the seed/flour/water split for growing a starter to size.
type LevainBuild struct {
	Target     int     // grams of starter the dough needs
	Ratio      float64 // flour and water parts per part of seed
	TotalParts float64
	Seed       int
	Flour      int
	Water      int
}

// Sum returns the actual build weight, which may drift from Target by
// rounding.
func (b *LevainBuild) Sum() int {
	return b.Seed + b.Flour + b.Water
}
