package display

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/levain/internal/domain"
)

func TestRenderRecipe(t *testing.T) {
	out := RenderRecipe(RecipeView{
		Title:  "Focaccia",
		Ratios: domain.Ratios{Hydration: 75, Salt: 2, Starter: 20, StarterHydration: 100},
		Anchor: domain.ByTotalDoughWeight(1000),
		Result: &domain.Result{
			Flour: 508, Water: 380, Salt: 10, Starter: 102, Total: 1000,
			TrueHydration: 77.27, Feel: domain.FeelWet, Correction: -1,
		},
	})

	for _, want := range []string{"Focaccia: 1000g of dough", "508g", "380g", "75%", "102g", "1000g", "77.3%", "Wet", "-1g"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Warning")
}

func TestRenderRecipeWarnings(t *testing.T) {
	out := RenderRecipe(RecipeView{
		Ratios: domain.Ratios{Hydration: 125, StarterHydration: 100},
		Anchor: domain.ByFlourWeight(500),
		Result: &domain.Result{
			Flour: 500, Water: 625, Total: 1125, TrueHydration: 125, Feel: domain.FeelHighHydration,
			Warnings: []*domain.ValidationError{
				domain.NewValidationError("hydration", domain.ImplausibleValue, "125", "Hydration is over 120. This is likely a soup, not dough."),
			},
		},
	})

	assert.Contains(t, out, "Custom: 500g of flour")
	assert.Contains(t, out, "Warning: Hydration is over 120")
	assert.NotContains(t, out, "Adjusted water")
}

func TestRenderLevain(t *testing.T) {
	out := RenderLevain(&domain.LevainBuild{Target: 100, Ratio: 5, TotalParts: 11, Seed: 9, Flour: 45, Water: 45})
	assert.Contains(t, out, "1:5:5 for 100g")
	assert.Contains(t, out, "9g")
	assert.Contains(t, out, "45g")
	assert.Contains(t, out, "Builds 99g after rounding")

	assert.Contains(t, RenderLevain(nil), "no levain build is needed")
}

func TestRenderTemperature(t *testing.T) {
	in := domain.TemperatureInputs{Room: 10, Flour: 10, Friction: 0, Target: 26}
	out := RenderTemperature(in, &domain.TemperatureResult{Water: 58, Raw: 58, Band: domain.BandScalding})
	assert.Contains(t, out, "58°C")
	assert.Contains(t, out, "Too hot")

	out = RenderTemperature(in, &domain.TemperatureResult{Water: -12, Raw: -12, Band: domain.BandIce})
	assert.Contains(t, out, "-12°C")
	assert.Contains(t, out, "ice water")

	out = RenderTemperature(in, &domain.TemperatureResult{Water: 32, Raw: 32, Band: domain.BandNormal})
	assert.NotContains(t, out, "Too hot")
	assert.NotContains(t, out, "ice water")
}

func TestRenderPresets(t *testing.T) {
	out := RenderPresets([]domain.PresetSummary{
		{ID: "bagel", Name: "Bagel", Tip: "Extremely stiff.", Tags: []string{"stiff", "boiled"}},
		{ID: "pizza", Name: "Pizza"},
	})
	assert.Contains(t, out, "[1]")
	assert.Contains(t, out, "Bagel")
	assert.Contains(t, out, "Tags: stiff, boiled")
	assert.Contains(t, out, "[2]")

	assert.Contains(t, RenderPresets(nil), "No presets found")
}

func TestRenderHistory(t *testing.T) {
	out := RenderHistory([]*domain.Snapshot{{
		PresetID: "pizza",
		Recipe:   domain.RecipeForm{Mode: "batch", BatchCount: "4", BatchUnit: "250", Hydration: "62", Salt: "3", Starter: "15"},
		SavedAt:  time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC),
	}})
	assert.Contains(t, out, "pizza")
	assert.Contains(t, out, "batch 4 × 250g")

	assert.Contains(t, RenderHistory(nil), "No saved calculations")
}

func TestSummarizeForm(t *testing.T) {
	tests := []struct {
		form domain.RecipeForm
		want string
	}{
		{domain.RecipeForm{Flour: "500", Hydration: "75", Salt: "2", Starter: "20"}, "flour 500g, 75/2/20%, starter 100%"},
		{domain.RecipeForm{Mode: "dough", Dough: "1000", Hydration: "85", Salt: "2.5", Starter: "15", StarterHydration: "50"}, "dough 1000g, 85/2.5/15%, starter 50%"},
		{domain.RecipeForm{Mode: "batch"}, "batch - × -g, -/-/-%, starter 100%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SummarizeForm(tt.form))
	}
}

func TestCenterBanner(t *testing.T) {
	out := centerBanner("ab\nabcd\n", 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "   ") {
			t.Errorf("expected 3 spaces of padding, got %q", l)
		}
	}

	narrow := centerBanner("abcd", 2)
	if strings.HasPrefix(narrow, " ") {
		t.Errorf("expected no padding when the terminal is narrower than the art, got %q", narrow)
	}
}

func TestRenderBar(t *testing.T) {
	out := renderBar([]StatusField{{Label: "mode", Value: "dough"}, {Label: "preset", Value: ""}}, 60)
	assert.Contains(t, out, "mode: ")
	assert.Contains(t, out, "dough")
	assert.Contains(t, out, "preset: ")
}
