package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPrometheusCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RecipeComputed("dough")
	m.RecipeComputed("dough")
	m.RecipeComputed("flour")
	m.ValidationFailed("hydration", "missing_value")
	m.LevainBuilt()
	m.WaterTemperatureComputed()

	if got := testutil.ToFloat64(m.recipes.WithLabelValues("dough")); got != 2 {
		t.Fatalf("dough recipes: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.recipes.WithLabelValues("flour")); got != 1 {
		t.Fatalf("flour recipes: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.failures.WithLabelValues("hydration", "missing_value")); got != 1 {
		t.Fatalf("failures: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.levainBuilds); got != 1 {
		t.Fatalf("levain builds: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.waterTemps); got != 1 {
		t.Fatalf("water temps: got %v, want 1", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(families) != 4 {
		t.Fatalf("expected 4 metric families, got %d", len(families))
	}
}
