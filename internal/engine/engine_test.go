package engine

import (
	"sync"
	"testing"

	"github.com/hammamikhairi/levain/internal/domain"
)

type countingRecorder struct {
	mu       sync.Mutex
	recipes  map[string]int
	failures map[string]int
	levains  int
	temps    int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{recipes: map[string]int{}, failures: map[string]int{}}
}

func (c *countingRecorder) RecipeComputed(mode string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recipes[mode]++
}

func (c *countingRecorder) ValidationFailed(field, kind string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failures[field+"/"+kind]++
}

func (c *countingRecorder) LevainBuilt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.levains++
}

func (c *countingRecorder) WaterTemperatureComputed() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.temps++
}

func TestRecorder(t *testing.T) {
	rec := newCountingRecorder()
	eng := setupEngine(t, WithRecorder(rec))

	eng.ComputeRecipe(sourdough, domain.ByTotalDoughWeight(1000))
	eng.ComputeRecipe(sourdough, domain.ByBatch(2, 500))
	eng.ComputeRecipe(domain.Ratios{Hydration: -1}, domain.ByFlourWeight(500))
	eng.BuildLevain(220, 5)
	eng.BuildLevain(0, 5)
	eng.WaterTemperature(domain.TemperatureInputs{Room: 22, Flour: 22, Friction: 2, Target: 26})

	if rec.recipes["dough"] != 1 || rec.recipes["batch"] != 1 {
		t.Fatalf("unexpected recipe counts %v", rec.recipes)
	}
	if rec.failures["hydration/negative_value"] != 1 {
		t.Fatalf("unexpected failure counts %v", rec.failures)
	}
	if rec.levains != 1 {
		t.Fatalf("expected 1 levain build (empty builds are not counted), got %d", rec.levains)
	}
	if rec.temps != 1 {
		t.Fatalf("expected 1 temperature, got %d", rec.temps)
	}
}

func TestConcurrentUse(t *testing.T) {
	eng := setupEngine(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := eng.ComputeRecipe(sourdough, domain.ByTotalDoughWeight(1000))
			if err != nil || res.Total != 1000 {
				t.Errorf("concurrent compute: %+v, %v", res, err)
			}
		}()
	}
	wg.Wait()
}
