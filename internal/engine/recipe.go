package engine

import (
	"github.com/hammamikhairi/levain/internal/domain"
)

// ComputeRecipe converts ratios into whole-gram ingredient weights.
//
// In flour mode every weight is rounded independently. In dough and batch
// mode the four weights always sum to the rounded target: the rounding
// difference is folded into water.
func (e *Engine) ComputeRecipe(r domain.Ratios, a domain.Anchor) (*domain.Result, error) {
	warnings, err := e.validator.CheckRatios(r)
	if err != nil {
		return nil, e.fail(err)
	}
	if err := e.validator.CheckAnchor(a); err != nil {
		return nil, e.fail(err)
	}

	var flour, target float64
	if a.Mode == domain.ModeFlour {
		flour = a.Flour
	} else {
		target = a.Target()
		totalPct := 100 + r.Hydration + r.Salt + r.Starter
		flour = target * 100 / totalPct
	}

	water := flour * r.Hydration / 100
	salt := flour * r.Salt / 100
	starter := flour * r.Starter / 100

	res := &domain.Result{
		Flour:    roundHalfUp(flour),
		Water:    roundHalfUp(water),
		Salt:     roundHalfUp(salt),
		Starter:  roundHalfUp(starter),
		Warnings: warnings,
	}

	if a.Mode != domain.ModeFlour {
		sum := res.Flour + res.Water + res.Salt + res.Starter
		diff := roundHalfUp(target) - sum
		res.Water += diff
		res.Correction = diff
		// Only reachable with near-zero hydration; flour takes the rest.
		if res.Water < 0 {
			res.Flour += res.Water
			res.Water = 0
		}
		if diff != 0 {
			e.log.Debug("rounding correction %+dg folded into water", diff)
		}
	}
	res.Total = res.Flour + res.Water + res.Salt + res.Starter

	res.TrueHydration = TrueHydration(flour, water, starter, r.StarterHydration)
	res.Feel = domain.FeelFor(res.TrueHydration)

	for _, w := range warnings {
		e.log.Warn("%s", w.Msg)
	}
	e.recorder.RecipeComputed(a.Mode.String())
	e.log.Debug("computed %s recipe: flour=%d water=%d salt=%d starter=%d total=%d true=%.1f%%",
		a.Mode, res.Flour, res.Water, res.Salt, res.Starter, res.Total, res.TrueHydration)
	return res, nil
}

// TrueHydration returns the dough's water-to-flour percentage once the
// starter's own flour and water are counted. starterHydration is water as
// a percentage of the starter's flour, so 100 means half and half.
func TrueHydration(flour, water, starter, starterHydration float64) float64 {
	starterFlour := starter * 100 / (100 + starterHydration)
	starterWater := starter * starterHydration / (100 + starterHydration)

	totalFlour := flour + starterFlour
	if totalFlour == 0 {
		return 0
	}
	return (water + starterWater) / totalFlour * 100
}
