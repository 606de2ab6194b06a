package engine

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/validate"
)

// DefaultLevainRatio is the usual 1:5:5 seed:flour:water build.
const DefaultLevainRatio = 5

// BuildLevain splits a target starter weight into seed, flour and water
// for a 1:ratio:ratio build. It returns nil, nil when no levain is needed
// (target ≤ 0). The three parts are rounded independently, so their sum
// may drift from target by a gram or two.
//
// The build is always equal parts flour and water, whatever the dough's
// starter hydration.
func (e *Engine) BuildLevain(target, ratio float64) (*domain.LevainBuild, error) {
	if err := e.validator.CheckLevainRatio(ratio); err != nil {
		return nil, e.fail(err)
	}
	if math.IsNaN(target) || math.IsInf(target, 0) {
		return nil, e.fail(domain.NewValidationError(validate.FieldLevainTarget, domain.MissingValue,
			fmt.Sprint(target), "Levain target must be a number."))
	}
	if target <= 0 {
		e.log.Debug("no levain needed (target=%g)", target)
		return nil, nil
	}

	parts := 1 + 2*ratio
	seed := target / parts
	feed := seed * ratio

	b := &domain.LevainBuild{
		Target:     roundHalfUp(target),
		Ratio:      ratio,
		TotalParts: parts,
		Seed:       roundHalfUp(seed),
		Flour:      roundHalfUp(feed),
		Water:      roundHalfUp(feed),
	}

	e.recorder.LevainBuilt()
	e.log.Debug("levain 1:%g:%g for %gg: seed=%d flour=%d water=%d", ratio, ratio, target, b.Seed, b.Flour, b.Water)
	return b, nil
}
