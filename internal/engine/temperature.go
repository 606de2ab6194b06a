package engine

import (
	"github.com/hammamikhairi/levain/internal/domain"
)

// WaterTemperature returns the mixing-water temperature that brings the
// dough to in.Target, treating the dough as the mean of room, flour,
// friction and water temperatures. Results are not clamped: a negative
// value means ice is needed.
func (e *Engine) WaterTemperature(in domain.TemperatureInputs) (*domain.TemperatureResult, error) {
	if err := e.validator.CheckTemperature(in); err != nil {
		return nil, e.fail(err)
	}

	raw := in.Target*3 - (in.Room + in.Flour + in.Friction)
	res := &domain.TemperatureResult{
		Water: roundHalfUp(raw),
		Raw:   raw,
		Band:  domain.BandFor(raw, e.scaldingAbove),
	}

	e.recorder.WaterTemperatureComputed()
	e.log.Debug("water temperature %.1f°C (%s)", raw, res.Band)
	return res, nil
}
