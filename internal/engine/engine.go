// Package engine implements the baker's-percentage calculations: recipe
// scaling from ratios, levain builds and mixing-water temperature.
//
// The engine is a pure function of its inputs. It holds no mutable state
// and is safe for concurrent use.
package engine

import (
	"math"

	"github.com/hammamikhairi/levain/internal/domain"
	"github.com/hammamikhairi/levain/internal/logger"
	"github.com/hammamikhairi/levain/internal/metrics"
	"github.com/hammamikhairi/levain/internal/validate"
)

// Option configures the engine.
type Option func(*Engine)

// WithValidator replaces the default validator, e.g. to change the
// hydration ceilings.
func WithValidator(v *validate.Validator) Option {
	return func(e *Engine) {
		e.validator = v
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithScaldingThreshold sets the water temperature (°C) above which
// results are banded as scalding.
func WithScaldingThreshold(celsius float64) Option {
	return func(e *Engine) {
		e.scaldingAbove = celsius
	}
}

// Engine computes recipes, levain builds and water temperatures.
type Engine struct {
	validator     *validate.Validator
	recorder      metrics.Recorder
	log           *logger.Logger
	scaldingAbove float64
}

// New creates an engine with the given options.
func New(log *logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		validator:     validate.New(),
		recorder:      metrics.Nop{},
		log:           log,
		scaldingAbove: domain.DefaultScaldingAbove,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validator returns the validator the engine checks inputs with.
func (e *Engine) Validator() *validate.Validator {
	return e.validator
}

// fail records a validation failure and passes the error through.
func (e *Engine) fail(err error) error {
	if ve, ok := domain.AsValidation(err); ok {
		e.recorder.ValidationFailed(ve.Field, ve.Kind.String())
		e.log.Debug("rejected %s=%q: %s", ve.Field, ve.Value, ve.Kind)
	}
	return err
}

// roundHalfUp rounds half up, so 0.5 g becomes 1 g and -2.5 °C becomes -2 °C.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
