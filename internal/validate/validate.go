// Package validate turns raw text inputs into typed recipe inputs and
// checks typed inputs against their domains. Every failure is a
// *domain.ValidationError naming the offending field; nothing is
// silently coerced to zero.
package validate

import (
	"math"
	"strconv"
	"strings"

	"github.com/hammamikhairi/levain/internal/domain"
)

// Defaults for the hydration checks.
const (
	DefaultHydrationCeiling = 120 // above this is flagged as implausible
	DefaultHydrationLimit   = 200 // above this is rejected
)

// Field names used in validation errors.
const (
	FieldMode             = "mode"
	FieldFlour            = "flour"
	FieldDough            = "dough"
	FieldBatchCount       = "batch_count"
	FieldBatchUnit        = "batch_unit"
	FieldHydration        = "hydration"
	FieldSalt             = "salt"
	FieldStarter          = "starter"
	FieldStarterHydration = "starter_hydration"
	FieldLevainRatio      = "levain_ratio"
	FieldLevainTarget     = "levain_target"
	FieldRoom             = "room"
	FieldFlourTemp        = "flour_temp"
	FieldFriction         = "friction"
	FieldTarget           = "target"
)

// Option configures a Validator.
type Option func(*Validator)

// WithHydrationCeiling sets the soft ceiling above which hydration is
// reported as implausible but still accepted.
func WithHydrationCeiling(pct float64) Option {
	return func(v *Validator) {
		v.ceiling = pct
	}
}

// WithHydrationLimit sets the hard ceiling above which hydration is
// rejected outright.
func WithHydrationLimit(pct float64) Option {
	return func(v *Validator) {
		v.limit = pct
	}
}

// Validator checks recipe, levain and temperature inputs. It holds only
// configuration and is safe for concurrent use.
type Validator struct {
	ceiling float64
	limit   float64
}

// New creates a validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{
		ceiling: DefaultHydrationCeiling,
		limit:   DefaultHydrationLimit,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Ceiling returns the soft hydration ceiling.
func (v *Validator) Ceiling() float64 { return v.ceiling }

// Limit returns the hard hydration ceiling.
func (v *Validator) Limit() float64 { return v.limit }

// ParseNumber parses a raw field. Blank, non-numeric and non-finite text
// is a MissingValue error.
func ParseNumber(field, raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, domain.NewValidationError(field, domain.MissingValue, raw,
			label(field)+" is required.")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, domain.NewValidationError(field, domain.MissingValue, raw,
			label(field)+" must be a number.")
	}
	return f, nil
}

// ParseRecipe parses a raw recipe form into ratios and an anchor, then
// runs the typed checks. Soft warnings are not reported here; the engine
// attaches them to the result.
func (v *Validator) ParseRecipe(f domain.RecipeForm) (domain.Ratios, domain.Anchor, error) {
	var r domain.Ratios
	var err error

	if r.Hydration, err = ParseNumber(FieldHydration, f.Hydration); err != nil {
		return domain.Ratios{}, domain.Anchor{}, err
	}
	if r.Salt, err = ParseNumber(FieldSalt, f.Salt); err != nil {
		return domain.Ratios{}, domain.Anchor{}, err
	}
	if r.Starter, err = ParseNumber(FieldStarter, f.Starter); err != nil {
		return domain.Ratios{}, domain.Anchor{}, err
	}
	r.StarterHydration = domain.DefaultStarterHydration
	if strings.TrimSpace(f.StarterHydration) != "" {
		if r.StarterHydration, err = ParseNumber(FieldStarterHydration, f.StarterHydration); err != nil {
			return domain.Ratios{}, domain.Anchor{}, err
		}
	}
	if _, err := v.CheckRatios(r); err != nil {
		return domain.Ratios{}, domain.Anchor{}, err
	}

	a, err := parseAnchor(f)
	if err != nil {
		return domain.Ratios{}, domain.Anchor{}, err
	}
	if err := v.CheckAnchor(a); err != nil {
		return domain.Ratios{}, domain.Anchor{}, err
	}
	return r, a, nil
}

func parseAnchor(f domain.RecipeForm) (domain.Anchor, error) {
	name := strings.ToLower(strings.TrimSpace(f.Mode))
	if name == "" {
		name = domain.ModeFlour.String()
	}
	mode, ok := domain.AnchorModeFromString(name)
	if !ok {
		return domain.Anchor{}, domain.NewValidationError(FieldMode, domain.MissingValue, f.Mode,
			"Mode must be flour, dough or batch.")
	}

	switch mode {
	case domain.ModeFlour:
		g, err := ParseNumber(FieldFlour, f.Flour)
		if err != nil {
			return domain.Anchor{}, err
		}
		return domain.ByFlourWeight(g), nil
	case domain.ModeDough:
		g, err := ParseNumber(FieldDough, f.Dough)
		if err != nil {
			return domain.Anchor{}, err
		}
		return domain.ByTotalDoughWeight(g), nil
	default:
		n, err := ParseNumber(FieldBatchCount, f.BatchCount)
		if err != nil {
			return domain.Anchor{}, err
		}
		w, err := ParseNumber(FieldBatchUnit, f.BatchUnit)
		if err != nil {
			return domain.Anchor{}, err
		}
		return domain.ByBatch(n, w), nil
	}
}

// CheckRatios validates typed ratios. It returns soft warnings for
// implausible hydration and an error for anything the engine must not
// compute.
func (v *Validator) CheckRatios(r domain.Ratios) ([]*domain.ValidationError, error) {
	fields := []struct {
		name string
		val  float64
	}{
		{FieldHydration, r.Hydration},
		{FieldSalt, r.Salt},
		{FieldStarter, r.Starter},
		{FieldStarterHydration, r.StarterHydration},
	}
	for _, f := range fields {
		if err := checkNonNegative(f.name, f.val); err != nil {
			return nil, err
		}
	}

	if r.Hydration > v.limit {
		return nil, domain.NewValidationError(FieldHydration, domain.OutOfRange, formatPct(r.Hydration),
			"Hydration is over "+formatPct(v.limit)+". Please check your input.")
	}
	if r.Hydration > v.ceiling {
		return []*domain.ValidationError{
			domain.NewValidationError(FieldHydration, domain.ImplausibleValue, formatPct(r.Hydration),
				"Hydration is over "+formatPct(v.ceiling)+". This is likely a soup, not dough."),
		}, nil
	}
	return nil, nil
}

// CheckAnchor validates the anchor quantity for its mode.
func (v *Validator) CheckAnchor(a domain.Anchor) error {
	switch a.Mode {
	case domain.ModeFlour:
		return checkPositive(FieldFlour, a.Flour, "Please enter a valid Flour weight.")
	case domain.ModeDough:
		return checkPositive(FieldDough, a.Total, "Please enter a valid Total Dough weight.")
	case domain.ModeBatch:
		if err := checkFinite(FieldBatchCount, a.Count); err != nil {
			return err
		}
		if err := checkFinite(FieldBatchUnit, a.UnitWeight); err != nil {
			return err
		}
		if a.Count <= 0 {
			return domain.NewValidationError(FieldBatchCount, domain.InvalidBatchFactor, formatPct(a.Count),
				"Please enter valid Batch details.")
		}
		if a.UnitWeight <= 0 {
			return domain.NewValidationError(FieldBatchUnit, domain.InvalidBatchFactor, formatPct(a.UnitWeight),
				"Please enter valid Batch details.")
		}
		return checkFinite(FieldDough, a.Target())
	default:
		return domain.NewValidationError(FieldMode, domain.MissingValue, a.Mode.String(),
			"Mode must be flour, dough or batch.")
	}
}

// CheckLevainRatio validates a levain build ratio. Zero is allowed and
// means the whole target is seed.
func (v *Validator) CheckLevainRatio(ratio float64) error {
	return checkNonNegative(FieldLevainRatio, ratio)
}

// ParseLevainRatio parses and checks a raw build ratio.
func (v *Validator) ParseLevainRatio(raw string) (float64, error) {
	r, err := ParseNumber(FieldLevainRatio, raw)
	if err != nil {
		return 0, err
	}
	if err := v.CheckLevainRatio(r); err != nil {
		return 0, err
	}
	return r, nil
}

// ParseTemperature parses the four temperature fields. Blank fields are
// errors; there is no default target.
func (v *Validator) ParseTemperature(f domain.TemperatureForm) (domain.TemperatureInputs, error) {
	var in domain.TemperatureInputs
	var err error
	if in.Room, err = ParseNumber(FieldRoom, f.Room); err != nil {
		return domain.TemperatureInputs{}, err
	}
	if in.Flour, err = ParseNumber(FieldFlourTemp, f.Flour); err != nil {
		return domain.TemperatureInputs{}, err
	}
	if in.Friction, err = ParseNumber(FieldFriction, f.Friction); err != nil {
		return domain.TemperatureInputs{}, err
	}
	if in.Target, err = ParseNumber(FieldTarget, f.Target); err != nil {
		return domain.TemperatureInputs{}, err
	}
	return in, nil
}

// CheckTemperature rejects non-finite temperatures. Negative values are
// valid (frozen flour, cold rooms).
func (v *Validator) CheckTemperature(in domain.TemperatureInputs) error {
	fields := []struct {
		name string
		val  float64
	}{
		{FieldRoom, in.Room},
		{FieldFlourTemp, in.Flour},
		{FieldFriction, in.Friction},
		{FieldTarget, in.Target},
	}
	for _, f := range fields {
		if err := checkFinite(f.name, f.val); err != nil {
			return err
		}
	}
	return nil
}

func checkFinite(field string, val float64) error {
	if math.IsNaN(val) || math.IsInf(val, 0) {
		return domain.NewValidationError(field, domain.MissingValue, formatPct(val),
			label(field)+" must be a number.")
	}
	return nil
}

func checkNonNegative(field string, val float64) error {
	if err := checkFinite(field, val); err != nil {
		return err
	}
	if val < 0 {
		return domain.NewValidationError(field, domain.NegativeValue, formatPct(val),
			label(field)+" cannot be negative.")
	}
	return nil
}

func checkPositive(field string, val float64, msg string) error {
	if err := checkNonNegative(field, val); err != nil {
		return err
	}
	if val == 0 {
		return domain.NewValidationError(field, domain.MissingValue, "0", msg)
	}
	return nil
}

var labels = map[string]string{
	FieldMode:             "Mode",
	FieldFlour:            "Flour weight",
	FieldDough:            "Total Dough weight",
	FieldBatchCount:       "Batch count",
	FieldBatchUnit:        "Batch unit weight",
	FieldHydration:        "Hydration",
	FieldSalt:             "Salt",
	FieldStarter:          "Starter",
	FieldStarterHydration: "Starter hydration",
	FieldLevainRatio:      "Levain ratio",
	FieldLevainTarget:     "Levain target",
	FieldRoom:             "Room temperature",
	FieldFlourTemp:        "Flour temperature",
	FieldFriction:         "Friction factor",
	FieldTarget:           "Target dough temperature",
}

func label(field string) string {
	if l, ok := labels[field]; ok {
		return l
	}
	return field
}

func formatPct(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
