package domain

// DefaultScaldingAbove is the water temperature (°C) above which the
// water is flagged as too hot to handle.
const DefaultScaldingAbove = 45

// TemperatureInputs are the thermal contributors to the final dough, in °C.
type TemperatureInputs struct {
	Room     float64
	Flour    float64
	Friction float64 // heat added by mixing
	Target   float64 // desired dough temperature
}

// TemperatureResult is the mixing-water temperature needed to hit Target.
type TemperatureResult struct {
	Water int     // rounded °C
	Raw   float64 // unrounded °C
	Band  WaterBand
}

// WaterBand classifies a water temperature for display. It never signals
// an error; extreme results are still valid.
type WaterBand int

const (
	BandNormal WaterBand = iota
	BandIce              // below freezing, needs ice
	BandScalding         // too hot to handle comfortably
)

// String returns a human-readable band.
func (b WaterBand) String() string {
	switch b {
	case BandNormal:
		return "normal"
	case BandIce:
		return "ice"
	case BandScalding:
		return "scalding"
	default:
		return "unknown"
	}
}

// BandFor classifies a water temperature against the scalding threshold.
func BandFor(celsius, scaldingAbove float64) WaterBand {
	switch {
	case celsius < 0:
		return BandIce
	case celsius > scaldingAbove:
		return BandScalding
	default:
		return BandNormal
	}
}
