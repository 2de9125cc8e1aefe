package control

import (
	"fmt"
	"time"
)

// Accepted parameter ranges and the defaults substituted for
// out-of-range values.
const (
	MinInterval     = 5
	MaxInterval     = 120
	DefaultInterval = 5

	MinThreshold     = 40
	MaxThreshold     = 100
	DefaultThreshold = 70

	MinTargetTemperature     = 20
	MaxTargetTemperature     = 60
	DefaultTargetTemperature = 35

	MinFanSpeed     = 0
	MaxFanSpeed     = 100
	DefaultFanSpeed = 100

	DefaultClearAirInterval = 0
	DefaultClearAirDuration = 10
)

// Parameters configure the auto-control loop.
// Intervals and durations are in seconds, temperatures in °C.
type Parameters struct {
	Interval          int
	Threshold         int
	TargetTemperature int
	MaxFanSpeed       int

	// ClearAirInterval is the time between two purges, 0 disables them.
	ClearAirInterval int

	// ClearAirDuration is how long a purge holds the max fan speed.
	ClearAirDuration int
}

// DefaultParameters returns the parameters used when none are given.
func DefaultParameters() Parameters {
	return Parameters{
		Interval:          DefaultInterval,
		Threshold:         DefaultThreshold,
		TargetTemperature: DefaultTargetTemperature,
		MaxFanSpeed:       DefaultFanSpeed,
		ClearAirInterval:  DefaultClearAirInterval,
		ClearAirDuration:  DefaultClearAirDuration,
	}
}

func (p Parameters) period() time.Duration {
	return time.Duration(p.Interval) * time.Second
}

func (p Parameters) clearAirPeriod() time.Duration {
	return time.Duration(p.ClearAirInterval) * time.Second
}

func (p Parameters) clearAirHold() time.Duration {
	return time.Duration(p.ClearAirDuration) * time.Second
}

// Correction reports a parameter replaced by its default.
type Correction struct {
	Field string
	Given int
	Set   int
}

func (c Correction) String() string {
	return fmt.Sprintf("invalid %s, %s set to %d", c.Field, c.Field, c.Set)
}

// Validate returns p with every out-of-range value replaced by its default,
// together with the list of replacements. Validation never fails.
func Validate(p Parameters) (Parameters, []Correction) {
	var corrections []Correction

	replace := func(field string, v *int, ok bool, def int) {
		if ok {
			return
		}
		corrections = append(corrections, Correction{Field: field, Given: *v, Set: def})
		*v = def
	}

	replace("interval", &p.Interval,
		p.Interval >= MinInterval && p.Interval <= MaxInterval, DefaultInterval)
	replace("threshold", &p.Threshold,
		p.Threshold >= MinThreshold && p.Threshold <= MaxThreshold, DefaultThreshold)
	replace("target temperature", &p.TargetTemperature,
		p.TargetTemperature >= MinTargetTemperature && p.TargetTemperature <= MaxTargetTemperature, DefaultTargetTemperature)
	// DefaultTargetTemperature is below MinThreshold,
	// the band is never empty after this.
	replace("target temperature", &p.TargetTemperature,
		p.TargetTemperature < p.Threshold, DefaultTargetTemperature)
	replace("max fan speed", &p.MaxFanSpeed,
		p.MaxFanSpeed >= MinFanSpeed && p.MaxFanSpeed <= MaxFanSpeed, DefaultFanSpeed)
	replace("clear air interval", &p.ClearAirInterval,
		p.ClearAirInterval >= 0, DefaultClearAirInterval)
	replace("clear air duration", &p.ClearAirDuration,
		p.ClearAirDuration >= 0, DefaultClearAirDuration)

	return p, corrections
}

// ClampSpeed bounds a requested fan speed to [0, 100].
func ClampSpeed(percent int) int {
	switch {
	case percent < MinFanSpeed:
		return MinFanSpeed
	case percent > MaxFanSpeed:
		return MaxFanSpeed
	}
	return percent
}
