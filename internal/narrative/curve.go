package narrative

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ceiling is the value every counter terminates at.
const Ceiling = 100.0

// CurvePoint sets the increment bound for values at or above Threshold.
type CurvePoint struct {
	Threshold float64 `mapstructure:"threshold" json:"threshold" yaml:"threshold" toml:"threshold"`
	Bound     float64 `mapstructure:"bound" json:"bound" yaml:"bound" toml:"bound"`
}

// SpeedCurve maps the current counter value to the upper bound of the next
// random increment. Points are ordered by ascending Threshold; the last
// point whose Threshold is <= v applies.
type SpeedCurve []CurvePoint

// DefaultSpeedCurve returns the fast-start, slow-finish reference curve.
func DefaultSpeedCurve() SpeedCurve {
	return SpeedCurve{
		{Threshold: 0, Bound: 0.1},
		{Threshold: 15, Bound: 0.3},
		{Threshold: 60, Bound: 0.1},
		{Threshold: 85, Bound: 0.05},
		{Threshold: 98, Bound: 0.002},
	}
}

// Bound returns the increment bound that applies at v. Values below the
// first threshold use the first point.
func (c SpeedCurve) Bound(v float64) float64 {
	if len(c) == 0 {
		return 0
	}
	bound := c[0].Bound
	for _, p := range c[1:] {
		if v < p.Threshold {
			break
		}
		bound = p.Bound
	}
	return bound
}

// Validate reports the first structural problem with the curve.
func (c SpeedCurve) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("speed curve is empty")
	}
	if c[0].Threshold != 0 {
		return fmt.Errorf("first threshold must be 0, got %v", c[0].Threshold)
	}
	for i, p := range c {
		if !(p.Bound > 0) || math.IsInf(p.Bound, 0) {
			return fmt.Errorf("point %d: bound must be positive, got %v", i, p.Bound)
		}
		if p.Threshold < 0 || p.Threshold >= Ceiling {
			return fmt.Errorf("point %d: threshold must be in [0,%v), got %v", i, Ceiling, p.Threshold)
		}
		if i > 0 && p.Threshold <= c[i-1].Threshold {
			return fmt.Errorf("point %d: thresholds must be strictly ascending", i)
		}
	}
	return nil
}

// String renders the curve in the compact "threshold:bound,..." form
// accepted by the configuration loader.
func (c SpeedCurve) String() string {
	s := ""
	for i, p := range c {
		if i > 0 {
			s += ","
		}
		s += fmt.Sprintf("%g:%g", p.Threshold, p.Bound)
	}
	return s
}

// ParseSpeedCurve parses the compact form produced by String. Blank
// entries are skipped; the result is not validated.
func ParseSpeedCurve(s string) (SpeedCurve, error) {
	var c SpeedCurve
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		threshold, bound, ok := strings.Cut(entry, ":")
		if !ok {
			return nil, fmt.Errorf("speed curve entry %q: want threshold:bound", entry)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(threshold), 64)
		if err != nil {
			return nil, fmt.Errorf("speed curve entry %q: %w", entry, err)
		}
		b, err := strconv.ParseFloat(strings.TrimSpace(bound), 64)
		if err != nil {
			return nil, fmt.Errorf("speed curve entry %q: %w", entry, err)
		}
		c = append(c, CurvePoint{Threshold: t, Bound: b})
	}
	return c, nil
}

// Step computes the counter value that follows v for a uniform draw u in
// [0,1). The result is clamped to [v, Ceiling]; deciding whether the
// counter is finished is left to the caller.
func Step(c SpeedCurve, v, u float64) float64 {
	v = Clamp(v)
	switch {
	case u < 0 || math.IsNaN(u):
		u = 0
	case u > 1:
		u = 1
	}
	return Clamp(v + u*c.Bound(v))
}

// Clamp limits v to [0, Ceiling]. NaN becomes 0.
func Clamp(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > Ceiling:
		return Ceiling
	default:
		return v
	}
}
