package narrative

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpeedCurve_Bound(t *testing.T) {
	c := DefaultSpeedCurve()

	tests := []struct {
		v    float64
		want float64
	}{
		{-5, 0.1},
		{0, 0.1},
		{14.999, 0.1},
		{15, 0.3},
		{59.9, 0.3},
		{60, 0.1},
		{84.99, 0.1},
		{85, 0.05},
		{97.999, 0.05},
		{98, 0.002},
		{99.999, 0.002},
		{100, 0.002},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Bound(tt.v), "Bound(%v)", tt.v)
	}

	assert.Zero(t, SpeedCurve(nil).Bound(50))
}

func TestSpeedCurve_Validate(t *testing.T) {
	tests := []struct {
		name    string
		curve   SpeedCurve
		wantErr bool
	}{
		{"default", DefaultSpeedCurve(), false},
		{"single point", SpeedCurve{{0, 1}}, false},
		{"empty", nil, true},
		{"first threshold not zero", SpeedCurve{{5, 0.1}}, true},
		{"zero bound", SpeedCurve{{0, 0}}, true},
		{"negative bound", SpeedCurve{{0, -1}}, true},
		{"nan bound", SpeedCurve{{0, math.NaN()}}, true},
		{"descending", SpeedCurve{{0, 0.1}, {50, 0.2}, {40, 0.1}}, true},
		{"duplicate threshold", SpeedCurve{{0, 0.1}, {0, 0.2}}, true},
		{"threshold at ceiling", SpeedCurve{{0, 0.1}, {100, 0.2}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.curve.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSpeedCurve_String(t *testing.T) {
	assert.Equal(t, "0:0.1,15:0.3,60:0.1,85:0.05,98:0.002", DefaultSpeedCurve().String())
}

func TestParseSpeedCurve(t *testing.T) {
	c, err := ParseSpeedCurve(DefaultSpeedCurve().String())
	require.NoError(t, err)
	assert.Equal(t, DefaultSpeedCurve(), c)

	c, err = ParseSpeedCurve(" 0 : 1 , , 50:0.5 ")
	require.NoError(t, err)
	assert.Equal(t, SpeedCurve{{0, 1}, {50, 0.5}}, c)

	_, err = ParseSpeedCurve("0-1")
	assert.Error(t, err)
	_, err = ParseSpeedCurve("0:fast")
	assert.Error(t, err)
}

func TestStep(t *testing.T) {
	c := DefaultSpeedCurve()

	assert.Equal(t, 10.0, Step(c, 10, 0))
	assert.InDelta(t, 10.05, Step(c, 10, 0.5), 1e-12)
	assert.InDelta(t, 30.15, Step(c, 30, 0.5), 1e-12)
	assert.Equal(t, 100.0, Step(c, 99.999, 0.9), "overshoot clamps to the ceiling")
	assert.Equal(t, 100.0, Step(c, 150, 0.5))
	assert.Equal(t, 0.0, Step(c, -3, 0))
	assert.Equal(t, 20.0, Step(c, 20, -1), "negative draws add nothing")
	assert.InDelta(t, 20.3, Step(c, 20, 7), 1e-12, "draws above one are capped")
	assert.Equal(t, 20.0, Step(c, 20, math.NaN()))
}

func TestStep_NeverDecreasesOrExceedsCeiling(t *testing.T) {
	c := DefaultSpeedCurve()
	rng := NewSeededRand(42)
	v := 0.0
	for range 200000 {
		next := Step(c, v, rng.Float64())
		if next < v || next > Ceiling {
			t.Fatalf("Step(%v) = %v out of range", v, next)
		}
		v = next
		if v >= Ceiling {
			return
		}
	}
	t.Fatalf("counter did not terminate, stuck at %v", v)
}
