package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasured(t *testing.T) {
	t.Parallel()

	r := Measured(12.5)
	assert.True(t, r.OK())
	v, ok := r.Value()
	assert.True(t, ok)
	assert.InDelta(t, 12.5, v, 1e-9)
	assert.Empty(t, r.Reason())
	assert.Equal(t, "12.5", r.String())
}

func TestFailed(t *testing.T) {
	t.Parallel()

	r := Failed(ReasonZeroResults)
	assert.False(t, r.OK())
	_, ok := r.Value()
	assert.False(t, ok)
	assert.Equal(t, ReasonZeroResults, r.Reason())
	assert.Equal(t, "ZERO_RESULTS", r.String())

	assert.Equal(t, ReasonUnknown, Failed("").Reason())
}

func TestResult_Scale(t *testing.T) {
	t.Parallel()

	for _, d := range []float64{0, 0.1, 1.5, 123.456, 7042.3} {
		one := Measured(d)
		two := one.Scale(2)
		v, ok := two.Value()
		assert.True(t, ok)
		assert.Equal(t, 2*d, v)
	}

	failed := Failed(ReasonNotFound).Scale(2)
	assert.Equal(t, ReasonNotFound, failed.Reason())
	assert.Equal(t, "NOT_FOUND", failed.String())
}

func TestResult_StringFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		v    float64
		want string
	}{
		{0, "0"},
		{10, "10"},
		{-3.25, "-3.25"},
		{1234.5, "1234.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Measured(tt.v).String())
	}
}
