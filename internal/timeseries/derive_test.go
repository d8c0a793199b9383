package timeseries

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPctChange(t *testing.T) {
	out := PctChange([]float64{100, 110, 99})

	require.Len(t, out, 3)
	assert.True(t, IsMissing(out[0]), "first element has no prior week")
	assert.InDelta(t, 0.10, out[1], 1e-12)
	assert.InDelta(t, -0.10, out[2], 1e-12)
}

func TestDiff(t *testing.T) {
	out := Diff([]float64{1.0, 1.5, Missing(), 2.0})

	assert.True(t, IsMissing(out[0]))
	assert.InDelta(t, 0.5, out[1], 1e-12)
	assert.True(t, IsMissing(out[2]))
	// Prior value missing poisons the difference too
	assert.True(t, IsMissing(out[3]))
}

func TestExpandingZScoreActivation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	min := 5

	out := ExpandingZScore(x, min)

	for i := 0; i < min-1; i++ {
		assert.True(t, IsMissing(out[i]), "week %d is before min history", i)
	}
	for i := min - 1; i < len(x); i++ {
		assert.False(t, IsMissing(out[i]), "week %d is at or after min history", i)
	}
}

func TestExpandingZScoreIsCausal(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6}
	out := ExpandingZScore(x, 3)

	// Appending future data must not change earlier scores
	extended := append(append([]float64{}, x...), 100, -50)
	outExt := ExpandingZScore(extended, 3)

	for i := range x {
		if IsMissing(out[i]) {
			assert.True(t, IsMissing(outExt[i]))
			continue
		}
		assert.Equal(t, out[i], outExt[i], "score at %d changed when future data was appended", i)
	}
}

func TestExpandingZScoreValue(t *testing.T) {
	x := []float64{2, 4, 6}
	out := ExpandingZScore(x, 3)

	// mean=4, sample std=2, z = (6-4)/2 = 1
	assert.InDelta(t, 1.0, out[2], 1e-12)
}

func TestExpandingZScoreZeroVariance(t *testing.T) {
	x := []float64{3, 3, 3, 3}
	out := ExpandingZScore(x, 2)

	for i := 1; i < len(x); i++ {
		assert.True(t, IsMissing(out[i]), "zero variance must yield missing, not zero")
	}
}

func TestForwardSumLooksStrictlyAhead(t *testing.T) {
	x := []float64{0.01, -0.02, 0.03, 0.00, 0.015, 0.005}
	h := 4

	out := ForwardSum(x, h)

	// Target at week 0 is the sum of weeks 1..4, not 0..3
	assert.InDelta(t, -0.02+0.03+0.00+0.015, out[0], 1e-12)
	assert.InDelta(t, 0.03+0.00+0.015+0.005, out[1], 1e-12)

	// Tail windows run past the end of the data
	for i := len(x) - h; i < len(x); i++ {
		assert.True(t, IsMissing(out[i]), "row %d has no complete forward window", i)
	}
}

func TestForwardSumMissingPoisonsWindow(t *testing.T) {
	x := []float64{0.01, math.NaN(), 0.03, 0.02, 0.01, 0.04}

	out := ForwardSum(x, 2)

	assert.True(t, IsMissing(out[0]), "window containing missing value must be missing")
	assert.InDelta(t, 0.05, out[1], 1e-12)
	assert.InDelta(t, 0.03, out[2], 1e-12)
}
