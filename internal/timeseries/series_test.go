package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestSortDedupe(t *testing.T) {
	s := New(
		[]time.Time{d(2024, 3, 6), d(2024, 3, 4), d(2024, 3, 6), d(2024, 3, 5)},
		[]float64{2.0, 1.0, 3.0, 1.5},
	)

	out := s.SortDedupe()

	require.Equal(t, 3, out.Len())
	assert.Equal(t, []time.Time{d(2024, 3, 4), d(2024, 3, 5), d(2024, 3, 6)}, out.Dates)
	// Last occurrence wins on the duplicated date
	assert.Equal(t, []float64{1.0, 1.5, 3.0}, out.Values)
}

func TestWeekEnding(t *testing.T) {
	tests := []struct {
		name   string
		in     time.Time
		anchor time.Weekday
		want   time.Time
	}{
		{"monday maps forward to friday", d(2024, 3, 4), time.Friday, d(2024, 3, 8)},
		{"friday maps to itself", d(2024, 3, 8), time.Friday, d(2024, 3, 8)},
		{"saturday maps to next friday", d(2024, 3, 9), time.Friday, d(2024, 3, 15)},
		{"wednesday anchor", d(2024, 3, 7), time.Wednesday, d(2024, 3, 13)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WeekEnding(tt.in, tt.anchor))
		})
	}
}

func TestResampleWeeklyLast(t *testing.T) {
	// Two weeks of daily data with a gap week in between
	s := New(
		[]time.Time{
			d(2024, 3, 4), d(2024, 3, 5), d(2024, 3, 7), // week ending Fri 2024-03-08
			d(2024, 3, 18), d(2024, 3, 22), // week ending Fri 2024-03-22
		},
		[]float64{1.0, 2.0, 3.0, 4.0, 5.0},
	)

	out := s.ResampleWeeklyLast(time.Friday)

	require.Equal(t, 2, out.Len())
	assert.Equal(t, []time.Time{d(2024, 3, 8), d(2024, 3, 22)}, out.Dates)
	assert.Equal(t, []float64{3.0, 5.0}, out.Values)

	// Index strictly increasing, no duplicates
	for i := 1; i < out.Len(); i++ {
		assert.True(t, out.Dates[i].After(out.Dates[i-1]), "index must be strictly increasing")
	}
}

func TestResampleWeeklyLastSkipsMissingWithinBucket(t *testing.T) {
	s := New(
		[]time.Time{d(2024, 3, 6), d(2024, 3, 7), d(2024, 3, 8)},
		[]float64{1.0, 2.0, Missing()},
	)

	out := s.ResampleWeeklyLast(time.Friday)

	require.Equal(t, 1, out.Len())
	// Trailing missing observation does not erase the week's last good value
	assert.Equal(t, 2.0, out.Values[0])
}

func TestResampleWeeklyLastAllMissingBucket(t *testing.T) {
	s := New(
		[]time.Time{d(2024, 3, 6), d(2024, 3, 13)},
		[]float64{Missing(), 7.0},
	)

	out := s.ResampleWeeklyLast(time.Friday)

	require.Equal(t, 2, out.Len())
	assert.True(t, IsMissing(out.Values[0]))
	assert.Equal(t, 7.0, out.Values[1])
}

func TestInnerJoin(t *testing.T) {
	a := New([]time.Time{d(2024, 1, 5), d(2024, 1, 12), d(2024, 1, 19)}, []float64{1, 2, 3})
	b := New([]time.Time{d(2024, 1, 12), d(2024, 1, 19), d(2024, 1, 26)}, []float64{20, 30, 40})
	c := New([]time.Time{d(2024, 1, 5), d(2024, 1, 19)}, []float64{100, 300})

	dates, values := InnerJoin(a, b, c)

	require.Equal(t, []time.Time{d(2024, 1, 19)}, dates)
	assert.Equal(t, []float64{3}, values[0])
	assert.Equal(t, []float64{30}, values[1])
	assert.Equal(t, []float64{300}, values[2])
}

func TestInnerJoinDisjoint(t *testing.T) {
	a := New([]time.Time{d(2024, 1, 5)}, []float64{1})
	b := New([]time.Time{d(2024, 1, 12)}, []float64{2})

	dates, _ := InnerJoin(a, b)
	assert.Empty(t, dates)
}
