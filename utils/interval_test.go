package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 6, 1, hour, min, 0, 0, time.UTC)
}

func span(startHour, startMin, endHour, endMin int) Interval {
	return Interval{Start: at(startHour, startMin), End: at(endHour, endMin)}
}

func TestSubtractInterval(t *testing.T) {
	tests := []struct {
		name string
		slot Interval
		cut  Interval
		want []Interval
	}{
		{
			name: "cut in the middle leaves two residuals",
			slot: span(10, 0, 20, 0),
			cut:  span(12, 0, 14, 0),
			want: []Interval{span(10, 0, 12, 0), span(14, 0, 20, 0)},
		},
		{
			name: "cut at the start leaves the right residual",
			slot: span(10, 0, 20, 0),
			cut:  span(10, 0, 14, 0),
			want: []Interval{span(14, 0, 20, 0)},
		},
		{
			name: "cut at the end leaves the left residual",
			slot: span(10, 0, 20, 0),
			cut:  span(14, 0, 20, 0),
			want: []Interval{span(10, 0, 14, 0)},
		},
		{
			name: "cut covering the slot removes it",
			slot: span(10, 0, 20, 0),
			cut:  span(9, 0, 21, 0),
			want: nil,
		},
		{
			name: "exact cut removes the slot",
			slot: span(10, 0, 20, 0),
			cut:  span(10, 0, 20, 0),
			want: nil,
		},
		{
			name: "disjoint cut leaves the slot untouched",
			slot: span(10, 0, 12, 0),
			cut:  span(14, 0, 16, 0),
			want: []Interval{span(10, 0, 12, 0)},
		},
		{
			name: "touching cut leaves the slot untouched",
			slot: span(10, 0, 12, 0),
			cut:  span(12, 0, 14, 0),
			want: []Interval{span(10, 0, 12, 0)},
		},
		{
			name: "overlap on the left trims the start",
			slot: span(10, 0, 20, 0),
			cut:  span(8, 0, 12, 0),
			want: []Interval{span(12, 0, 20, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SubtractInterval(tt.slot, tt.cut)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeIntervals(t *testing.T) {
	t.Run("adjacent intervals merge", func(t *testing.T) {
		got := MergeIntervals([]Interval{span(12, 0, 14, 0), span(10, 0, 12, 0)})
		assert.Equal(t, []Interval{span(10, 0, 14, 0)}, got)
	})

	t.Run("overlapping intervals merge", func(t *testing.T) {
		got := MergeIntervals([]Interval{span(10, 0, 13, 0), span(12, 0, 16, 0)})
		assert.Equal(t, []Interval{span(10, 0, 16, 0)}, got)
	})

	t.Run("disjoint intervals stay separate and sorted", func(t *testing.T) {
		got := MergeIntervals([]Interval{span(15, 0, 16, 0), span(10, 0, 11, 0)})
		assert.Equal(t, []Interval{span(10, 0, 11, 0), span(15, 0, 16, 0)}, got)
	})

	t.Run("merge is idempotent", func(t *testing.T) {
		input := []Interval{span(10, 0, 12, 0), span(11, 0, 14, 0), span(16, 0, 18, 0)}
		once := MergeIntervals(input)
		twice := MergeIntervals(once)
		assert.Equal(t, once, twice)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, MergeIntervals(nil))
	})
}

func TestSubtractThenRestoreRoundTrips(t *testing.T) {
	slot := span(10, 0, 20, 0)
	cut := span(12, 0, 14, 0)

	residuals := SubtractInterval(slot, cut)
	require.Len(t, residuals, 2)

	restored := MergeIntervals(append(residuals, cut))
	assert.Equal(t, []Interval{slot}, restored)
}

func TestCoverageSurvivesDisjointAdditions(t *testing.T) {
	target := span(10, 0, 12, 0)
	free := []Interval{span(9, 0, 13, 0)}
	require.True(t, IsIntervalCovered(target, free))

	t.Run("separate interval added", func(t *testing.T) {
		merged := MergeIntervals(append([]Interval{span(15, 0, 16, 0)}, free...))
		assert.True(t, IsIntervalCovered(target, merged))
	})

	t.Run("adjacent interval merges into the covering span", func(t *testing.T) {
		merged := MergeIntervals(append([]Interval{span(13, 0, 14, 0)}, free...))
		assert.True(t, IsIntervalCovered(target, merged))
	})
}

func TestIsIntervalCovered(t *testing.T) {
	available := []Interval{span(10, 0, 12, 0), span(12, 0, 14, 0)}

	t.Run("contained in one interval", func(t *testing.T) {
		assert.True(t, IsIntervalCovered(span(10, 30, 11, 30), available))
	})

	t.Run("exact match", func(t *testing.T) {
		assert.True(t, IsIntervalCovered(span(12, 0, 14, 0), available))
	})

	t.Run("no stitching across touching intervals", func(t *testing.T) {
		// [11:00, 13:00) spans two stored intervals; coverage requires a
		// single containing interval, so this fails until they are merged.
		assert.False(t, IsIntervalCovered(span(11, 0, 13, 0), available))
		assert.True(t, IsIntervalCovered(span(11, 0, 13, 0), MergeIntervals(available)))
	})

	t.Run("outside availability", func(t *testing.T) {
		assert.False(t, IsIntervalCovered(span(15, 0, 16, 0), available))
	})
}

func TestParseAndCombine(t *testing.T) {
	date, err := ParseDate("2025-06-01")
	require.NoError(t, err)

	clock, err := ParseTime("09:30")
	require.NoError(t, err)

	combined := CombineDateTime(date, clock)
	assert.Equal(t, at(9, 30), combined)

	_, err = ParseDate("06/01/2025")
	assert.Error(t, err)

	_, err = ParseTime("9:3")
	assert.Error(t, err)
}

func TestEndOfDay(t *testing.T) {
	d := EndOfDay(at(9, 30))
	assert.Equal(t, 23, d.Hour())
	assert.Equal(t, 59, d.Minute())
	assert.Equal(t, at(0, 0), StartOfDay(d))
}
