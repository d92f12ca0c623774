package utils

import (
	"sort"
	"time"
)

// Date and time layouts used across the API (query params and slot payloads).
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Interval is a half-open [Start, End) span of calendar date plus time of day.
// Two intervals that merely touch (End == next Start) are adjacent, not
// overlapping.
type Interval struct {
	Start time.Time
	End   time.Time
}

// SubtractInterval removes cut from slot and returns the remaining pieces.
// The result is empty when cut fully covers slot, contains the original slot
// when they do not overlap, and otherwise holds one or two residuals.
// Zero-length residuals are dropped.
func SubtractInterval(slot, cut Interval) []Interval {
	// No overlap: cut sits entirely at or past the slot end, or at or before
	// the slot start.
	if !cut.Start.Before(slot.End) || !cut.End.After(slot.Start) {
		return []Interval{slot}
	}

	var remaining []Interval
	if cut.Start.After(slot.Start) {
		remaining = append(remaining, Interval{Start: slot.Start, End: cut.Start})
	}
	if cut.End.Before(slot.End) {
		remaining = append(remaining, Interval{Start: cut.End, End: slot.End})
	}
	return remaining
}

// MergeIntervals collapses an unordered interval set into ascending, maximal
// form: overlapping or exactly adjacent intervals become one. An empty input
// yields an empty result.
func MergeIntervals(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].End.Before(sorted[j].End)
		}
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

// IsIntervalCovered reports whether a single interval in the set fully
// contains target. It deliberately does not stitch adjacent intervals
// together; merge the set first if stitched coverage is wanted.
func IsIntervalCovered(target Interval, intervals []Interval) bool {
	for _, iv := range intervals {
		if !iv.Start.After(target.Start) && !iv.End.Before(target.End) {
			return true
		}
	}
	return false
}

// ParseDate parses a YYYY-MM-DD query value.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseTime parses a 24-hour HH:MM query value.
func ParseTime(value string) (time.Time, error) {
	return time.Parse(TimeLayout, value)
}

// CombineDateTime builds an instant from a calendar date and a time of day.
func CombineDateTime(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), 0, 0, time.UTC)
}

// EndOfDay returns the 23:59 instant of the given date, the upper bound used
// for open-ended same-day searches.
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 0, 0, time.UTC)
}

// StartOfDay returns the 00:00 instant of the given date.
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
