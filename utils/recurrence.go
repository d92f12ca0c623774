package utils

import (
	"time"

	"github.com/teambition/rrule-go"

	"parkeasy/errors"
)

// Recurrence patterns accepted by slot generation and the recurring search
// filter.
const (
	PatternDaily  = "daily"
	PatternWeekly = "weekly"
)

// SlotSpec is one concrete occurrence produced by expanding a recurring
// pattern. Dates and times are kept separate because that is how slots are
// stored and submitted.
type SlotSpec struct {
	StartDate time.Time
	StartTime time.Time
	EndDate   time.Time
	EndTime   time.Time
}

// RecurrenceOptions carries the pattern-specific parameters. EndDate is
// required for daily patterns, Weeks for weekly ones.
type RecurrenceOptions struct {
	EndDate *time.Time
	Weeks   int
}

// GenerateRecurringSlots expands a recurring availability pattern into
// concrete slot occurrences in ascending date order. Daily patterns produce
// one slot per calendar day from startDate through opts.EndDate inclusive;
// weekly patterns produce one slot every seven days for opts.Weeks
// occurrences. Overnight slots end on the day after their start date.
func GenerateRecurringSlots(startDate, startTime, endTime time.Time, pattern string, overnight bool, opts RecurrenceOptions) ([]SlotSpec, error) {
	dtstart := StartOfDay(startDate)

	var option rrule.ROption
	switch pattern {
	case PatternDaily:
		if opts.EndDate == nil {
			return nil, errors.NewAppError(errors.ErrCodeMissingParameter,
				"End date is required for daily pattern", nil)
		}
		if opts.EndDate.Before(startDate) {
			return nil, errors.NewAppError(errors.ErrCodeInvalidRange,
				"End date must be on or after start date", nil)
		}
		option = rrule.ROption{
			Freq:    rrule.DAILY,
			Dtstart: dtstart,
			Until:   StartOfDay(*opts.EndDate),
		}
	case PatternWeekly:
		if opts.Weeks <= 0 {
			return nil, errors.NewAppError(errors.ErrCodeMissingParameter,
				"Number of weeks is required for weekly pattern", nil)
		}
		option = rrule.ROption{
			Freq:    rrule.WEEKLY,
			Dtstart: dtstart,
			Count:   opts.Weeks,
		}
	default:
		return nil, errors.NewAppError(errors.ErrCodeUnknownPattern,
			"Unknown pattern: "+pattern, nil)
	}

	rule, err := rrule.NewRRule(option)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeUnknownPattern,
			"Invalid recurrence rule", err)
	}

	var slots []SlotSpec
	for _, occurrence := range rule.All() {
		endDate := occurrence
		if overnight {
			endDate = occurrence.AddDate(0, 0, 1)
		}
		slots = append(slots, SlotSpec{
			StartDate: occurrence,
			StartTime: startTime,
			EndDate:   endDate,
			EndTime:   endTime,
		})
	}
	return slots, nil
}

// SlotSpecInterval converts an occurrence into the half-open instant span it
// occupies.
func SlotSpecInterval(spec SlotSpec) Interval {
	return Interval{
		Start: CombineDateTime(spec.StartDate, spec.StartTime),
		End:   CombineDateTime(spec.EndDate, spec.EndTime),
	}
}
