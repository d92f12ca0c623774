package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkeasy/dto"
	"parkeasy/errors"
	"parkeasy/utils"
)

func TestExpandRecurringPayload(t *testing.T) {
	t.Run("daily pattern expands one interval per day", func(t *testing.T) {
		intervals, err := expandRecurringPayload(&dto.RecurringSlotPayload{
			StartDate: "2025-06-02", StartTime: "09:00", EndTime: "17:00",
			Pattern: utils.PatternDaily, EndDate: "2025-06-04",
		})
		require.NoError(t, err)
		require.Len(t, intervals, 3)
		assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), intervals[0].Start)
		assert.Equal(t, time.Date(2025, 6, 4, 17, 0, 0, 0, time.UTC), intervals[2].End)
	})

	t.Run("overnight crosses midnight", func(t *testing.T) {
		intervals, err := expandRecurringPayload(&dto.RecurringSlotPayload{
			StartDate: "2025-06-02", StartTime: "22:00", EndTime: "06:00",
			Pattern: utils.PatternDaily, Overnight: true, EndDate: "2025-06-02",
		})
		require.NoError(t, err)
		require.Len(t, intervals, 1)
		assert.Equal(t, time.Date(2025, 6, 3, 6, 0, 0, 0, time.UTC), intervals[0].End)
	})

	t.Run("inverted times without overnight rejected", func(t *testing.T) {
		_, err := expandRecurringPayload(&dto.RecurringSlotPayload{
			StartDate: "2025-06-02", StartTime: "22:00", EndTime: "06:00",
			Pattern: utils.PatternDaily, EndDate: "2025-06-03",
		})
		require.Error(t, err)
		assert.Equal(t, "Start time must be before end time unless overnight booking is selected", errors.GetAppError(err).Message)
	})

	t.Run("daily span capped at 90 days", func(t *testing.T) {
		_, err := expandRecurringPayload(&dto.RecurringSlotPayload{
			StartDate: "2025-01-01", StartTime: "09:00", EndTime: "17:00",
			Pattern: utils.PatternDaily, EndDate: "2025-12-31",
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidRange, errors.GetAppError(err).Code)
	})

	t.Run("daily cap counts days inclusively", func(t *testing.T) {
		// 2025-01-01 through 2025-03-31 is exactly 90 calendar days
		intervals, err := expandRecurringPayload(&dto.RecurringSlotPayload{
			StartDate: "2025-01-01", StartTime: "09:00", EndTime: "17:00",
			Pattern: utils.PatternDaily, EndDate: "2025-03-31",
		})
		require.NoError(t, err)
		assert.Len(t, intervals, 90)

		_, err = expandRecurringPayload(&dto.RecurringSlotPayload{
			StartDate: "2025-01-01", StartTime: "09:00", EndTime: "17:00",
			Pattern: utils.PatternDaily, EndDate: "2025-04-01",
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidRange, errors.GetAppError(err).Code)
	})

	t.Run("weekly span capped at 52 weeks", func(t *testing.T) {
		_, err := expandRecurringPayload(&dto.RecurringSlotPayload{
			StartDate: "2025-06-02", StartTime: "09:00", EndTime: "17:00",
			Pattern: utils.PatternWeekly, Weeks: 60,
		})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidRange, errors.GetAppError(err).Code)
	})

	t.Run("weekly expands on the same weekday", func(t *testing.T) {
		intervals, err := expandRecurringPayload(&dto.RecurringSlotPayload{
			StartDate: "2025-06-02", StartTime: "09:00", EndTime: "17:00",
			Pattern: utils.PatternWeekly, Weeks: 2,
		})
		require.NoError(t, err)
		require.Len(t, intervals, 2)
		assert.Equal(t, time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC), intervals[1].Start)
	})
}
