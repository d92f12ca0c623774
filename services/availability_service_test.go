package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkeasy/models"
	"parkeasy/utils"
)

func hour(h int) time.Time {
	return time.Date(2025, 6, 1, h, 0, 0, 0, time.UTC)
}

func between(startHour, endHour int) utils.Interval {
	return utils.Interval{Start: hour(startHour), End: hour(endHour)}
}

func TestBlockOutIntervals(t *testing.T) {
	t.Run("booking splits a slot", func(t *testing.T) {
		got := BlockOutIntervals(
			[]utils.Interval{between(10, 20)},
			[]utils.Interval{between(12, 14)})
		assert.Equal(t, []utils.Interval{between(10, 12), between(14, 20)}, got)
	})

	t.Run("multiple bookings carve multiple gaps", func(t *testing.T) {
		got := BlockOutIntervals(
			[]utils.Interval{between(8, 20)},
			[]utils.Interval{between(9, 10), between(12, 14)})
		assert.Equal(t, []utils.Interval{between(8, 9), between(10, 12), between(14, 20)}, got)
	})

	t.Run("booking consuming a whole slot removes it", func(t *testing.T) {
		got := BlockOutIntervals(
			[]utils.Interval{between(10, 12), between(14, 16)},
			[]utils.Interval{between(10, 12)})
		assert.Equal(t, []utils.Interval{between(14, 16)}, got)
	})

	t.Run("result stays disjoint", func(t *testing.T) {
		got := BlockOutIntervals(
			[]utils.Interval{between(8, 12), between(12, 18)},
			[]utils.Interval{between(10, 14)})
		for i := 1; i < len(got); i++ {
			assert.False(t, got[i].Start.Before(got[i-1].End))
		}
	})
}

func TestRestoreIntervals(t *testing.T) {
	t.Run("restore heals the split", func(t *testing.T) {
		availability := []utils.Interval{between(10, 20)}
		booked := []utils.Interval{between(12, 14)}

		blocked := BlockOutIntervals(availability, booked)
		require.Len(t, blocked, 2)

		restored := RestoreIntervals(blocked, booked)
		assert.Equal(t, availability, restored)
	})

	t.Run("restore merges adjacent spans", func(t *testing.T) {
		got := RestoreIntervals(
			[]utils.Interval{between(10, 12)},
			[]utils.Interval{between(12, 14)})
		assert.Equal(t, []utils.Interval{between(10, 14)}, got)
	})
}

func TestIsBookingCoveredByIntervals(t *testing.T) {
	booking := &models.Booking{
		Slots: []models.BookingSlot{
			{
				StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				StartTime: "10:00",
				EndDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				EndTime:   "12:00",
			},
			{
				StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				StartTime: "15:00",
				EndDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				EndTime:   "16:00",
			},
		},
	}

	assert.True(t, IsBookingCoveredByIntervals(booking, []utils.Interval{between(9, 18)}))
	assert.False(t, IsBookingCoveredByIntervals(booking, []utils.Interval{between(9, 12)}))
	assert.False(t, IsBookingCoveredByIntervals(booking, nil))
}
