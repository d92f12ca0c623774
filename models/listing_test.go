package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkeasy/utils"
)

func date(value string) time.Time {
	d, err := time.Parse(utils.DateLayout, value)
	if err != nil {
		panic(err)
	}
	return d
}

func listingWithSlots(slots ...ListingSlot) *Listing {
	return &Listing{ID: 1, Title: "Spot", Slots: slots}
}

func daySlot(day, start, end string) ListingSlot {
	return ListingSlot{StartDate: date(day), StartTime: start, EndDate: date(day), EndTime: end}
}

func TestSlotInterval(t *testing.T) {
	slot := daySlot("2025-06-01", "09:30", "17:00")
	iv, err := slot.Interval()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC), iv.Start)
	assert.Equal(t, time.Date(2025, 6, 1, 17, 0, 0, 0, time.UTC), iv.End)

	bad := ListingSlot{StartDate: date("2025-06-01"), StartTime: "morning", EndDate: date("2025-06-01"), EndTime: "17:00"}
	_, err = bad.Interval()
	assert.Error(t, err)
}

func TestDateBoundPredicatesAreInclusive(t *testing.T) {
	listing := listingWithSlots(daySlot("2025-06-05", "09:00", "17:00"))

	// A slot ending on the queried day still counts as availability after it,
	// and a slot starting on the queried day counts as availability before it.
	assert.True(t, listing.HasAvailabilityAfterDate(date("2025-06-05")))
	assert.True(t, listing.HasAvailabilityAfterDate(date("2025-06-01")))
	assert.False(t, listing.HasAvailabilityAfterDate(date("2025-06-06")))

	assert.True(t, listing.HasAvailabilityBeforeDate(date("2025-06-05")))
	assert.True(t, listing.HasAvailabilityBeforeDate(date("2025-06-10")))
	assert.False(t, listing.HasAvailabilityBeforeDate(date("2025-06-04")))
}

func TestTimePredicates(t *testing.T) {
	listing := listingWithSlots(daySlot("2025-06-05", "09:00", "17:00"))

	ten, err := utils.ParseTime("10:00")
	require.NoError(t, err)
	eighteen, err := utils.ParseTime("18:00")
	require.NoError(t, err)
	eight, err := utils.ParseTime("08:00")
	require.NoError(t, err)

	assert.True(t, listing.HasAvailabilityAfterTime(ten))
	assert.False(t, listing.HasAvailabilityAfterTime(eighteen))
	assert.True(t, listing.HasAvailabilityBeforeTime(ten))
	assert.False(t, listing.HasAvailabilityBeforeTime(eight))
}

func TestIsAvailableForRange(t *testing.T) {
	listing := listingWithSlots(
		daySlot("2025-06-05", "09:00", "12:00"),
		daySlot("2025-06-05", "12:00", "17:00"))

	start := time.Date(2025, 6, 5, 10, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 5, 14, 0, 0, 0, time.UTC)

	// The two touching slots merge, so a range spanning the seam is covered.
	assert.True(t, listing.IsAvailableForRange(start, end))
	assert.False(t, listing.IsAvailableForRange(start, time.Date(2025, 6, 5, 18, 0, 0, 0, time.UTC)))
}

func TestIsActive(t *testing.T) {
	listing := listingWithSlots(daySlot("2025-06-05", "09:00", "17:00"))

	assert.True(t, listing.IsActive(time.Date(2025, 6, 5, 16, 0, 0, 0, time.UTC)))
	assert.False(t, listing.IsActive(time.Date(2025, 6, 5, 17, 0, 0, 0, time.UTC)))
}

func TestBookingIntervals(t *testing.T) {
	booking := &Booking{
		Slots: []BookingSlot{
			{StartDate: date("2025-06-05"), StartTime: "10:00", EndDate: date("2025-06-05"), EndTime: "12:00"},
			{StartDate: date("2025-06-06"), StartTime: "10:00", EndDate: date("2025-06-06"), EndTime: "12:00"},
		},
	}

	intervals := BookingIntervals(booking)
	require.Len(t, intervals, 2)
	assert.True(t, intervals[0].End.Before(intervals[1].Start))
}
