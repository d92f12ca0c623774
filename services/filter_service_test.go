package services

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkeasy/dto"
	"parkeasy/models"
	"parkeasy/utils"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := utils.ParseDate(value)
	require.NoError(t, err)
	return d
}

func slotOn(t *testing.T, date, startTime, endTime string) models.ListingSlot {
	t.Helper()
	return models.ListingSlot{
		StartDate: mustDate(t, date),
		StartTime: startTime,
		EndDate:   mustDate(t, date),
		EndTime:   endTime,
	}
}

func overnightSlot(t *testing.T, startDate, startTime, endDate, endTime string) models.ListingSlot {
	t.Helper()
	return models.ListingSlot{
		StartDate: mustDate(t, startDate),
		StartTime: startTime,
		EndDate:   mustDate(t, endDate),
		EndTime:   endTime,
	}
}

func testListing(id uint, price float64, slots ...models.ListingSlot) models.Listing {
	return models.Listing{
		ID:              id,
		Title:           "Spot",
		RentPerHour:     price,
		ParkingSpotSize: "STANDARD",
		Slots:           slots,
	}
}

func TestParseFilterRequest(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		req := ParseFilterRequest(url.Values{})
		assert.Equal(t, dto.FilterTypeSingle, req.FilterType)
		assert.Equal(t, utils.PatternDaily, req.RecurringPattern)
		assert.False(t, req.HasEVCharger)
	})

	t.Run("checkboxes use the on convention", func(t *testing.T) {
		query := url.Values{}
		query.Set("has_ev_charger", "on")
		query.Set("recurring_overnight", "on")
		req := ParseFilterRequest(query)
		assert.True(t, req.HasEVCharger)
		assert.True(t, req.RecurringOvernight)

		query.Set("has_ev_charger", "true")
		assert.False(t, ParseFilterRequest(query).HasEVCharger)
	})

	t.Run("numbered intervals require all four fields", func(t *testing.T) {
		query := url.Values{}
		query.Set("filter_type", "multiple")
		query.Set("interval_count", "2")
		query.Set("start_date_1", "2025-06-01")
		query.Set("end_date_1", "2025-06-01")
		query.Set("start_time_1", "09:00")
		query.Set("end_time_1", "11:00")
		query.Set("start_date_2", "2025-06-02")

		req := ParseFilterRequest(query)
		require.Len(t, req.Intervals, 1)
		assert.Equal(t, "2025-06-01", req.Intervals[0].StartDate)
	})
}

func TestFilterListingsPrice(t *testing.T) {
	listings := []models.Listing{
		testListing(1, 5.0, slotOn(t, "2025-06-01", "09:00", "17:00")),
		testListing(2, 12.0, slotOn(t, "2025-06-01", "09:00", "17:00")),
	}

	t.Run("filters above max", func(t *testing.T) {
		got, errs, _ := FilterListings(listings, &dto.ListingFilterRequest{
			MaxPrice: "10", FilterType: dto.FilterTypeSingle,
		})
		require.Empty(t, errs)
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("non-positive max is an error that empties results", func(t *testing.T) {
		got, errs, _ := FilterListings(listings, &dto.ListingFilterRequest{
			MaxPrice: "-3", FilterType: dto.FilterTypeSingle,
		})
		assert.Nil(t, got)
		assert.Contains(t, errs, "Maximum price must be positive.")
	})

	t.Run("unparseable max is skipped silently", func(t *testing.T) {
		got, errs, _ := FilterListings(listings, &dto.ListingFilterRequest{
			MaxPrice: "cheap", FilterType: dto.FilterTypeSingle,
		})
		assert.Empty(t, errs)
		assert.Len(t, got, 2)
	})
}

func TestFilterListingsSingle(t *testing.T) {
	listings := []models.Listing{
		testListing(1, 5.0, slotOn(t, "2025-06-01", "09:00", "17:00")),
		testListing(2, 5.0, slotOn(t, "2025-06-10", "09:00", "17:00")),
	}

	t.Run("full range requires one covering slot", func(t *testing.T) {
		got, errs, _ := FilterListings(listings, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			StartDate:  "2025-06-01", EndDate: "2025-06-01",
			StartTime: "10:00", EndTime: "12:00",
		})
		require.Empty(t, errs)
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("start date alone keeps listings ending on that date", func(t *testing.T) {
		got, _, _ := FilterListings(listings, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			StartDate:  "2025-06-01",
		})
		assert.Len(t, got, 2)

		got, _, _ = FilterListings(listings, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			StartDate:  "2025-06-02",
		})
		require.Len(t, got, 1)
		assert.Equal(t, uint(2), got[0].ID)
	})

	t.Run("inverted dates produce an error", func(t *testing.T) {
		got, errs, _ := FilterListings(listings, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			StartDate:  "2025-06-10", EndDate: "2025-06-01",
		})
		assert.Nil(t, got)
		assert.Contains(t, errs, "Start date cannot be after end date.")
	})

	t.Run("unparseable time field drops the availability check", func(t *testing.T) {
		got, errs, _ := FilterListings(listings, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			StartTime:  "morning",
		})
		assert.Empty(t, errs)
		assert.Len(t, got, 2)
	})
}

func TestFilterListingsMultiple(t *testing.T) {
	bothDays := testListing(1, 5.0,
		slotOn(t, "2025-06-01", "09:00", "17:00"),
		slotOn(t, "2025-06-02", "09:00", "17:00"))
	oneDay := testListing(2, 5.0, slotOn(t, "2025-06-01", "09:00", "17:00"))

	req := &dto.ListingFilterRequest{
		FilterType: dto.FilterTypeMultiple,
		Intervals: []dto.IntervalRequest{
			{StartDate: "2025-06-01", EndDate: "2025-06-01", StartTime: "10:00", EndTime: "12:00"},
			{StartDate: "2025-06-02", EndDate: "2025-06-02", StartTime: "10:00", EndTime: "12:00"},
		},
	}

	got, errs, _ := FilterListings([]models.Listing{bothDays, oneDay}, req)
	require.Empty(t, errs)
	require.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}

func TestFilterListingsRecurring(t *testing.T) {
	daily := testListing(1, 5.0,
		slotOn(t, "2025-06-01", "08:00", "18:00"),
		slotOn(t, "2025-06-02", "08:00", "18:00"),
		slotOn(t, "2025-06-03", "08:00", "18:00"))
	gappy := testListing(2, 5.0,
		slotOn(t, "2025-06-01", "08:00", "18:00"),
		slotOn(t, "2025-06-03", "08:00", "18:00"))

	t.Run("daily requires coverage of every occurrence", func(t *testing.T) {
		got, errs, warnings := FilterListings([]models.Listing{daily, gappy}, &dto.ListingFilterRequest{
			FilterType:         dto.FilterTypeRecurring,
			RecurringPattern:   utils.PatternDaily,
			RecurringStartDate: "2025-06-01",
			RecurringEndDate:   "2025-06-03",
			RecurringStartTime: "09:00",
			RecurringEndTime:   "17:00",
		})
		require.Empty(t, errs)
		assert.Empty(t, warnings)
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("daily without end date errors", func(t *testing.T) {
		got, errs, _ := FilterListings([]models.Listing{daily}, &dto.ListingFilterRequest{
			FilterType:         dto.FilterTypeRecurring,
			RecurringPattern:   utils.PatternDaily,
			RecurringStartDate: "2025-06-01",
			RecurringStartTime: "09:00",
			RecurringEndTime:   "17:00",
		})
		assert.Nil(t, got)
		assert.Contains(t, errs, "End date is required for daily recurring pattern")
	})

	t.Run("weekly without weeks errors", func(t *testing.T) {
		_, errs, _ := FilterListings([]models.Listing{daily}, &dto.ListingFilterRequest{
			FilterType:         dto.FilterTypeRecurring,
			RecurringPattern:   utils.PatternWeekly,
			RecurringStartDate: "2025-06-01",
			RecurringStartTime: "09:00",
			RecurringEndTime:   "17:00",
		})
		assert.Contains(t, errs, "Number of weeks is required for weekly recurring pattern")
	})

	t.Run("weekly with junk weeks errors", func(t *testing.T) {
		_, errs, _ := FilterListings([]models.Listing{daily}, &dto.ListingFilterRequest{
			FilterType:         dto.FilterTypeRecurring,
			RecurringPattern:   utils.PatternWeekly,
			RecurringStartDate: "2025-06-01",
			RecurringStartTime: "09:00",
			RecurringEndTime:   "17:00",
			RecurringWeeks:     "two",
		})
		assert.Contains(t, errs, "Invalid number of weeks")
	})

	t.Run("non-overnight inverted times error", func(t *testing.T) {
		_, errs, _ := FilterListings([]models.Listing{daily}, &dto.ListingFilterRequest{
			FilterType:         dto.FilterTypeRecurring,
			RecurringPattern:   utils.PatternDaily,
			RecurringStartDate: "2025-06-01",
			RecurringEndDate:   "2025-06-02",
			RecurringStartTime: "17:00",
			RecurringEndTime:   "09:00",
		})
		assert.Contains(t, errs, "Start time must be before end time unless overnight booking is selected")
	})

	t.Run("long spans warn but still run", func(t *testing.T) {
		got, errs, warnings := FilterListings([]models.Listing{daily}, &dto.ListingFilterRequest{
			FilterType:         dto.FilterTypeRecurring,
			RecurringPattern:   utils.PatternWeekly,
			RecurringStartDate: "2025-06-01",
			RecurringStartTime: "09:00",
			RecurringEndTime:   "17:00",
			RecurringWeeks:     "60",
		})
		assert.Empty(t, errs)
		assert.Contains(t, warnings, "Weekly recurring pattern spans over 52 weeks, results may be limited")
		assert.Empty(t, got)
	})

	t.Run("overnight splits into evening and morning checks", func(t *testing.T) {
		night := testListing(3, 5.0,
			overnightSlot(t, "2025-06-01", "20:00", "2025-06-02", "23:59"),
			slotOn(t, "2025-06-02", "00:00", "08:00"),
			overnightSlot(t, "2025-06-02", "20:00", "2025-06-03", "23:59"),
			slotOn(t, "2025-06-03", "00:00", "08:00"))

		got, errs, _ := FilterListings([]models.Listing{night, daily}, &dto.ListingFilterRequest{
			FilterType:         dto.FilterTypeRecurring,
			RecurringPattern:   utils.PatternDaily,
			RecurringStartDate: "2025-06-01",
			RecurringEndDate:   "2025-06-02",
			RecurringStartTime: "22:00",
			RecurringEndTime:   "06:00",
			RecurringOvernight: true,
		})
		require.Empty(t, errs)
		require.Len(t, got, 1)
		assert.Equal(t, uint(3), got[0].ID)
	})
}

func TestFilterListingsAttributes(t *testing.T) {
	ev := testListing(1, 5.0, slotOn(t, "2025-06-01", "09:00", "17:00"))
	ev.HasEVCharger = true
	ev.ChargerLevel = "L2"
	ev.ConnectorType = "J1772"
	plain := testListing(2, 5.0, slotOn(t, "2025-06-01", "09:00", "17:00"))
	plain.ParkingSpotSize = "COMPACT"

	t.Run("ev filter", func(t *testing.T) {
		got, _, _ := FilterListings([]models.Listing{ev, plain}, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle, HasEVCharger: true, ChargerLevel: "L2",
		})
		require.Len(t, got, 1)
		assert.Equal(t, uint(1), got[0].ID)
	})

	t.Run("charger level ignored without ev filter", func(t *testing.T) {
		got, _, _ := FilterListings([]models.Listing{ev, plain}, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle, ChargerLevel: "L3",
		})
		assert.Len(t, got, 2)
	})

	t.Run("size filter", func(t *testing.T) {
		got, _, _ := FilterListings([]models.Listing{ev, plain}, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle, ParkingSpotSize: "COMPACT",
		})
		require.Len(t, got, 1)
		assert.Equal(t, uint(2), got[0].ID)
	})
}

func TestFilterListingsLocation(t *testing.T) {
	near := testListing(1, 5.0, slotOn(t, "2025-06-01", "09:00", "17:00"))
	near.Latitude, near.Longitude = 40.7580, -73.9855
	far := testListing(2, 5.0, slotOn(t, "2025-06-01", "09:00", "17:00"))
	far.Latitude, far.Longitude = 40.6892, -74.0445
	unknown := testListing(3, 5.0, slotOn(t, "2025-06-01", "09:00", "17:00"))

	t.Run("sorted by distance with unranked last", func(t *testing.T) {
		got, errs, _ := FilterListings([]models.Listing{unknown, far, near}, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			Lat:        "40.7589", Lng: "-73.9851",
		})
		require.Empty(t, errs)
		require.Len(t, got, 3)
		assert.Equal(t, uint(1), got[0].ID)
		assert.Equal(t, uint(2), got[1].ID)
		assert.Equal(t, uint(3), got[2].ID)
		assert.Nil(t, got[2].Distance)
		require.NotNil(t, got[0].Distance)
		assert.LessOrEqual(t, *got[0].Distance, *got[1].Distance)
	})

	t.Run("radius drops distant listings but keeps unranked", func(t *testing.T) {
		got, _, _ := FilterListings([]models.Listing{unknown, far, near}, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			Lat:        "40.7589", Lng: "-73.9851", Radius: "2",
		})
		require.Len(t, got, 2)
		assert.Equal(t, uint(1), got[0].ID)
		assert.Equal(t, uint(3), got[1].ID)
	})

	t.Run("location without coordinates errors", func(t *testing.T) {
		got, errs, _ := FilterListings([]models.Listing{near}, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			Location:   "Nowhere Special",
		})
		assert.Nil(t, got)
		assert.Contains(t, errs, "Location could not be found. Please select a valid location.")
	})

	t.Run("radius without location errors", func(t *testing.T) {
		got, errs, _ := FilterListings([]models.Listing{near}, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			Radius:     "5",
		})
		assert.Nil(t, got)
		assert.Contains(t, errs, "Distance filtering requires a location to be selected.")
	})

	t.Run("junk coordinates error", func(t *testing.T) {
		got, errs, _ := FilterListings([]models.Listing{near}, &dto.ListingFilterRequest{
			FilterType: dto.FilterTypeSingle,
			Lat:        "here", Lng: "there",
		})
		assert.Nil(t, got)
		assert.Contains(t, errs, "Invalid coordinates provided")
	})
}
