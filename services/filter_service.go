package services

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"time"

	"parkeasy/constants"
	"parkeasy/dto"
	"parkeasy/models"
	"parkeasy/utils"
)

// ParseFilterRequest decodes the raw query string into the tagged filter
// request exactly once. Everything downstream works from the struct, never
// from the query dictionary.
func ParseFilterRequest(query url.Values) *dto.ListingFilterRequest {
	req := &dto.ListingFilterRequest{
		MaxPrice:           query.Get("max_price"),
		FilterType:         query.Get("filter_type"),
		StartDate:          query.Get("start_date"),
		EndDate:            query.Get("end_date"),
		StartTime:          query.Get("start_time"),
		EndTime:            query.Get("end_time"),
		RecurringStartDate: query.Get("recurring_start_date"),
		RecurringStartTime: query.Get("recurring_start_time"),
		RecurringEndTime:   query.Get("recurring_end_time"),
		RecurringPattern:   query.Get("recurring_pattern"),
		RecurringEndDate:   query.Get("recurring_end_date"),
		RecurringWeeks:     query.Get("recurring_weeks"),
		RecurringOvernight: query.Get("recurring_overnight") == "on",
		HasEVCharger:       query.Get("has_ev_charger") == "on",
		ChargerLevel:       query.Get("charger_level"),
		ConnectorType:      query.Get("connector_type"),
		ParkingSpotSize:    query.Get("parking_spot_size"),
		Location:           query.Get("location"),
		Lat:                query.Get("lat"),
		Lng:                query.Get("lng"),
		Radius:             query.Get("radius"),
	}
	if req.FilterType == "" {
		req.FilterType = dto.FilterTypeSingle
	}
	if req.RecurringPattern == "" {
		req.RecurringPattern = utils.PatternDaily
	}

	intervalCount, err := strconv.Atoi(query.Get("interval_count"))
	if err != nil {
		intervalCount = 0
	}
	for i := 1; i <= intervalCount; i++ {
		iv := dto.IntervalRequest{
			StartDate: query.Get(fmt.Sprintf("start_date_%d", i)),
			EndDate:   query.Get(fmt.Sprintf("end_date_%d", i)),
			StartTime: query.Get(fmt.Sprintf("start_time_%d", i)),
			EndTime:   query.Get(fmt.Sprintf("end_time_%d", i)),
		}
		if iv.StartDate != "" && iv.EndDate != "" && iv.StartTime != "" && iv.EndTime != "" {
			req.Intervals = append(req.Intervals, iv)
		}
	}
	return req
}

// FilterListings applies the search filters to the candidate set and returns
// the surviving listings plus user-facing error and warning messages. Any
// error forces an empty result set; warnings accompany normal results.
// Listings must arrive with their slots preloaded.
func FilterListings(listings []models.Listing, req *dto.ListingFilterRequest) ([]models.Listing, []string, []string) {
	var errorMessages, warningMessages []string

	listings = applyPriceFilter(listings, req, &errorMessages)

	switch req.FilterType {
	case dto.FilterTypeSingle:
		listings = applySingleFilter(listings, req, &errorMessages)
	case dto.FilterTypeMultiple:
		listings = applyMultipleFilter(listings, req)
	case dto.FilterTypeRecurring:
		listings = applyRecurringFilter(listings, req, &errorMessages, &warningMessages)
	}

	listings = applyAttributeFilters(listings, req)
	listings = applyLocationFilter(listings, req, &errorMessages)

	if len(errorMessages) > 0 {
		return nil, errorMessages, warningMessages
	}
	return listings, nil, warningMessages
}

func applyPriceFilter(listings []models.Listing, req *dto.ListingFilterRequest, errorMessages *[]string) []models.Listing {
	if req.MaxPrice == "" {
		return listings
	}
	maxPrice, err := strconv.ParseFloat(req.MaxPrice, 64)
	if err != nil {
		// Unparseable optional field: skip the filter silently.
		return listings
	}
	if maxPrice <= 0 {
		*errorMessages = append(*errorMessages, "Maximum price must be positive.")
		return listings
	}

	var filtered []models.Listing
	for _, listing := range listings {
		if listing.RentPerHour <= maxPrice {
			filtered = append(filtered, listing)
		}
	}
	return filtered
}

// applySingleFilter handles every partial combination of the four single
// range fields: lone fields use the date/time predicates, full sets use a
// covering range check, and mixed sets fall back to day boundaries for the
// missing times.
func applySingleFilter(listings []models.Listing, req *dto.ListingFilterRequest, errorMessages *[]string) []models.Listing {
	if req.StartDate == "" && req.EndDate == "" && req.StartTime == "" && req.EndTime == "" {
		return listings
	}

	if req.StartDate != "" && req.EndDate != "" {
		startDate, errStart := utils.ParseDate(req.StartDate)
		endDate, errEnd := utils.ParseDate(req.EndDate)
		switch {
		case errStart != nil || errEnd != nil:
			*errorMessages = append(*errorMessages, "Invalid date format.")
		case startDate.After(endDate):
			*errorMessages = append(*errorMessages, "Start date cannot be after end date.")
		}
	}

	var filtered []models.Listing
	for i := range listings {
		if singleFilterMatches(&listings[i], req) {
			filtered = append(filtered, listings[i])
		}
	}
	return filtered
}

func singleFilterMatches(listing *models.Listing, req *dto.ListingFilterRequest) bool {
	sDate, sDateErr := parseOptionalDate(req.StartDate)
	eDate, eDateErr := parseOptionalDate(req.EndDate)
	sTime, sTimeErr := parseOptionalTime(req.StartTime)
	eTime, eTimeErr := parseOptionalTime(req.EndTime)
	if sDateErr || eDateErr || sTimeErr || eTimeErr {
		// A field that fails to parse drops the whole availability check,
		// matching the lenient handling of individual form fields.
		return true
	}

	switch {
	case sDate != nil && eDate == nil && sTime == nil && eTime == nil:
		return listing.HasAvailabilityAfterDate(*sDate)
	case eDate != nil && sDate == nil && sTime == nil && eTime == nil:
		return listing.HasAvailabilityBeforeDate(*eDate)
	case sTime != nil && sDate == nil && eDate == nil && eTime == nil:
		return listing.HasAvailabilityAfterTime(*sTime)
	case eTime != nil && sDate == nil && eDate == nil && sTime == nil:
		return listing.HasAvailabilityBeforeTime(*eTime)

	case sDate != nil && eDate != nil && sTime != nil && eTime != nil:
		return listing.IsAvailableForRange(
			utils.CombineDateTime(*sDate, *sTime),
			utils.CombineDateTime(*eDate, *eTime))

	case sDate != nil && sTime != nil && eDate != nil:
		return listing.IsAvailableForRange(
			utils.CombineDateTime(*sDate, *sTime), utils.EndOfDay(*eDate))
	case sDate != nil && eDate != nil && eTime != nil:
		return listing.IsAvailableForRange(
			utils.StartOfDay(*sDate), utils.CombineDateTime(*eDate, *eTime))
	case sDate != nil && sTime != nil && eTime != nil:
		return listing.IsAvailableForRange(
			utils.CombineDateTime(*sDate, *sTime), utils.CombineDateTime(*sDate, *eTime))
	case eDate != nil && sTime != nil && eTime != nil:
		return listing.IsAvailableForRange(
			utils.CombineDateTime(*eDate, *sTime), utils.CombineDateTime(*eDate, *eTime))
	case sDate != nil && eTime != nil:
		return listing.IsAvailableForRange(
			utils.StartOfDay(*sDate), utils.CombineDateTime(*sDate, *eTime))
	case eDate != nil && sTime != nil:
		return listing.IsAvailableForRange(
			utils.CombineDateTime(*eDate, *sTime), utils.EndOfDay(*eDate))
	case sDate != nil && eDate != nil:
		return listing.IsAvailableForRange(
			utils.StartOfDay(*sDate), utils.EndOfDay(*eDate))
	}
	// start date + start time alone does not bound a range
	return true
}

func applyMultipleFilter(listings []models.Listing, req *dto.ListingFilterRequest) []models.Listing {
	var intervals []utils.Interval
	for _, raw := range req.Intervals {
		sDate, err1 := utils.ParseDate(raw.StartDate)
		eDate, err2 := utils.ParseDate(raw.EndDate)
		sTime, err3 := utils.ParseTime(raw.StartTime)
		eTime, err4 := utils.ParseTime(raw.EndTime)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}
		intervals = append(intervals, utils.Interval{
			Start: utils.CombineDateTime(sDate, sTime),
			End:   utils.CombineDateTime(eDate, eTime),
		})
	}
	if len(intervals) == 0 {
		return listings
	}

	var filtered []models.Listing
	for i := range listings {
		availableForAll := true
		for _, iv := range intervals {
			if !listings[i].IsAvailableForRange(iv.Start, iv.End) {
				availableForAll = false
				break
			}
		}
		if availableForAll {
			filtered = append(filtered, listings[i])
		}
	}
	return filtered
}

func applyRecurringFilter(listings []models.Listing, req *dto.ListingFilterRequest, errorMessages, warningMessages *[]string) []models.Listing {
	if req.RecurringStartDate == "" || req.RecurringStartTime == "" || req.RecurringEndTime == "" {
		*errorMessages = append(*errorMessages,
			"Start date, start time and end time are required for recurring search")
		return listings
	}

	startDate, err := utils.ParseDate(req.RecurringStartDate)
	if err != nil {
		*errorMessages = append(*errorMessages, "Invalid date or time format")
		return listings
	}
	startTime, err := utils.ParseTime(req.RecurringStartTime)
	if err != nil {
		*errorMessages = append(*errorMessages, "Invalid date or time format")
		return listings
	}
	endTime, err := utils.ParseTime(req.RecurringEndTime)
	if err != nil {
		*errorMessages = append(*errorMessages, "Invalid date or time format")
		return listings
	}

	if !startTime.Before(endTime) && !req.RecurringOvernight {
		*errorMessages = append(*errorMessages,
			"Start time must be before end time unless overnight booking is selected")
		return listings
	}

	opts := utils.RecurrenceOptions{}
	switch req.RecurringPattern {
	case utils.PatternDaily:
		if req.RecurringEndDate == "" {
			*errorMessages = append(*errorMessages, "End date is required for daily recurring pattern")
			return listings
		}
		endDate, err := utils.ParseDate(req.RecurringEndDate)
		if err != nil {
			*errorMessages = append(*errorMessages, "Invalid date or time format")
			return listings
		}
		if endDate.Before(startDate) {
			*errorMessages = append(*errorMessages, "End date must be on or after start date")
			return listings
		}
		if int(endDate.Sub(startDate).Hours()/24)+1 > constants.MaxDailySpanDays {
			*warningMessages = append(*warningMessages,
				"Daily recurring pattern spans over 90 days, results may be limited")
		}
		opts.EndDate = &endDate
	case utils.PatternWeekly:
		if req.RecurringWeeks == "" {
			*errorMessages = append(*errorMessages, "Number of weeks is required for weekly recurring pattern")
			return listings
		}
		weeks, err := strconv.Atoi(req.RecurringWeeks)
		if err != nil {
			*errorMessages = append(*errorMessages, "Invalid number of weeks")
			return listings
		}
		if weeks <= 0 {
			*errorMessages = append(*errorMessages, "Number of weeks must be positive")
			return listings
		}
		if weeks > constants.MaxWeeklySpan {
			*warningMessages = append(*warningMessages,
				"Weekly recurring pattern spans over 52 weeks, results may be limited")
		}
		opts.Weeks = weeks
	default:
		*errorMessages = append(*errorMessages, "Unknown pattern: "+req.RecurringPattern)
		return listings
	}

	specs, err := utils.GenerateRecurringSlots(startDate, startTime, endTime,
		req.RecurringPattern, req.RecurringOvernight, opts)
	if err != nil || len(specs) == 0 {
		return listings
	}

	overnightSplit := req.RecurringOvernight && !startTime.Before(endTime)

	var filtered []models.Listing
	for i := range listings {
		if listingCoversOccurrences(&listings[i], specs, overnightSplit) {
			filtered = append(filtered, listings[i])
		}
	}
	return filtered
}

// listingCoversOccurrences requires every occurrence to be covered. Overnight
// occurrences whose end time wraps past midnight are checked as two pieces
// (evening through end of day, morning from start of day) since slots are
// stored per calendar day.
func listingCoversOccurrences(listing *models.Listing, specs []utils.SlotSpec, overnightSplit bool) bool {
	for _, spec := range specs {
		iv := utils.SlotSpecInterval(spec)
		if overnightSplit {
			evening := listing.IsAvailableForRange(iv.Start, utils.EndOfDay(iv.Start))
			morning := listing.IsAvailableForRange(utils.StartOfDay(iv.End), iv.End)
			if !evening || !morning {
				return false
			}
			continue
		}
		if !listing.IsAvailableForRange(iv.Start, iv.End) {
			return false
		}
	}
	return true
}

func applyAttributeFilters(listings []models.Listing, req *dto.ListingFilterRequest) []models.Listing {
	if req.HasEVCharger {
		listings = keepListings(listings, func(l *models.Listing) bool { return l.HasEVCharger })

		// Charger detail filters only apply when the EV filter itself is on.
		if req.ChargerLevel != "" {
			listings = keepListings(listings, func(l *models.Listing) bool {
				return l.ChargerLevel == req.ChargerLevel
			})
		}
		if req.ConnectorType != "" {
			listings = keepListings(listings, func(l *models.Listing) bool {
				return l.ConnectorType == req.ConnectorType
			})
		}
	}

	if req.ParkingSpotSize != "" {
		listings = keepListings(listings, func(l *models.Listing) bool {
			return l.ParkingSpotSize == req.ParkingSpotSize
		})
	}
	return listings
}

func keepListings(listings []models.Listing, keep func(*models.Listing) bool) []models.Listing {
	var filtered []models.Listing
	for i := range listings {
		if keep(&listings[i]) {
			filtered = append(filtered, listings[i])
		}
	}
	return filtered
}

func applyLocationFilter(listings []models.Listing, req *dto.ListingFilterRequest, errorMessages *[]string) []models.Listing {
	hasPoint := req.Lat != "" && req.Lng != ""

	if req.Location != "" && !hasPoint {
		*errorMessages = append(*errorMessages,
			"Location could not be found. Please select a valid location.")
	}
	radius := req.Radius
	if radius != "" && !hasPoint {
		*errorMessages = append(*errorMessages,
			"Distance filtering requires a location to be selected.")
		radius = ""
	}

	if !hasPoint {
		for i := range listings {
			listings[i].Distance = nil
		}
		return listings
	}

	lat, errLat := strconv.ParseFloat(req.Lat, 64)
	lng, errLng := strconv.ParseFloat(req.Lng, 64)
	if errLat != nil || errLng != nil {
		*errorMessages = append(*errorMessages, "Invalid coordinates provided")
		return listings
	}

	var radiusKm *float64
	if radius != "" {
		if parsed, err := strconv.ParseFloat(radius, 64); err == nil {
			radiusKm = &parsed
		}
	}

	var processed []models.Listing
	for i := range listings {
		listing := listings[i]
		if listing.Latitude == 0 && listing.Longitude == 0 {
			// No resolvable coordinates: keep the listing but leave it
			// unranked so it sorts last.
			listing.Distance = nil
			processed = append(processed, listing)
			continue
		}
		distance := utils.CalculateDistance(lat, lng, listing.Latitude, listing.Longitude)
		listing.Distance = &distance
		if radiusKm != nil && distance > *radiusKm {
			continue
		}
		processed = append(processed, listing)
	}

	sort.SliceStable(processed, func(i, j int) bool {
		di, dj := processed[i].Distance, processed[j].Distance
		if di == nil {
			return false
		}
		if dj == nil {
			return true
		}
		return *di < *dj
	})
	return processed
}

func parseOptionalDate(value string) (*time.Time, bool) {
	if value == "" {
		return nil, false
	}
	parsed, err := utils.ParseDate(value)
	if err != nil {
		return nil, true
	}
	return &parsed, false
}

func parseOptionalTime(value string) (*time.Time, bool) {
	if value == "" {
		return nil, false
	}
	parsed, err := utils.ParseTime(value)
	if err != nil {
		return nil, true
	}
	return &parsed, false
}
