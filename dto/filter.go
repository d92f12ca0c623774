package dto

import "time"

// Filter types accepted by the listing search endpoint.
const (
	FilterTypeSingle    = "single"
	FilterTypeMultiple  = "multiple"
	FilterTypeRecurring = "recurring"
)

// IntervalRequest is one requested date/time range inside a multiple-interval
// search. All four fields must be present for the interval to count.
type IntervalRequest struct {
	StartDate string `json:"startDate"`
	StartTime string `json:"startTime"`
	EndDate   string `json:"endDate"`
	EndTime   string `json:"endTime"`
}

// ListingFilterRequest is the search request decoded once from the query
// string. FilterType selects which of the availability sections applies;
// the price, EV, size and location filters always apply when set.
type ListingFilterRequest struct {
	MaxPrice   string `form:"max_price"`
	FilterType string `form:"filter_type"`

	// single
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	StartTime string `form:"start_time"`
	EndTime   string `form:"end_time"`

	// multiple: filled from start_date_1..N etc. by the query decoder
	Intervals []IntervalRequest `form:"-"`

	// recurring
	RecurringStartDate string `form:"recurring_start_date"`
	RecurringStartTime string `form:"recurring_start_time"`
	RecurringEndTime   string `form:"recurring_end_time"`
	RecurringPattern   string `form:"recurring_pattern"`
	RecurringEndDate   string `form:"recurring_end_date"`
	RecurringWeeks     string `form:"recurring_weeks"`
	RecurringOvernight bool   `form:"-"`

	// attributes
	HasEVCharger    bool   `form:"-"`
	ChargerLevel    string `form:"charger_level"`
	ConnectorType   string `form:"connector_type"`
	ParkingSpotSize string `form:"parking_spot_size"`

	// location
	Location string `form:"location"`
	Lat      string `form:"lat"`
	Lng      string `form:"lng"`
	Radius   string `form:"radius"`
}

// HasActiveFilters reports whether the request narrows the result set at
// all, mirroring the original search form behavior: single filters count as
// soon as one field is present, recurring only when the full field set is.
func (r *ListingFilterRequest) HasActiveFilters() bool {
	if r.MaxPrice != "" || r.HasEVCharger || r.ChargerLevel != "" ||
		r.ConnectorType != "" || r.ParkingSpotSize != "" {
		return true
	}
	if r.FilterType == FilterTypeSingle &&
		(r.StartDate != "" || r.EndDate != "" || r.StartTime != "" || r.EndTime != "") {
		return true
	}
	if r.FilterType == FilterTypeMultiple && len(r.Intervals) > 0 {
		return true
	}
	if r.FilterType == FilterTypeRecurring &&
		r.RecurringStartDate != "" && r.RecurringStartTime != "" &&
		r.RecurringEndTime != "" && r.RecurringPattern != "" {
		return true
	}
	return false
}

// SearchFilters is the cached form of a user's last search, merged into
// follow-up searches so refinements keep earlier constraints.
type SearchFilters struct {
	MaxPrice        *float64   `json:"maxPrice,omitempty"`
	HasEVCharger    bool       `json:"hasEvCharger,omitempty"`
	ChargerLevel    string     `json:"chargerLevel,omitempty"`
	ConnectorType   string     `json:"connectorType,omitempty"`
	ParkingSpotSize string     `json:"parkingSpotSize,omitempty"`
	Location        string     `json:"location,omitempty"`
	Lat             *float64   `json:"lat,omitempty"`
	Lng             *float64   `json:"lng,omitempty"`
	Radius          *float64   `json:"radius,omitempty"`
	FromDate        *time.Time `json:"fromDate,omitempty"`
	ToDate          *time.Time `json:"toDate,omitempty"`
}

// FilterResult is the search response payload: the surviving listings plus
// the error and warning message lists.
type FilterResult struct {
	Listings []ListingResponse `json:"listings"`
	Errors   []string          `json:"errors"`
	Warnings []string          `json:"warnings"`
}
