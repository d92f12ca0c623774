package models

import (
	"time"

	"parkeasy/utils"
)

type Listing struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	UserID          uint          `json:"userId"`
	User            User          `gorm:"foreignKey:UserID" json:"user"`
	Title           string        `gorm:"not null" json:"title"`
	Location        string        `json:"location"` // "name [lat,lng]" as produced by the map picker
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
	RentPerHour     float64       `json:"rentPerHour"`
	Description     string        `json:"description"`
	HasEVCharger    bool          `gorm:"default:false" json:"hasEvCharger"`
	ChargerLevel    string        `json:"chargerLevel"`
	ConnectorType   string        `json:"connectorType"`
	ParkingSpotSize string        `gorm:"default:STANDARD" json:"parkingSpotSize"`
	Slots           []ListingSlot `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"slots"`

	// Distance from the search point in km, populated only by location
	// searches and never stored.
	Distance *float64 `gorm:"-" json:"distance,omitempty"`
}

// AvailabilityIntervals converts the listing's slots to instant spans. Slots
// with unparseable times are skipped; the validator rejects them on write.
func (l *Listing) AvailabilityIntervals() []utils.Interval {
	intervals := make([]utils.Interval, 0, len(l.Slots))
	for _, slot := range l.Slots {
		iv, err := slot.Interval()
		if err != nil {
			continue
		}
		intervals = append(intervals, iv)
	}
	return intervals
}

// Date-bound predicates treat slot dates inclusively: a slot ending on d
// still counts as availability "after" d. The interval algebra itself stays
// half-open; only these whole-day queries widen the boundary.

// HasAvailabilityAfterDate reports whether any slot ends on or after d.
func (l *Listing) HasAvailabilityAfterDate(d time.Time) bool {
	day := utils.StartOfDay(d)
	for _, slot := range l.Slots {
		if !utils.StartOfDay(slot.EndDate).Before(day) {
			return true
		}
	}
	return false
}

// HasAvailabilityBeforeDate reports whether any slot starts on or before d.
func (l *Listing) HasAvailabilityBeforeDate(d time.Time) bool {
	day := utils.StartOfDay(d)
	for _, slot := range l.Slots {
		if !utils.StartOfDay(slot.StartDate).After(day) {
			return true
		}
	}
	return false
}

// HasAvailabilityAfterTime reports whether any slot's end time of day is at
// or past t, regardless of date.
func (l *Listing) HasAvailabilityAfterTime(t time.Time) bool {
	for _, slot := range l.Slots {
		end, err := utils.ParseTime(slot.EndTime)
		if err != nil {
			continue
		}
		if !end.Before(t) {
			return true
		}
	}
	return false
}

// HasAvailabilityBeforeTime reports whether any slot's start time of day is
// at or before t, regardless of date.
func (l *Listing) HasAvailabilityBeforeTime(t time.Time) bool {
	for _, slot := range l.Slots {
		start, err := utils.ParseTime(slot.StartTime)
		if err != nil {
			continue
		}
		if !start.After(t) {
			return true
		}
	}
	return false
}

// IsAvailableForRange reports whether one contiguous slot covers the whole
// [start, end) range. The slot set is merged first so availability split
// across touching slots still counts.
func (l *Listing) IsAvailableForRange(start, end time.Time) bool {
	merged := utils.MergeIntervals(l.AvailabilityIntervals())
	return utils.IsIntervalCovered(utils.Interval{Start: start, End: end}, merged)
}

// IsActive reports whether the listing still has availability ending in the
// future.
func (l *Listing) IsActive(now time.Time) bool {
	for _, slot := range l.Slots {
		iv, err := slot.Interval()
		if err != nil {
			continue
		}
		if iv.End.After(now) {
			return true
		}
	}
	return false
}
