package models

import (
	"time"

	"parkeasy/utils"
)

// ListingSlot is one free-time interval owned by a listing. The set of slots
// for a listing is kept pairwise disjoint and non-adjacent: blocking and
// restoring bookings always rewrites the set in merged form.
type ListingSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ListingID uint      `gorm:"index;not null" json:"listingId"`
	StartDate time.Time `gorm:"type:date;not null" json:"startDate"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"startTime"`
	EndDate   time.Time `gorm:"type:date;not null" json:"endDate"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"endTime"`
}

// Interval returns the half-open instant span this slot occupies.
func (s *ListingSlot) Interval() (utils.Interval, error) {
	start, err := utils.ParseTime(s.StartTime)
	if err != nil {
		return utils.Interval{}, err
	}
	end, err := utils.ParseTime(s.EndTime)
	if err != nil {
		return utils.Interval{}, err
	}
	return utils.Interval{
		Start: utils.CombineDateTime(s.StartDate, start),
		End:   utils.CombineDateTime(s.EndDate, end),
	}, nil
}

// SlotFromInterval builds a ListingSlot row back from an instant span.
func SlotFromInterval(listingID uint, iv utils.Interval) ListingSlot {
	return ListingSlot{
		ListingID: listingID,
		StartDate: utils.StartOfDay(iv.Start),
		StartTime: iv.Start.Format(utils.TimeLayout),
		EndDate:   utils.StartOfDay(iv.End),
		EndTime:   iv.End.Format(utils.TimeLayout),
	}
}
