package models

import (
	"time"

	"parkeasy/utils"
)

// BookingSlot is one reserved interval owned by a booking. Slots are
// immutable once created; changing a booking means cancelling and
// recreating it.
type BookingSlot struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BookingID uint      `gorm:"index;not null" json:"bookingId"`
	StartDate time.Time `gorm:"type:date;not null" json:"startDate"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"startTime"`
	EndDate   time.Time `gorm:"type:date;not null" json:"endDate"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"endTime"`
}

// Interval returns the half-open instant span this slot reserves.
func (s *BookingSlot) Interval() (utils.Interval, error) {
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

// BookingIntervals converts a booking's slots to instant spans, skipping any
// row with unparseable times.
func BookingIntervals(b *Booking) []utils.Interval {
	intervals := make([]utils.Interval, 0, len(b.Slots))
	for i := range b.Slots {
		iv, err := b.Slots[i].Interval()
		if err != nil {
			continue
		}
		intervals = append(intervals, iv)
	}
	return intervals
}
