package models

import (
	"time"
)

// Booking status constants
const (
	BookingStatusPending   = 0
	BookingStatusApproved  = 1
	BookingStatusDenied    = 2
	BookingStatusCancelled = 3
)

type Booking struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt  time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	UserID     uint          `json:"userId"`
	User       User          `gorm:"foreignKey:UserID" json:"user"`
	ListingID  uint          `gorm:"index;not null" json:"listingId"`
	Listing    Listing       `gorm:"foreignKey:ListingID" json:"listing"`
	Status     int           `gorm:"default:0" json:"status"`
	TotalPrice float64       `json:"totalPrice"`
	Slots      []BookingSlot `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"slots"`
}

// StatusLabel returns the display name for the booking status.
func (b *Booking) StatusLabel() string {
	switch b.Status {
	case BookingStatusPending:
		return "PENDING"
	case BookingStatusApproved:
		return "APPROVED"
	case BookingStatusDenied:
		return "DENIED"
	case BookingStatusCancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}
