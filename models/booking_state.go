package models

import "errors"

// BookingState defines the transitions allowed from each booking status.
// Approve carves the booked intervals out of the listing's availability;
// leaving APPROVED (deny or cancel after approval) restores them. That side
// effect lives in the availability service, not here.
type BookingState interface {
	Approve(booking *Booking) error
	Deny(booking *Booking) error
	Cancel(booking *Booking) error
}

// PendingState is the initial state awaiting owner review
type PendingState struct{}

func (s *PendingState) Approve(booking *Booking) error {
	booking.Status = BookingStatusApproved
	return nil
}

func (s *PendingState) Deny(booking *Booking) error {
	booking.Status = BookingStatusDenied
	return nil
}

func (s *PendingState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

// ApprovedState is an accepted booking holding reserved intervals
type ApprovedState struct{}

func (s *ApprovedState) Approve(booking *Booking) error {
	return errors.New("booking already approved")
}

func (s *ApprovedState) Deny(booking *Booking) error {
	booking.Status = BookingStatusDenied
	return nil
}

func (s *ApprovedState) Cancel(booking *Booking) error {
	booking.Status = BookingStatusCancelled
	return nil
}

// DeniedState is a rejected booking
type DeniedState struct{}

func (s *DeniedState) Approve(booking *Booking) error {
	return errors.New("cannot approve denied booking")
}

func (s *DeniedState) Deny(booking *Booking) error {
	return errors.New("booking already denied")
}

func (s *DeniedState) Cancel(booking *Booking) error {
	return errors.New("cannot cancel denied booking")
}

// CancelledState is a booking withdrawn by the booker
type CancelledState struct{}

func (s *CancelledState) Approve(booking *Booking) error {
	return errors.New("cannot approve cancelled booking")
}

func (s *CancelledState) Deny(booking *Booking) error {
	return errors.New("cannot deny cancelled booking")
}

func (s *CancelledState) Cancel(booking *Booking) error {
	return errors.New("booking already cancelled")
}

// GetBookingState returns the state implementation for a status value
func GetBookingState(status int) BookingState {
	switch status {
	case BookingStatusPending:
		return &PendingState{}
	case BookingStatusApproved:
		return &ApprovedState{}
	case BookingStatusDenied:
		return &DeniedState{}
	case BookingStatusCancelled:
		return &CancelledState{}
	default:
		return &PendingState{}
	}
}
