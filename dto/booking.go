package dto

// CreateBookingRequest books a listing for one interval or a recurring
// pattern expanded server-side into booking slots.
type CreateBookingRequest struct {
	ListingID uint                  `json:"listingId" binding:"required"`
	Slot      *SlotPayload          `json:"slot"`
	Recurring *RecurringSlotPayload `json:"recurring"`
}

// BookingStatusRequest moves a booking through its lifecycle. Action is one
// of "approve", "deny" or "cancel".
type BookingStatusRequest struct {
	BookingID uint   `json:"bookingId" binding:"required"`
	Action    string `json:"action" binding:"required"`
}

// BookingResponse is the booking shape returned to both parties.
type BookingResponse struct {
	ID           uint          `json:"id"`
	ListingID    uint          `json:"listingId"`
	ListingTitle string        `json:"listingTitle"`
	UserID       uint          `json:"userId"`
	BookerName   string        `json:"bookerName"`
	Status       string        `json:"status"`
	TotalPrice   float64       `json:"totalPrice"`
	Slots        []SlotPayload `json:"slots"`
}
