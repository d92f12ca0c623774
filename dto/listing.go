package dto

// SlotPayload is one availability interval as submitted or returned by the
// API. Dates use YYYY-MM-DD, times 24-hour HH:MM.
type SlotPayload struct {
	StartDate string `json:"startDate" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndDate   string `json:"endDate" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// RecurringSlotPayload describes a recurring availability pattern used in
// place of an explicit slot list when creating or editing a listing.
type RecurringSlotPayload struct {
	StartDate string `json:"startDate" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Pattern   string `json:"pattern" binding:"required"`
	Overnight bool   `json:"overnight"`
	EndDate   string `json:"endDate"`
	Weeks     int    `json:"weeks"`
}

// CreateListingRequest creates a listing with either an explicit slot list
// or a recurring pattern expanded server-side.
type CreateListingRequest struct {
	Title           string                `json:"title" binding:"required"`
	Location        string                `json:"location" binding:"required"`
	RentPerHour     float64               `json:"rentPerHour" binding:"required"`
	Description     string                `json:"description"`
	HasEVCharger    bool                  `json:"hasEvCharger"`
	ChargerLevel    string                `json:"chargerLevel"`
	ConnectorType   string                `json:"connectorType"`
	ParkingSpotSize string                `json:"parkingSpotSize"`
	Slots           []SlotPayload         `json:"slots"`
	Recurring       *RecurringSlotPayload `json:"recurring"`
}

// UpdateListingRequest edits listing details and replaces the availability
// slot set.
type UpdateListingRequest struct {
	ID              uint          `json:"id" binding:"required"`
	Title           string        `json:"title"`
	Location        string        `json:"location"`
	RentPerHour     float64       `json:"rentPerHour"`
	Description     string        `json:"description"`
	HasEVCharger    bool          `json:"hasEvCharger"`
	ChargerLevel    string        `json:"chargerLevel"`
	ConnectorType   string        `json:"connectorType"`
	ParkingSpotSize string        `json:"parkingSpotSize"`
	Slots           []SlotPayload `json:"slots"`
}

// ListingResponse is the public listing shape returned by search and detail
// endpoints.
type ListingResponse struct {
	ID              uint          `json:"id"`
	UserID          uint          `json:"userId"`
	OwnerName       string        `json:"ownerName"`
	Title           string        `json:"title"`
	Location        string        `json:"location"`
	LocationName    string        `json:"locationName"`
	Latitude        float64       `json:"latitude"`
	Longitude       float64       `json:"longitude"`
	RentPerHour     float64       `json:"rentPerHour"`
	Description     string        `json:"description"`
	HasEVCharger    bool          `json:"hasEvCharger"`
	ChargerLevel    string        `json:"chargerLevel,omitempty"`
	ConnectorType   string        `json:"connectorType,omitempty"`
	ParkingSpotSize string        `json:"parkingSpotSize"`
	Slots           []SlotPayload `json:"slots"`
	Distance        *float64      `json:"distance,omitempty"`
}
