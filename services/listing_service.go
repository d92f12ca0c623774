package services

import (
	stderrors "errors"
	"time"

	"gorm.io/gorm"

	"parkeasy/constants"
	"parkeasy/dto"
	"parkeasy/errors"
	"parkeasy/models"
	"parkeasy/services/logger"
	"parkeasy/utils"
	"parkeasy/validator"
)

// ListingService manages parking spot listings and their availability slot
// sets. Slot writes go through the availability service so they respect the
// same per-listing locking as booking approvals.
type ListingService struct {
	db           *gorm.DB
	logger       logger.Logger
	availability *AvailabilityService
}

type ListingServiceOptions struct {
	DB           *gorm.DB
	Logger       logger.Logger
	Availability *AvailabilityService
}

func NewListingService(opts ListingServiceOptions) *ListingService {
	return &ListingService{
		db:           opts.DB,
		logger:       opts.Logger,
		availability: opts.Availability,
	}
}

// CreateListing creates a listing for a verified owner. Availability comes
// either as an explicit slot list or as a recurring pattern expanded into
// slots server side.
func (s *ListingService) CreateListing(userID uint, req *dto.CreateListingRequest) (*models.Listing, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeUserNotFound, "User not found", err)
	}
	if !user.CanCreateListings() {
		return nil, errors.NewAppError(errors.ErrCodeNotVerified,
			"You must be verified to create listings", nil)
	}

	if err := validator.ValidateListingRequest(req.Title, req.Location, req.RentPerHour); err != nil {
		return nil, err
	}

	intervals, err := s.resolveSlotIntervals(req.Slots, req.Recurring)
	if err != nil {
		return nil, err
	}
	if len(intervals) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField,
			"At least one availability slot is required", nil)
	}

	lat, lng, err := s.resolveCoordinates(req.Location)
	if err != nil {
		return nil, err
	}

	listing := models.Listing{
		UserID:          userID,
		Title:           req.Title,
		Location:        req.Location,
		Latitude:        lat,
		Longitude:       lng,
		RentPerHour:     req.RentPerHour,
		Description:     req.Description,
		HasEVCharger:    req.HasEVCharger,
		ChargerLevel:    req.ChargerLevel,
		ConnectorType:   req.ConnectorType,
		ParkingSpotSize: req.ParkingSpotSize,
	}
	if listing.ParkingSpotSize == "" {
		listing.ParkingSpotSize = constants.SizeStandard
	}
	if !listing.HasEVCharger {
		listing.ChargerLevel = ""
		listing.ConnectorType = ""
	}

	merged := utils.MergeIntervals(intervals)
	for _, iv := range merged {
		listing.Slots = append(listing.Slots, models.SlotFromInterval(0, iv))
	}

	if err := s.db.Create(&listing).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to create listing", err)
	}

	s.logger.Info("listing %d created by user %d with %d slots", listing.ID, userID, len(merged))
	return &listing, nil
}

// UpdateListing edits listing details and replaces the slot set. The new
// availability must still cover every approved booking on the listing;
// otherwise the edit is rejected so renters keep what they were promised.
func (s *ListingService) UpdateListing(userID uint, req *dto.UpdateListingRequest) (*models.Listing, error) {
	listing, err := s.GetListingByID(req.ID)
	if err != nil {
		return nil, err
	}
	if listing.UserID != userID {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized,
			"You can only edit your own listings", errors.ErrNotListingOwner)
	}

	if err := validator.ValidateListingRequest(req.Title, req.Location, req.RentPerHour); err != nil {
		return nil, err
	}

	intervals, err := s.resolveSlotIntervals(req.Slots, nil)
	if err != nil {
		return nil, err
	}
	merged := utils.MergeIntervals(intervals)

	var approved []models.Booking
	if err := s.db.Preload("Slots").
		Where("listing_id = ? AND status = ?", listing.ID, models.BookingStatusApproved).
		Find(&approved).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load bookings", err)
	}

	// The submitted slots must still contain every approved booking. The
	// booked spans are then carved back out before storing, since approved
	// bookings already consumed their intervals.
	var booked []utils.Interval
	for i := range approved {
		if !IsBookingCoveredByIntervals(&approved[i], merged) {
			return nil, errors.NewAppError(errors.ErrCodeBookingConflict,
				"New availability does not cover an approved booking", nil)
		}
		booked = append(booked, models.BookingIntervals(&approved[i])...)
	}
	merged = BlockOutIntervals(merged, booked)

	lat, lng, err := s.resolveCoordinates(req.Location)
	if err != nil {
		return nil, err
	}

	listing.Title = req.Title
	listing.Location = req.Location
	listing.Latitude = lat
	listing.Longitude = lng
	listing.RentPerHour = req.RentPerHour
	listing.Description = req.Description
	listing.HasEVCharger = req.HasEVCharger
	listing.ChargerLevel = req.ChargerLevel
	listing.ConnectorType = req.ConnectorType
	if req.ParkingSpotSize != "" {
		listing.ParkingSpotSize = req.ParkingSpotSize
	}
	if !listing.HasEVCharger {
		listing.ChargerLevel = ""
		listing.ConnectorType = ""
	}

	if err := s.db.Omit("Slots").Save(listing).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to update listing", err)
	}
	if err := s.availability.ReplaceListingSlots(listing.ID, merged); err != nil {
		return nil, err
	}

	return s.GetListingByID(listing.ID)
}

// DeleteListing removes a listing. Deletion is blocked while the listing has
// pending or approved bookings with time remaining.
func (s *ListingService) DeleteListing(userID uint, listingID uint, isAdmin bool) error {
	listing, err := s.GetListingByID(listingID)
	if err != nil {
		return err
	}
	if listing.UserID != userID && !isAdmin {
		return errors.NewAppError(errors.ErrCodeUnauthorized,
			"You can only delete your own listings", errors.ErrNotListingOwner)
	}

	var bookings []models.Booking
	if err := s.db.Preload("Slots").
		Where("listing_id = ? AND status IN ?", listingID,
			[]int{models.BookingStatusPending, models.BookingStatusApproved}).
		Find(&bookings).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to load bookings", err)
	}
	now := time.Now()
	for i := range bookings {
		for j := range bookings[i].Slots {
			iv, err := bookings[i].Slots[j].Interval()
			if err != nil {
				continue
			}
			if iv.End.After(now) {
				return errors.NewAppError(errors.ErrCodeBookingConflict,
					"Listing has active bookings and cannot be deleted", nil)
			}
		}
	}

	if err := s.db.Select("Slots").Delete(listing).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to delete listing", err)
	}
	s.logger.Info("listing %d deleted by user %d", listingID, userID)
	return nil
}

// GetListingByID loads one listing with its slots and owner
func (s *ListingService) GetListingByID(id uint) (*models.Listing, error) {
	var listing models.Listing
	if err := s.db.Preload("Slots").Preload("User").First(&listing, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeInvalidListingID, "Listing not found", errors.ErrListingNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load listing", err)
	}
	return &listing, nil
}

// GetAllListings loads every listing with slots and owners, for search
func (s *ListingService) GetAllListings() ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.db.Preload("Slots").Preload("User").Find(&listings).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load listings", err)
	}
	return listings, nil
}

// GetActiveListings returns listings that still have availability ending in
// the future. Fully booked or stale listings drop out of the public view.
func (s *ListingService) GetActiveListings(now time.Time) ([]models.Listing, error) {
	listings, err := s.GetAllListings()
	if err != nil {
		return nil, err
	}
	active := listings[:0]
	for i := range listings {
		if listings[i].IsActive(now) {
			active = append(active, listings[i])
		}
	}
	return active, nil
}

// GetUserListings loads the listings owned by one user
func (s *ListingService) GetUserListings(userID uint) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.db.Preload("Slots").Where("user_id = ?", userID).Find(&listings).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load listings", err)
	}
	return listings, nil
}

// resolveSlotIntervals turns the request's slot list or recurring pattern
// into validated instant spans.
func (s *ListingService) resolveSlotIntervals(slots []dto.SlotPayload, recurring *dto.RecurringSlotPayload) ([]utils.Interval, error) {
	if recurring != nil {
		return expandRecurringPayload(recurring)
	}

	now := time.Now()
	intervals := make([]utils.Interval, 0, len(slots))
	for _, payload := range slots {
		iv, err := validator.ValidateSlotPayload(payload, now)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, iv)
	}
	if err := validator.ValidateNonOverlappingSlots(intervals); err != nil {
		return nil, err
	}
	return intervals, nil
}

// expandRecurringPayload validates and expands a recurring pattern into slot
// intervals. Spans beyond the daily and weekly caps are rejected outright on
// listing creation; the search filter only warns for the same spans.
func expandRecurringPayload(payload *dto.RecurringSlotPayload) ([]utils.Interval, error) {
	startDate, err := utils.ParseDate(payload.StartDate)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeParseFailure, "Invalid start date", err)
	}
	startTime, err := utils.ParseTime(payload.StartTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeParseFailure, "Invalid start time", err)
	}
	endTime, err := utils.ParseTime(payload.EndTime)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrCodeParseFailure, "Invalid end time", err)
	}

	if !payload.Overnight && !startTime.Before(endTime) {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRange,
			"Start time must be before end time unless overnight booking is selected", nil)
	}

	opts := utils.RecurrenceOptions{Weeks: payload.Weeks}
	if payload.EndDate != "" {
		endDate, err := utils.ParseDate(payload.EndDate)
		if err != nil {
			return nil, errors.NewAppError(errors.ErrCodeParseFailure, "Invalid end date", err)
		}
		opts.EndDate = &endDate
	}

	if payload.Pattern == utils.PatternDaily && opts.EndDate != nil {
		if int(opts.EndDate.Sub(startDate).Hours()/24)+1 > constants.MaxDailySpanDays {
			return nil, errors.NewAppError(errors.ErrCodeInvalidRange,
				"Daily availability cannot span more than 90 days", nil)
		}
	}
	if payload.Pattern == utils.PatternWeekly && payload.Weeks > constants.MaxWeeklySpan {
		return nil, errors.NewAppError(errors.ErrCodeInvalidRange,
			"Weekly availability cannot span more than 52 weeks", nil)
	}

	specs, err := utils.GenerateRecurringSlots(startDate, startTime, endTime, payload.Pattern, payload.Overnight, opts)
	if err != nil {
		return nil, err
	}

	intervals := make([]utils.Interval, 0, len(specs))
	for _, spec := range specs {
		intervals = append(intervals, utils.SlotSpecInterval(spec))
	}
	return intervals, nil
}

// resolveCoordinates reads coordinates embedded in the location string and
// falls back to geocoding the plain address.
func (s *ListingService) resolveCoordinates(location string) (float64, float64, error) {
	lat, lng, err := utils.ExtractCoordinates(location)
	if err == nil {
		return lat, lng, nil
	}

	lat, lng, geoErr := GetCoordinatesFromAddress(location)
	if geoErr != nil {
		s.logger.Error("geocoding failed for %q: %v", location, geoErr)
		return 0, 0, errors.NewAppError(errors.ErrCodeInvalidFormat,
			"Location could not be found. Please select a valid location.", geoErr)
	}
	return lat, lng, nil
}

// ToListingResponse converts a listing to its public API shape
func ToListingResponse(listing *models.Listing) dto.ListingResponse {
	slots := make([]dto.SlotPayload, 0, len(listing.Slots))
	for _, slot := range listing.Slots {
		slots = append(slots, dto.SlotPayload{
			StartDate: slot.StartDate.Format(utils.DateLayout),
			StartTime: slot.StartTime,
			EndDate:   slot.EndDate.Format(utils.DateLayout),
			EndTime:   slot.EndTime,
		})
	}

	return dto.ListingResponse{
		ID:              listing.ID,
		UserID:          listing.UserID,
		OwnerName:       listing.User.Username,
		Title:           listing.Title,
		Location:        listing.Location,
		LocationName:    utils.SimplifyLocation(listing.Location),
		Latitude:        listing.Latitude,
		Longitude:       listing.Longitude,
		RentPerHour:     listing.RentPerHour,
		Description:     listing.Description,
		HasEVCharger:    listing.HasEVCharger,
		ChargerLevel:    listing.ChargerLevel,
		ConnectorType:   listing.ConnectorType,
		ParkingSpotSize: listing.ParkingSpotSize,
		Slots:           slots,
		Distance:        listing.Distance,
	}
}

// ToListingResponses converts a listing slice, preserving order
func ToListingResponses(listings []models.Listing) []dto.ListingResponse {
	out := make([]dto.ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, ToListingResponse(&listings[i]))
	}
	return out
}
