package services

import (
	stderrors "errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"parkeasy/dto"
	"parkeasy/errors"
	"parkeasy/models"
	"parkeasy/services/logger"
	"parkeasy/services/notification"
	"parkeasy/utils"
	"parkeasy/validator"
)

// availabilityStore is the slice of AvailabilityService the booking
// lifecycle needs. The save callbacks run inside the store's transaction.
type availabilityStore interface {
	BlockOutBooking(listingID uint, booking *models.Booking, save func(tx *gorm.DB) error) error
	RestoreBookingAvailability(listingID uint, booking *models.Booking, save func(tx *gorm.DB) error) error
}

// BookingService owns the booking lifecycle. Bookings start PENDING and only
// touch availability when the owner approves; leaving APPROVED restores the
// reserved intervals.
type BookingService struct {
	db           *gorm.DB
	logger       logger.Logger
	availability availabilityStore
	notifier     notification.Service
}

type BookingServiceOptions struct {
	DB           *gorm.DB
	Logger       logger.Logger
	Availability *AvailabilityService
	Notifier     notification.Service
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notification.NoopService{}
	}
	return &BookingService{
		db:           opts.DB,
		logger:       opts.Logger,
		availability: opts.Availability,
		notifier:     notifier,
	}
}

// CreateBooking creates a PENDING booking for one slot or a recurring set of
// slots. Every requested interval must fit inside the listing's current
// availability; approval re-checks because availability can change while the
// request waits.
func (s *BookingService) CreateBooking(userID uint, req *dto.CreateBookingRequest) (*models.Booking, error) {
	var listing models.Listing
	if err := s.db.Preload("Slots").First(&listing, req.ListingID).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeInvalidListingID, "Listing not found", errors.ErrListingNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load listing", err)
	}
	if listing.UserID == userID {
		return nil, errors.NewAppError(errors.ErrCodeOwnListing,
			"You cannot book your own listing", nil)
	}

	intervals, err := s.requestedIntervals(req)
	if err != nil {
		return nil, err
	}
	if len(intervals) == 0 {
		return nil, errors.NewAppError(errors.ErrCodeRequiredField,
			"A booking slot or recurring pattern is required", nil)
	}

	available := utils.MergeIntervals(listing.AvailabilityIntervals())
	for _, iv := range intervals {
		if !utils.IsIntervalCovered(iv, available) {
			return nil, errors.NewAppError(errors.ErrCodeSlotUnavailable,
				"Requested time is not available", errors.ErrListingNotAvailable)
		}
	}

	booking := models.Booking{
		UserID:     userID,
		ListingID:  listing.ID,
		Status:     models.BookingStatusPending,
		TotalPrice: totalPrice(listing.RentPerHour, intervals),
	}
	for _, iv := range intervals {
		booking.Slots = append(booking.Slots, models.BookingSlot{
			StartDate: utils.StartOfDay(iv.Start),
			StartTime: iv.Start.Format(utils.TimeLayout),
			EndDate:   utils.StartOfDay(iv.End),
			EndTime:   iv.End.Format(utils.TimeLayout),
		})
	}

	if err := s.db.Create(&booking).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to create booking", err)
	}

	s.logger.Info("booking %d created by user %d on listing %d", booking.ID, userID, listing.ID)
	if err := s.notifier.Notify(listing.UserID,
		fmt.Sprintf("New booking request for %s", listing.Title), "/bookings"); err != nil {
		s.logger.Error("notify owner %d failed: %v", listing.UserID, err)
	}
	return &booking, nil
}

// UpdateBookingStatus applies one lifecycle action. Owners approve or deny;
// the booker cancels. Approval blocks the reserved intervals out of the
// listing; deny or cancel after approval restores them.
func (s *BookingService) UpdateBookingStatus(actorID uint, req *dto.BookingStatusRequest) (*models.Booking, error) {
	booking, err := s.GetBookingByID(req.BookingID)
	if err != nil {
		return nil, err
	}
	wasApproved := booking.Status == models.BookingStatusApproved
	state := models.GetBookingState(booking.Status)

	switch req.Action {
	case "approve":
		if booking.Listing.UserID != actorID {
			return nil, errors.NewAppError(errors.ErrCodeUnauthorized,
				"Only the listing owner can approve bookings", nil)
		}
		available := utils.MergeIntervals(booking.Listing.AvailabilityIntervals())
		if !IsBookingCoveredByIntervals(booking, available) {
			return nil, errors.NewAppError(errors.ErrCodeSlotUnavailable,
				"Requested time is no longer available", errors.ErrListingNotAvailable)
		}
		if err := state.Approve(booking); err != nil {
			return nil, errors.NewAppError(errors.ErrCodeInvalidStatus, err.Error(), err)
		}
	case "deny":
		if booking.Listing.UserID != actorID {
			return nil, errors.NewAppError(errors.ErrCodeUnauthorized,
				"Only the listing owner can deny bookings", nil)
		}
		if err := state.Deny(booking); err != nil {
			return nil, errors.NewAppError(errors.ErrCodeInvalidStatus, err.Error(), err)
		}
	case "cancel":
		if booking.UserID != actorID {
			return nil, errors.NewAppError(errors.ErrCodeUnauthorized,
				"Only the booker can cancel a booking", nil)
		}
		if err := state.Cancel(booking); err != nil {
			return nil, errors.NewAppError(errors.ErrCodeInvalidStatus, err.Error(), err)
		}
	default:
		return nil, errors.NewAppError(errors.ErrCodeInvalidStatus,
			"Unknown action: "+req.Action, nil)
	}

	if err := s.persistTransition(booking, wasApproved); err != nil {
		return nil, err
	}

	s.notifyStatusChange(booking, req.Action)
	return booking, nil
}

// persistTransition commits the status change. Transitions that touch
// availability save the status row inside the availability transaction, so a
// failed carve or restore rolls the status back with it.
func (s *BookingService) persistTransition(booking *models.Booking, wasApproved bool) error {
	save := func(tx *gorm.DB) error {
		if err := tx.Omit("Slots", "Listing", "User").Save(booking).Error; err != nil {
			return errors.NewAppError(errors.ErrCodeDBError, "Failed to update booking", err)
		}
		return nil
	}

	switch {
	case booking.Status == models.BookingStatusApproved:
		return s.availability.BlockOutBooking(booking.ListingID, booking, save)
	case wasApproved:
		return s.availability.RestoreBookingAvailability(booking.ListingID, booking, save)
	default:
		return save(s.db)
	}
}

// GetBookingByID loads one booking with its slots, listing and booker
func (s *BookingService) GetBookingByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.db.Preload("Slots").Preload("Listing.Slots").Preload("Listing").Preload("User").
		First(&booking, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NewAppError(errors.ErrCodeInvalidBookingID, "Booking not found", errors.ErrBookingNotFound)
		}
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load booking", err)
	}
	return &booking, nil
}

// GetUserBookings loads the bookings a user has placed
func (s *BookingService) GetUserBookings(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.Preload("Slots").Preload("Listing").Preload("User").
		Where("user_id = ?", userID).Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load bookings", err)
	}
	return bookings, nil
}

// GetOwnerBookings loads the bookings placed against a user's listings
func (s *BookingService) GetOwnerBookings(ownerID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := s.db.Preload("Slots").Preload("Listing").Preload("User").
		Joins("JOIN listings ON listings.id = bookings.listing_id").
		Where("listings.user_id = ?", ownerID).Order("bookings.created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load bookings", err)
	}
	return bookings, nil
}

// ExpireStalePending denies pending bookings whose first slot start has
// already passed. Run from the hourly cron job.
func (s *BookingService) ExpireStalePending(now time.Time) (int, error) {
	var pending []models.Booking
	if err := s.db.Preload("Slots").
		Where("status = ?", models.BookingStatusPending).
		Find(&pending).Error; err != nil {
		return 0, errors.NewAppError(errors.ErrCodeDBError, "Failed to load pending bookings", err)
	}

	expired := 0
	for i := range pending {
		booking := &pending[i]
		if !bookingStartPassed(booking, now) {
			continue
		}
		if err := models.GetBookingState(booking.Status).Deny(booking); err != nil {
			continue
		}
		if err := s.db.Omit("Slots").Save(booking).Error; err != nil {
			s.logger.Error("expire booking %d failed: %v", booking.ID, err)
			continue
		}
		expired++
		if err := s.notifier.Notify(booking.UserID,
			"Your booking request expired before the owner responded", "/bookings"); err != nil {
			s.logger.Error("notify booker %d failed: %v", booking.UserID, err)
		}
	}
	return expired, nil
}

func bookingStartPassed(booking *models.Booking, now time.Time) bool {
	for i := range booking.Slots {
		iv, err := booking.Slots[i].Interval()
		if err != nil {
			continue
		}
		if iv.Start.After(now) {
			return false
		}
	}
	return len(booking.Slots) > 0
}

func (s *BookingService) requestedIntervals(req *dto.CreateBookingRequest) ([]utils.Interval, error) {
	if req.Recurring != nil {
		return expandRecurringPayload(req.Recurring)
	}
	if req.Slot == nil {
		return nil, nil
	}
	iv, err := validator.ValidateSlotPayload(*req.Slot, time.Now())
	if err != nil {
		return nil, err
	}
	return []utils.Interval{iv}, nil
}

func totalPrice(rentPerHour float64, intervals []utils.Interval) float64 {
	var hours float64
	for _, iv := range intervals {
		hours += iv.End.Sub(iv.Start).Hours()
	}
	return rentPerHour * hours
}

func (s *BookingService) notifyStatusChange(booking *models.Booking, action string) {
	var userID uint
	var message string
	switch action {
	case "approve":
		userID = booking.UserID
		message = fmt.Sprintf("Your booking for %s was approved", booking.Listing.Title)
	case "deny":
		userID = booking.UserID
		message = fmt.Sprintf("Your booking for %s was denied", booking.Listing.Title)
	case "cancel":
		userID = booking.Listing.UserID
		message = fmt.Sprintf("A booking for %s was cancelled", booking.Listing.Title)
	default:
		return
	}
	if err := s.notifier.Notify(userID, message, "/bookings"); err != nil {
		s.logger.Error("notify user %d failed: %v", userID, err)
	}
}

// ToBookingResponse converts a booking to its API shape
func ToBookingResponse(booking *models.Booking) dto.BookingResponse {
	slots := make([]dto.SlotPayload, 0, len(booking.Slots))
	for _, slot := range booking.Slots {
		slots = append(slots, dto.SlotPayload{
			StartDate: slot.StartDate.Format(utils.DateLayout),
			StartTime: slot.StartTime,
			EndDate:   slot.EndDate.Format(utils.DateLayout),
			EndTime:   slot.EndTime,
		})
	}
	return dto.BookingResponse{
		ID:           booking.ID,
		ListingID:    booking.ListingID,
		ListingTitle: booking.Listing.Title,
		UserID:       booking.UserID,
		BookerName:   booking.User.Username,
		Status:       booking.StatusLabel(),
		TotalPrice:   booking.TotalPrice,
		Slots:        slots,
	}
}

// ToBookingResponses converts a booking slice, preserving order
func ToBookingResponses(bookings []models.Booking) []dto.BookingResponse {
	out := make([]dto.BookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, ToBookingResponse(&bookings[i]))
	}
	return out
}
