package services

import (
	"sync"

	"gorm.io/gorm"

	"parkeasy/errors"
	"parkeasy/models"
	"parkeasy/services/logger"
	"parkeasy/utils"
)

// AvailabilityService owns the disjoint-slot invariant of listing
// availability. Every mutation runs under a per-listing mutex and a
// transaction so concurrent approvals against the same listing serialize
// instead of losing updates.
type AvailabilityService struct {
	db     *gorm.DB
	logger logger.Logger
	locks  sync.Map // listing ID -> *sync.Mutex
}

type AvailabilityServiceOptions struct {
	DB     *gorm.DB
	Logger logger.Logger
}

func NewAvailabilityService(opts AvailabilityServiceOptions) *AvailabilityService {
	return &AvailabilityService{
		db:     opts.DB,
		logger: opts.Logger,
	}
}

func (s *AvailabilityService) lockListing(listingID uint) func() {
	value, _ := s.locks.LoadOrStore(listingID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// BlockOutIntervals subtracts every booked interval from the availability
// set. Subtraction only shrinks existing spans, so no merge pass is needed
// afterwards: residuals of disjoint slots stay disjoint.
func BlockOutIntervals(availability, booked []utils.Interval) []utils.Interval {
	remaining := availability
	for _, cut := range booked {
		var next []utils.Interval
		for _, slot := range remaining {
			next = append(next, utils.SubtractInterval(slot, cut)...)
		}
		remaining = next
	}
	return remaining
}

// RestoreIntervals returns the booked intervals to the availability set and
// re-merges so adjacent spans collapse back together.
func RestoreIntervals(availability, booked []utils.Interval) []utils.Interval {
	combined := make([]utils.Interval, 0, len(availability)+len(booked))
	combined = append(combined, availability...)
	combined = append(combined, booked...)
	return utils.MergeIntervals(combined)
}

// IsBookingSlotCovered reports whether one interval in the set fully
// contains the given booking slot.
func IsBookingSlotCovered(slot *models.BookingSlot, intervals []utils.Interval) bool {
	iv, err := slot.Interval()
	if err != nil {
		return false
	}
	return utils.IsIntervalCovered(iv, intervals)
}

// IsBookingCoveredByIntervals reports whether every slot of the booking is
// covered by the interval set. Used both when creating a booking and when an
// owner edits availability underneath approved bookings.
func IsBookingCoveredByIntervals(booking *models.Booking, intervals []utils.Interval) bool {
	for i := range booking.Slots {
		if !IsBookingSlotCovered(&booking.Slots[i], intervals) {
			return false
		}
	}
	return true
}

// BlockOutBooking carves every interval of the booking out of the listing's
// availability. Called when a booking is approved. The save callback runs
// inside the same transaction so a booking status change and its carve-out
// commit or roll back together.
func (s *AvailabilityService) BlockOutBooking(listingID uint, booking *models.Booking, save func(tx *gorm.DB) error) error {
	unlock := s.lockListing(listingID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		availability, err := loadSlotIntervals(tx, listingID)
		if err != nil {
			return err
		}

		remaining := BlockOutIntervals(availability, models.BookingIntervals(booking))
		if err := replaceSlots(tx, listingID, remaining); err != nil {
			return err
		}
		if save != nil {
			if err := save(tx); err != nil {
				return err
			}
		}

		s.logger.Info("blocked booking %d on listing %d: %d slots remain",
			booking.ID, listingID, len(remaining))
		return nil
	})
}

// RestoreBookingAvailability merges the booking's intervals back into the
// listing's availability. Called when a previously approved booking is
// cancelled or denied. The save callback runs inside the same transaction,
// mirroring BlockOutBooking.
func (s *AvailabilityService) RestoreBookingAvailability(listingID uint, booking *models.Booking, save func(tx *gorm.DB) error) error {
	unlock := s.lockListing(listingID)
	defer unlock()

	return s.db.Transaction(func(tx *gorm.DB) error {
		availability, err := loadSlotIntervals(tx, listingID)
		if err != nil {
			return err
		}

		merged := RestoreIntervals(availability, models.BookingIntervals(booking))
		if err := replaceSlots(tx, listingID, merged); err != nil {
			return err
		}
		if save != nil {
			if err := save(tx); err != nil {
				return err
			}
		}

		s.logger.Info("restored booking %d on listing %d: %d slots",
			booking.ID, listingID, len(merged))
		return nil
	})
}

// ReplaceListingSlots overwrites the availability set with the given
// intervals, used by owner edits after validation.
func (s *AvailabilityService) ReplaceListingSlots(listingID uint, intervals []utils.Interval) error {
	unlock := s.lockListing(listingID)
	defer unlock()

	merged := utils.MergeIntervals(intervals)
	return s.db.Transaction(func(tx *gorm.DB) error {
		return replaceSlots(tx, listingID, merged)
	})
}

func loadSlotIntervals(tx *gorm.DB, listingID uint) ([]utils.Interval, error) {
	var slots []models.ListingSlot
	if err := tx.Where("listing_id = ?", listingID).Find(&slots).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load availability slots", err)
	}

	intervals := make([]utils.Interval, 0, len(slots))
	for i := range slots {
		iv, err := slots[i].Interval()
		if err != nil {
			continue
		}
		intervals = append(intervals, iv)
	}
	return intervals, nil
}

func replaceSlots(tx *gorm.DB, listingID uint, intervals []utils.Interval) error {
	if err := tx.Where("listing_id = ?", listingID).Delete(&models.ListingSlot{}).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to clear availability slots", err)
	}

	if len(intervals) == 0 {
		return nil
	}

	slots := make([]models.ListingSlot, 0, len(intervals))
	for _, iv := range intervals {
		slots = append(slots, models.SlotFromInterval(listingID, iv))
	}
	if err := tx.Create(&slots).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to write availability slots", err)
	}
	return nil
}
