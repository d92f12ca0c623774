package services

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parkeasy/models"
)

// fakeAvailability records lifecycle calls without touching a database. It
// never runs the save callback, standing in for a rolled-back transaction.
type fakeAvailability struct {
	blocked    []uint
	restored   []uint
	savePassed bool
	err        error
}

func (f *fakeAvailability) BlockOutBooking(listingID uint, booking *models.Booking, save func(tx *gorm.DB) error) error {
	f.blocked = append(f.blocked, listingID)
	f.savePassed = save != nil
	return f.err
}

func (f *fakeAvailability) RestoreBookingAvailability(listingID uint, booking *models.Booking, save func(tx *gorm.DB) error) error {
	f.restored = append(f.restored, listingID)
	f.savePassed = save != nil
	return f.err
}

func TestPersistTransitionApprovalGoesThroughStore(t *testing.T) {
	fake := &fakeAvailability{}
	s := &BookingService{availability: fake}
	booking := &models.Booking{ID: 5, ListingID: 9, Status: models.BookingStatusApproved}

	require.NoError(t, s.persistTransition(booking, false))
	assert.Equal(t, []uint{9}, fake.blocked)
	assert.Empty(t, fake.restored)
	assert.True(t, fake.savePassed, "status save must ride inside the carve-out transaction")
}

func TestPersistTransitionLeavingApprovedRestores(t *testing.T) {
	fake := &fakeAvailability{}
	s := &BookingService{availability: fake}
	booking := &models.Booking{ID: 5, ListingID: 9, Status: models.BookingStatusCancelled}

	require.NoError(t, s.persistTransition(booking, true))
	assert.Equal(t, []uint{9}, fake.restored)
	assert.Empty(t, fake.blocked)
	assert.True(t, fake.savePassed)
}

func TestPersistTransitionCarveFailureAbortsStatusChange(t *testing.T) {
	carveErr := stderrors.New("slot rewrite failed")
	fake := &fakeAvailability{err: carveErr}
	s := &BookingService{availability: fake}
	booking := &models.Booking{ID: 5, ListingID: 9, Status: models.BookingStatusApproved}

	err := s.persistTransition(booking, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, carveErr)
}
