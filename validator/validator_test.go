package validator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkeasy/dto"
	"parkeasy/errors"
	"parkeasy/utils"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestValidateSlotPayload(t *testing.T) {
	t.Run("valid future slot", func(t *testing.T) {
		iv, err := ValidateSlotPayload(dto.SlotPayload{
			StartDate: "2025-06-02", StartTime: "09:00",
			EndDate: "2025-06-02", EndTime: "17:00",
		}, now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC), iv.Start)
		assert.Equal(t, time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC), iv.End)
	})

	t.Run("start date after end date", func(t *testing.T) {
		_, err := ValidateSlotPayload(dto.SlotPayload{
			StartDate: "2025-06-03", StartTime: "09:00",
			EndDate: "2025-06-02", EndTime: "17:00",
		}, now)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidRange, errors.GetAppError(err).Code)
	})

	t.Run("same day needs increasing times", func(t *testing.T) {
		_, err := ValidateSlotPayload(dto.SlotPayload{
			StartDate: "2025-06-02", StartTime: "17:00",
			EndDate: "2025-06-02", EndTime: "09:00",
		}, now)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeInvalidRange, errors.GetAppError(err).Code)
	})

	t.Run("overnight slot spanning days is fine with inverted times", func(t *testing.T) {
		_, err := ValidateSlotPayload(dto.SlotPayload{
			StartDate: "2025-06-02", StartTime: "22:00",
			EndDate: "2025-06-03", EndTime: "06:00",
		}, now)
		assert.NoError(t, err)
	})

	t.Run("start in the past today", func(t *testing.T) {
		_, err := ValidateSlotPayload(dto.SlotPayload{
			StartDate: "2025-06-01", StartTime: "09:00",
			EndDate: "2025-06-01", EndTime: "17:00",
		}, now)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSlotInPast, errors.GetAppError(err).Code)
	})

	t.Run("later today is allowed", func(t *testing.T) {
		_, err := ValidateSlotPayload(dto.SlotPayload{
			StartDate: "2025-06-01", StartTime: "13:00",
			EndDate: "2025-06-01", EndTime: "17:00",
		}, now)
		assert.NoError(t, err)
	})

	t.Run("garbage dates", func(t *testing.T) {
		_, err := ValidateSlotPayload(dto.SlotPayload{
			StartDate: "06/02/2025", StartTime: "09:00",
			EndDate: "2025-06-02", EndTime: "17:00",
		}, now)
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeParseFailure, errors.GetAppError(err).Code)
	})
}

func TestValidateNonOverlappingSlots(t *testing.T) {
	mk := func(startHour, endHour int) utils.Interval {
		return utils.Interval{
			Start: time.Date(2025, 6, 2, startHour, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 2, endHour, 0, 0, 0, time.UTC),
		}
	}

	assert.NoError(t, ValidateNonOverlappingSlots([]utils.Interval{mk(9, 11), mk(11, 13)}))
	assert.NoError(t, ValidateNonOverlappingSlots(nil))

	err := ValidateNonOverlappingSlots([]utils.Interval{mk(9, 12), mk(11, 13)})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeOverlappingSlots, errors.GetAppError(err).Code)
}

func TestValidateRegisterRequest(t *testing.T) {
	valid := dto.RegisterRequest{Username: "sam", Email: "sam@example.com", Password: "secret1"}
	assert.NoError(t, ValidateRegisterRequest(&valid))

	bad := valid
	bad.Email = "not-an-email"
	err := ValidateRegisterRequest(&bad)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidEmail, errors.GetAppError(err).Code)

	short := valid
	short.Password = "abc"
	assert.Error(t, ValidateRegisterRequest(&short))
}

func TestValidateVerificationRequest(t *testing.T) {
	valid := dto.VerificationRequest{Age: 25, Address: "1 Main St", PhoneNumber: "+12125551234"}
	assert.NoError(t, ValidateVerificationRequest(&valid))

	minor := valid
	minor.Age = 16
	assert.Error(t, ValidateVerificationRequest(&minor))

	badPhone := valid
	badPhone.PhoneNumber = "call me"
	err := ValidateVerificationRequest(&badPhone)
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidFormat, errors.GetAppError(err).Code)
}

func TestValidateListingRequest(t *testing.T) {
	assert.NoError(t, ValidateListingRequest("Driveway", "Brooklyn [40.7,-73.9]", 5))
	assert.Error(t, ValidateListingRequest("", "Brooklyn", 5))
	assert.Error(t, ValidateListingRequest("Driveway", "", 5))
	assert.Error(t, ValidateListingRequest("Driveway", "Brooklyn", 0))
}
