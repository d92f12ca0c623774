package validator

import (
	"regexp"
	"time"

	"parkeasy/dto"
	"parkeasy/errors"
	"parkeasy/utils"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
var phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

// ValidateRegisterRequest checks new-account input
func ValidateRegisterRequest(req *dto.RegisterRequest) error {
	if req.Username == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Username is required", nil)
	}
	if req.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Email is required", nil)
	}
	if !emailPattern.MatchString(req.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "Email is not valid", nil)
	}
	if len(req.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "Password must be at least 6 characters", nil)
	}
	return nil
}

// ValidateVerificationRequest checks the identity details submitted for
// owner verification
func ValidateVerificationRequest(req *dto.VerificationRequest) error {
	if req.Age < 18 {
		return errors.NewAppError(errors.ErrCodeValidation, "You must be at least 18 to verify", nil)
	}
	if req.Address == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Address is required", nil)
	}
	if !phonePattern.MatchString(req.PhoneNumber) {
		return errors.NewAppError(errors.ErrCodeInvalidFormat, "Phone number is not valid", nil)
	}
	return nil
}

// ValidateSlotPayload parses one submitted slot and enforces the slot rules:
// start date not after end date, start time before end time on the same day,
// and no start in the past when the slot begins today.
func ValidateSlotPayload(payload dto.SlotPayload, now time.Time) (utils.Interval, error) {
	startDate, err := utils.ParseDate(payload.StartDate)
	if err != nil {
		return utils.Interval{}, errors.NewAppError(errors.ErrCodeParseFailure, "Invalid start date", err)
	}
	endDate, err := utils.ParseDate(payload.EndDate)
	if err != nil {
		return utils.Interval{}, errors.NewAppError(errors.ErrCodeParseFailure, "Invalid end date", err)
	}
	startTime, err := utils.ParseTime(payload.StartTime)
	if err != nil {
		return utils.Interval{}, errors.NewAppError(errors.ErrCodeParseFailure, "Invalid start time", err)
	}
	endTime, err := utils.ParseTime(payload.EndTime)
	if err != nil {
		return utils.Interval{}, errors.NewAppError(errors.ErrCodeParseFailure, "Invalid end time", err)
	}

	if startDate.After(endDate) {
		return utils.Interval{}, errors.NewAppError(errors.ErrCodeInvalidRange, "Start date cannot be after end date", nil)
	}
	if startDate.Equal(endDate) && !startTime.Before(endTime) {
		return utils.Interval{}, errors.NewAppError(errors.ErrCodeInvalidRange, "End time must be later than start time on the same day", nil)
	}

	start := utils.CombineDateTime(startDate, startTime)
	if startDate.Equal(utils.StartOfDay(now)) && !start.After(now) {
		return utils.Interval{}, errors.NewAppError(errors.ErrCodeSlotInPast, "Start time cannot be in the past for today's date", nil)
	}

	return utils.Interval{Start: start, End: utils.CombineDateTime(endDate, endTime)}, nil
}

// ValidateNonOverlappingSlots rejects a submitted slot set in which any two
// intervals overlap. Touching intervals are allowed; they merge on write.
func ValidateNonOverlappingSlots(intervals []utils.Interval) error {
	for i := range intervals {
		for j := i + 1; j < len(intervals); j++ {
			a, b := intervals[i], intervals[j]
			if a.Start.Before(b.End) && b.Start.Before(a.End) {
				return errors.NewAppError(errors.ErrCodeOverlappingSlots, "Availability slots cannot overlap", nil)
			}
		}
	}
	return nil
}

// ValidateListingRequest checks listing details shared by create and update
func ValidateListingRequest(title, location string, rentPerHour float64) error {
	if title == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Title is required", nil)
	}
	if location == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "Location is required", nil)
	}
	if rentPerHour <= 0 {
		return errors.NewAppError(errors.ErrCodeValidation, "Rent per hour must be positive", nil)
	}
	return nil
}
