package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"parkeasy/dto"
	"parkeasy/response"
	"parkeasy/services"
)

// BookingController serves the booking lifecycle
type BookingController struct {
	service *services.BookingService
}

func NewBookingController(service *services.BookingService) *BookingController {
	return &BookingController{service: service}
}

// CreateBooking places a PENDING booking on a listing
func (ctl *BookingController) CreateBooking(c *gin.Context) {
	userID := c.GetUint("userID")

	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	booking, err := ctl.service.CreateBooking(userID, &req)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToBookingResponse(booking))
}

// ChangeBookingStatus approves, denies or cancels a booking
func (ctl *BookingController) ChangeBookingStatus(c *gin.Context) {
	userID := c.GetUint("userID")

	var req dto.BookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	booking, err := ctl.service.UpdateBookingStatus(userID, &req)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToBookingResponse(booking))
}

// GetBookingDetail returns one booking visible to either party
func (ctl *BookingController) GetBookingDetail(c *gin.Context) {
	userID := c.GetUint("userID")

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid booking ID")
		return
	}

	booking, err := ctl.service.GetBookingByID(uint(bookingID))
	if err != nil {
		respondAppError(c, err)
		return
	}
	if booking.UserID != userID && booking.Listing.UserID != userID {
		response.Forbidden(c)
		return
	}
	response.Success(c, services.ToBookingResponse(booking))
}

// GetMyBookings returns the bookings the caller has placed
func (ctl *BookingController) GetMyBookings(c *gin.Context) {
	userID := c.GetUint("userID")
	bookings, err := ctl.service.GetUserBookings(userID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToBookingResponses(bookings))
}

// GetOwnerBookings returns the bookings placed against the caller's listings
func (ctl *BookingController) GetOwnerBookings(c *gin.Context) {
	userID := c.GetUint("userID")
	bookings, err := ctl.service.GetOwnerBookings(userID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToBookingResponses(bookings))
}
