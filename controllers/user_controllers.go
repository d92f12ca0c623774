package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"parkeasy/response"
	"parkeasy/services"
	"parkeasy/services/notification"
)

var notifier notification.Service = notification.NoopService{}

// SetNotifier installs the websocket-backed notification service. Called
// once from main after the hub exists.
func SetNotifier(n notification.Service) {
	if n != nil {
		notifier = n
	}
}

// GetUserByID returns one account's public profile
func GetUserByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := services.GetUserByID(uint(id))
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToUserResponse(user))
}

// AddFavorite adds a listing to the caller's favorites
func AddFavorite(c *gin.Context) {
	userID := c.GetUint("userID")
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	user, err := services.AddFavorite(userID, uint(listingID))
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, user.FavoriteListingIDs)
}

// RemoveFavorite removes a listing from the caller's favorites
func RemoveFavorite(c *gin.Context) {
	userID := c.GetUint("userID")
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid listing ID")
		return
	}

	user, err := services.RemoveFavorite(userID, uint(listingID))
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, user.FavoriteListingIDs)
}

// GetFavorites returns the caller's favorited listings
func GetFavorites(c *gin.Context) {
	userID := c.GetUint("userID")
	listings, err := services.GetFavoriteListings(userID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, services.ToListingResponses(listings))
}

// GetNotifications returns the caller's notifications, newest first
func GetNotifications(c *gin.Context) {
	userID := c.GetUint("userID")
	notifications, err := services.GetUserNotifications(userID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, notifications)
}

// MarkNotificationsRead marks all of the caller's notifications as read
func MarkNotificationsRead(c *gin.Context) {
	userID := c.GetUint("userID")
	if err := services.MarkNotificationsRead(userID); err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, nil)
}

// BroadcastNotification pushes an admin announcement to every user
func BroadcastNotification(c *gin.Context) {
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := notifier.Broadcast(req.Message); err != nil {
		response.ServerError(c)
		return
	}
	response.Success(c, nil)
}
