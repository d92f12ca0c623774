package services

import (
	stderrors "errors"

	"gorm.io/gorm"

	"parkeasy/config"
	"parkeasy/errors"
	"parkeasy/models"
)

// GetUserByID loads one user
func GetUserByID(id uint) (models.User, error) {
	var user models.User
	if err := config.DB.First(&user, id).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return user, errors.NewAppError(errors.ErrCodeUserNotFound, "User not found", errors.ErrUserNotFound)
		}
		return user, errors.NewAppError(errors.ErrCodeDBError, "Failed to load user", err)
	}
	return user, nil
}

// AddFavorite adds a listing to the user's favorites, idempotently
func AddFavorite(userID, listingID uint) (models.User, error) {
	user, err := GetUserByID(userID)
	if err != nil {
		return user, err
	}

	var listing models.Listing
	if err := config.DB.First(&listing, listingID).Error; err != nil {
		return user, errors.NewAppError(errors.ErrCodeInvalidListingID, "Listing not found", errors.ErrListingNotFound)
	}

	for _, id := range user.FavoriteListingIDs {
		if uint(id) == listingID {
			return user, nil
		}
	}
	user.FavoriteListingIDs = append(user.FavoriteListingIDs, int64(listingID))

	if err := config.DB.Model(&user).Update("favorite_listing_ids", user.FavoriteListingIDs).Error; err != nil {
		return user, errors.NewAppError(errors.ErrCodeDBError, "Failed to update favorites", err)
	}
	return user, nil
}

// RemoveFavorite removes a listing from the user's favorites
func RemoveFavorite(userID, listingID uint) (models.User, error) {
	user, err := GetUserByID(userID)
	if err != nil {
		return user, err
	}

	kept := user.FavoriteListingIDs[:0]
	for _, id := range user.FavoriteListingIDs {
		if uint(id) != listingID {
			kept = append(kept, id)
		}
	}
	user.FavoriteListingIDs = kept

	if err := config.DB.Model(&user).Update("favorite_listing_ids", user.FavoriteListingIDs).Error; err != nil {
		return user, errors.NewAppError(errors.ErrCodeDBError, "Failed to update favorites", err)
	}
	return user, nil
}

// GetFavoriteListings loads the user's favorited listings with slots
func GetFavoriteListings(userID uint) ([]models.Listing, error) {
	user, err := GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if len(user.FavoriteListingIDs) == 0 {
		return []models.Listing{}, nil
	}

	var listings []models.Listing
	if err := config.DB.Preload("Slots").Preload("User").
		Where("id IN ?", []int64(user.FavoriteListingIDs)).
		Find(&listings).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load favorites", err)
	}
	return listings, nil
}

// GetUserNotifications returns the user's notifications, newest first
func GetUserNotifications(userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	if err := config.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load notifications", err)
	}
	return notifications, nil
}

// MarkNotificationsRead marks all of the user's notifications as read
func MarkNotificationsRead(userID uint) error {
	if err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return errors.NewAppError(errors.ErrCodeDBError, "Failed to update notifications", err)
	}
	return nil
}
