package models

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID                    uint          `gorm:"primaryKey" json:"id"`
	CreatedAt             time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt             time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
	Username              string        `gorm:"unique;not null" json:"username"`
	Email                 string        `gorm:"unique" json:"email"`
	Password              string        `json:"-"`
	Role                  int           `gorm:"default:0" json:"role"`
	Status                int           `gorm:"default:1" json:"status"`
	Avatar                string        `json:"avatar"`
	Age                   int           `json:"age"`
	Address               string        `json:"address"`
	PhoneNumber           string        `gorm:"type:varchar(15)" json:"phoneNumber"`
	IsVerified            bool          `gorm:"default:false" json:"isVerified"`
	VerificationStatus    int           `gorm:"default:0" json:"verificationStatus"`
	VerificationFile      string        `json:"verificationFile,omitempty"`
	FavoriteListingIDs    pq.Int64Array `gorm:"type:integer[]" json:"favoriteListingIds"`
	Listings              []Listing     `gorm:"foreignKey:UserID" json:"listings,omitempty"`
	Bookings              []Booking     `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
}

// CanCreateListings reports whether the user passed identity verification,
// which gates listing creation.
func (u *User) CanCreateListings() bool {
	return u.IsVerified
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == 1
}
