package models

import "time"

// Notification is a persisted per-user notice: booking decisions, chat
// pings while offline, admin broadcasts and verification results.
type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Link      string    `json:"link"`
	IsRead    bool      `gorm:"default:false" json:"isRead"`
}
