package models

import "time"

// ChatMessage is one persisted message inside a conversation.
type ChatMessage struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"index;not null" json:"conversationId"`
	SenderID       uint      `gorm:"not null" json:"senderId"`
	Sender         User      `gorm:"foreignKey:SenderID" json:"sender"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	Timestamp      time.Time `gorm:"autoCreateTime" json:"timestamp"`
}
