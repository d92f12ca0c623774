package models

import (
	"fmt"
	"time"
)

// Conversation is a chat thread between exactly two users.
type Conversation struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	User1ID   uint          `gorm:"index;not null" json:"user1Id"`
	User1     User          `gorm:"foreignKey:User1ID" json:"user1"`
	User2ID   uint          `gorm:"index;not null" json:"user2Id"`
	User2     User          `gorm:"foreignKey:User2ID" json:"user2"`
	Messages  []ChatMessage `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE" json:"messages,omitempty"`
}

// GroupName forms the websocket group key for this conversation, e.g.
// "chat_3_5". The lower user ID always comes first so both participants
// compute the same key.
func (c *Conversation) GroupName() string {
	low, high := c.User1ID, c.User2ID
	if low > high {
		low, high = high, low
	}
	return fmt.Sprintf("chat_%d_%d", low, high)
}

// HasParticipant reports whether the user takes part in this conversation.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.User1ID == userID || c.User2ID == userID
}

// OtherParticipant returns the counterparty for the given user.
func (c *Conversation) OtherParticipant(userID uint) uint {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}
