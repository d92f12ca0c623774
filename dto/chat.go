package dto

import "time"

// ChatEnvelope is the JSON frame exchanged over the chat websocket.
type ChatEnvelope struct {
	ConversationID uint   `json:"conversationId"`
	Message        string `json:"message"`
}

// ChatBroadcast is the frame pushed to every participant session in a
// conversation group.
type ChatBroadcast struct {
	Message        string `json:"message"`
	SenderID       uint   `json:"senderId"`
	SenderUsername string `json:"senderUsername"`
}

// ConversationResponse identifies an open conversation
type ConversationResponse struct {
	ConversationID   uint   `json:"conversationId"`
	ConversationName string `json:"conversationName"`
}

// ChatMessageResponse is one message in a conversation history
type ChatMessageResponse struct {
	SenderID  uint      `json:"senderId"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
