package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"

	"parkeasy/dto"
	"parkeasy/response"
	"parkeasy/services"
	"parkeasy/services/notification"
)

// ChatController serves conversations and their websocket upgrades
type ChatController struct {
	service *services.ChatService
	m       *melody.Melody
}

func NewChatController(service *services.ChatService, m *melody.Melody) *ChatController {
	return &ChatController{service: service, m: m}
}

// StartConversation opens (or returns) the conversation with another user
func (ctl *ChatController) StartConversation(c *gin.Context) {
	userID := c.GetUint("userID")

	otherID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	conversation, err := ctl.service.GetOrCreateConversation(userID, uint(otherID))
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, dto.ConversationResponse{
		ConversationID:   conversation.ID,
		ConversationName: conversation.GroupName(),
	})
}

// GetConversations lists the caller's open conversations
func (ctl *ChatController) GetConversations(c *gin.Context) {
	userID := c.GetUint("userID")
	conversations, err := ctl.service.GetUserConversations(userID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, conversations)
}

// GetMessages returns a conversation's history, oldest first
func (ctl *ChatController) GetMessages(c *gin.Context) {
	userID := c.GetUint("userID")

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid conversation ID")
		return
	}

	messages, err := ctl.service.GetConversationMessages(uint(conversationID), userID)
	if err != nil {
		respondAppError(c, err)
		return
	}
	response.Success(c, messages)
}

// ChatSocket upgrades the request into a conversation-group websocket
// session. The caller must participate in the conversation.
func (ctl *ChatController) ChatSocket(c *gin.Context) {
	userID := c.GetUint("userID")

	conversationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid conversation ID")
		return
	}

	conversation, err := ctl.service.ConversationForUser(uint(conversationID), userID)
	if err != nil {
		respondAppError(c, err)
		return
	}

	keys := services.SessionKeys(userID, "chat", conversation.GroupName())
	if err := ctl.m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		c.Error(err)
	}
}

// NotificationSocket upgrades the request into the caller's notification
// group session.
func (ctl *ChatController) NotificationSocket(c *gin.Context) {
	userID := c.GetUint("userID")

	keys := services.SessionKeys(userID, "notifications", notification.GroupName(userID))
	if err := ctl.m.HandleRequestWithKeys(c.Writer, c.Request, keys); err != nil {
		c.Error(err)
	}
}
