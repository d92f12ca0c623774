package services

import (
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/olahol/melody"
	"gorm.io/gorm"

	"parkeasy/dto"
	"parkeasy/errors"
	"parkeasy/models"
	"parkeasy/services/logger"
	"parkeasy/services/notification"
)

// Session keys set on every websocket connection
const (
	SessionKeyID     = "sessionID"
	SessionKeyUserID = "userID"
	SessionKeyGroup  = "group"
	SessionKeyKind   = "kind"
)

// ChatService runs two-party conversations over melody websocket sessions.
// Messages persist so history survives reconnects; the counterparty also
// gets a notification-group push in case their chat window is closed.
type ChatService struct {
	db       *gorm.DB
	logger   logger.Logger
	m        *melody.Melody
	notifier notification.Service
}

type ChatServiceOptions struct {
	DB       *gorm.DB
	Logger   logger.Logger
	Melody   *melody.Melody
	Notifier notification.Service
}

func NewChatService(opts ChatServiceOptions) *ChatService {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notification.NoopService{}
	}
	return &ChatService{
		db:       opts.DB,
		logger:   opts.Logger,
		m:        opts.Melody,
		notifier: notifier,
	}
}

// GetOrCreateConversation returns the conversation between two users,
// creating it on first contact. Participants are stored low ID first so the
// pair maps to exactly one row.
func (s *ChatService) GetOrCreateConversation(userID, otherID uint) (*models.Conversation, error) {
	if userID == otherID {
		return nil, errors.NewAppError(errors.ErrCodeValidation,
			"You cannot start a conversation with yourself", nil)
	}
	low, high := userID, otherID
	if low > high {
		low, high = high, low
	}

	var conversation models.Conversation
	err := s.db.Where("user1_id = ? AND user2_id = ?", low, high).First(&conversation).Error
	if err == nil {
		return &conversation, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load conversation", err)
	}

	var other models.User
	if err := s.db.First(&other, otherID).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeUserNotFound, "User not found", err)
	}

	conversation = models.Conversation{User1ID: low, User2ID: high}
	if err := s.db.Create(&conversation).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to create conversation", err)
	}
	return &conversation, nil
}

// SessionKeys builds the key set a fresh websocket session is tagged with
// so broadcast filters can route frames.
func SessionKeys(userID uint, kind, group string) map[string]interface{} {
	return map[string]interface{}{
		SessionKeyID:     uuid.NewString(),
		SessionKeyUserID: userID,
		SessionKeyKind:   kind,
		SessionKeyGroup:  group,
	}
}

// HandleMessage persists an incoming chat frame, echoes it to every session
// in the conversation group and pings the counterparty's notifications.
func (s *ChatService) HandleMessage(session *melody.Session, data []byte) {
	userID, ok := sessionUserID(session)
	if !ok {
		return
	}

	var envelope dto.ChatEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		s.logger.Error("chat frame from user %d rejected: %v", userID, err)
		return
	}
	if envelope.Message == "" {
		return
	}

	var conversation models.Conversation
	if err := s.db.First(&conversation, envelope.ConversationID).Error; err != nil {
		s.logger.Error("chat to unknown conversation %d: %v", envelope.ConversationID, err)
		return
	}
	if !conversation.HasParticipant(userID) {
		s.logger.Error("user %d is not in conversation %d", userID, conversation.ID)
		return
	}

	var sender models.User
	if err := s.db.First(&sender, userID).Error; err != nil {
		return
	}

	message := models.ChatMessage{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Content:        envelope.Message,
	}
	if err := s.db.Create(&message).Error; err != nil {
		s.logger.Error("persist chat message failed: %v", err)
		return
	}

	s.broadcastToGroup(conversation.GroupName(), dto.ChatBroadcast{
		Message:        envelope.Message,
		SenderID:       userID,
		SenderUsername: sender.Username,
	})

	recipient := conversation.OtherParticipant(userID)
	if err := s.notifier.Notify(recipient,
		fmt.Sprintf("New message from %s", sender.Username),
		fmt.Sprintf("/chat/%d", conversation.ID)); err != nil {
		s.logger.Error("chat notification to user %d failed: %v", recipient, err)
	}
}

func (s *ChatService) broadcastToGroup(group string, frame interface{}) {
	payload, err := json.Marshal(frame)
	if err != nil {
		s.logger.Error("marshal chat broadcast failed: %v", err)
		return
	}
	if err := s.m.BroadcastFilter(payload, func(session *melody.Session) bool {
		value, ok := session.Get(SessionKeyGroup)
		return ok && value == group
	}); err != nil {
		s.logger.Error("broadcast to %s failed: %v", group, err)
	}
}

// ConversationForUser loads a conversation and checks the user belongs to it
func (s *ChatService) ConversationForUser(conversationID, userID uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.db.First(&conversation, conversationID).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBNotFound, "Conversation not found", err)
	}
	if !conversation.HasParticipant(userID) {
		return nil, errors.NewAppError(errors.ErrCodeUnauthorized,
			"You are not part of this conversation", nil)
	}
	return &conversation, nil
}

// GetConversationMessages returns the history of a conversation the user
// participates in, oldest first.
func (s *ChatService) GetConversationMessages(conversationID, userID uint) ([]dto.ChatMessageResponse, error) {
	if _, err := s.ConversationForUser(conversationID, userID); err != nil {
		return nil, err
	}

	var messages []models.ChatMessage
	if err := s.db.Where("conversation_id = ?", conversationID).
		Order("timestamp ASC").Find(&messages).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load messages", err)
	}

	out := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, dto.ChatMessageResponse{
			SenderID:  message.SenderID,
			Content:   message.Content,
			Timestamp: message.Timestamp,
		})
	}
	return out, nil
}

// GetUserConversations lists the user's open conversations
func (s *ChatService) GetUserConversations(userID uint) ([]dto.ConversationResponse, error) {
	var conversations []models.Conversation
	if err := s.db.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Find(&conversations).Error; err != nil {
		return nil, errors.NewAppError(errors.ErrCodeDBError, "Failed to load conversations", err)
	}

	out := make([]dto.ConversationResponse, 0, len(conversations))
	for i := range conversations {
		out = append(out, dto.ConversationResponse{
			ConversationID:   conversations[i].ID,
			ConversationName: conversations[i].GroupName(),
		})
	}
	return out, nil
}

func sessionUserID(session *melody.Session) (uint, bool) {
	value, ok := session.Get(SessionKeyUserID)
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
