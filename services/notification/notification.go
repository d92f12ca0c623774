package notification

import (
	"encoding/json"
	"fmt"

	"github.com/olahol/melody"
	"gorm.io/gorm"

	"parkeasy/models"
)

// Service delivers notifications to users. Delivery is best effort over the
// websocket; every notification is also persisted so offline users see it on
// their next load.
type Service interface {
	Notify(userID uint, message, link string) error
	Broadcast(message string) error
}

// GroupName forms the websocket group key a user's notification sessions
// subscribe to.
func GroupName(userID uint) string {
	return fmt.Sprintf("notifications_%d", userID)
}

type frame struct {
	Message string `json:"message"`
	Link    string `json:"link,omitempty"`
}

// MelodyService pushes notification frames through a melody instance and
// stores them with GORM.
type MelodyService struct {
	db *gorm.DB
	m  *melody.Melody
}

func NewMelodyService(db *gorm.DB, m *melody.Melody) *MelodyService {
	return &MelodyService{db: db, m: m}
}

// Notify stores a notification for one user and pushes it to that user's
// open notification sessions.
func (s *MelodyService) Notify(userID uint, message, link string) error {
	record := models.Notification{
		UserID:  userID,
		Message: message,
		Link:    link,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}

	if s.m == nil {
		return nil
	}
	payload, err := json.Marshal(frame{Message: message, Link: link})
	if err != nil {
		return err
	}
	group := GroupName(userID)
	return s.m.BroadcastFilter(payload, func(session *melody.Session) bool {
		value, ok := session.Get("group")
		return ok && value == group
	})
}

// Broadcast stores a notification for every active user and pushes the frame
// to all connected notification sessions. Used for admin announcements.
func (s *MelodyService) Broadcast(message string) error {
	var userIDs []uint
	if err := s.db.Model(&models.User{}).Pluck("id", &userIDs).Error; err != nil {
		return err
	}

	records := make([]models.Notification, 0, len(userIDs))
	for _, id := range userIDs {
		records = append(records, models.Notification{UserID: id, Message: message})
	}
	if len(records) > 0 {
		if err := s.db.Create(&records).Error; err != nil {
			return err
		}
	}

	if s.m == nil {
		return nil
	}
	payload, err := json.Marshal(frame{Message: message})
	if err != nil {
		return err
	}
	return s.m.BroadcastFilter(payload, func(session *melody.Session) bool {
		value, ok := session.Get("kind")
		return ok && value == "notifications"
	})
}

// NoopService discards notifications, used in tests and background jobs that
// run without a websocket hub.
type NoopService struct{}

func (NoopService) Notify(userID uint, message, link string) error { return nil }
func (NoopService) Broadcast(message string) error                 { return nil }
