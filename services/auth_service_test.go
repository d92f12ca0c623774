package services

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parkeasy/constants"
	"parkeasy/models"
)

type recordedNotification struct {
	userID  uint
	message string
	link    string
}

type fakeNotifier struct {
	sent []recordedNotification
	err  error
}

func (f *fakeNotifier) Notify(userID uint, message, link string) error {
	f.sent = append(f.sent, recordedNotification{userID: userID, message: message, link: link})
	return f.err
}

func (f *fakeNotifier) Broadcast(message string) error { return f.err }

func TestNotifyAdminsOfVerification(t *testing.T) {
	admins := []models.User{
		{ID: 1, Username: "root", Role: constants.RoleAdmin},
		{ID: 4, Username: "ops", Role: constants.RoleAdmin},
	}
	applicant := models.User{ID: 27, Username: "sam"}

	fake := &fakeNotifier{}
	NotifyAdminsOfVerification(admins, applicant, fake)

	require.Len(t, fake.sent, 2)
	assert.Equal(t, uint(1), fake.sent[0].userID)
	assert.Equal(t, uint(4), fake.sent[1].userID)
	for _, n := range fake.sent {
		assert.Equal(t, "sam requested account verification", n.message)
		assert.Equal(t, "/admin/verifications/27", n.link)
	}
}

func TestNotifyAdminsOfVerificationToleratesDeliveryFailure(t *testing.T) {
	admins := []models.User{{ID: 1}, {ID: 2}}
	fake := &fakeNotifier{err: stderrors.New("hub down")}

	NotifyAdminsOfVerification(admins, models.User{ID: 3, Username: "sam"}, fake)

	assert.Len(t, fake.sent, 2, "a failed delivery must not stop the fan-out")
}

func TestNotifyAdminsOfVerificationNoAdmins(t *testing.T) {
	fake := &fakeNotifier{}
	NotifyAdminsOfVerification(nil, models.User{ID: 3, Username: "sam"}, fake)
	assert.Empty(t, fake.sent)
}
