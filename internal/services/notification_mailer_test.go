package services

import (
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/uninotify/internal/clients/email"
	"github.com/maxaizer/uninotify/internal/domain/events"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

func newTestMailer(t *testing.T, bus EventBus.Bus, users *mockUsers, universities *mockUniversities,
	sender *mockSender) *NotificationMailer {

	mailer, err := NewNotificationMailer(bus, users, universities, sender)
	require.NoError(t, err)
	return mailer
}

func Test_NotificationMailer_NewAdmission_ShouldMailProgramsToOwner(t *testing.T) {
	users := &mockUsers{}
	users.On("GetByID", mock.Anything, "1").Return(&models.User{ID: "1", Email: "student1@example.com"}, nil)

	universities := &mockUniversities{}
	universities.On("GetAll", mock.Anything).Return([]models.University{
		{Name: "ETH Zurich", Programs: []string{"Physics", "Robotics"}},
	}, nil)

	sender := &mockSender{}
	sender.On("Send", mock.Anything, email.TemplateNewAdmission, "student1@example.com", email.Data{
		UniversityName: "ETH Zurich",
		Programs:       []string{"Physics", "Robotics"},
		Title:          "New Admission Opening",
		Details:        "Applications are open",
	}).Return(true).Once()

	bus := EventBus.New()
	mailer := newTestMailer(t, bus, users, universities, sender)

	bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{Notification: models.Notification{
		ID: "n1", UserID: "1", Type: models.TypeNewAdmission, Title: "New Admission Opening",
		Message: "Applications are open", UniversityName: "ETH Zurich",
	}})
	mailer.Stop()

	sender.AssertExpectations(t)
}

func Test_NotificationMailer_Update_ShouldUseGenericTemplate(t *testing.T) {
	users := &mockUsers{}
	users.On("GetByID", mock.Anything, "2").Return(&models.User{ID: "2", Email: "student2@example.com"}, nil)

	sender := &mockSender{}
	sender.On("Send", mock.Anything, email.TemplateGeneric, "student2@example.com", mock.Anything).Return(false).Once()

	bus := EventBus.New()
	mailer := newTestMailer(t, bus, users, &mockUniversities{}, sender)

	bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{Notification: models.Notification{
		ID: "n2", UserID: "2", Type: models.TypeUpdate, Title: "Portal update", Message: "New features",
	}})
	mailer.Stop()

	sender.AssertExpectations(t)
}

func Test_NotificationMailer_Deadline_ShouldBeSkipped(t *testing.T) {
	users := &mockUsers{}
	sender := &mockSender{}

	bus := EventBus.New()
	mailer := newTestMailer(t, bus, users, &mockUniversities{}, sender)

	bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{Notification: models.Notification{
		ID: "n3", UserID: "1", Type: models.TypeDeadline,
	}})
	mailer.Stop()

	users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_NotificationMailer_UnknownUser_ShouldNotSend(t *testing.T) {
	users := &mockUsers{}
	users.On("GetByID", mock.Anything, "9").Return(nil, errors.Wrap(models.ErrNotFound, "user"))
	sender := &mockSender{}

	bus := EventBus.New()
	mailer := newTestMailer(t, bus, users, &mockUniversities{}, sender)

	bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{Notification: models.Notification{
		ID: "n4", UserID: "9", Type: models.TypeScholarship,
	}})
	mailer.Stop()

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func Test_NotificationMailer_OptedOutType_ShouldNotSend(t *testing.T) {
	preferences := models.DefaultPreferences()
	preferences.NotificationSettings.Scholarships = false

	users := &mockUsers{}
	users.On("GetByID", mock.Anything, "1").
		Return(&models.User{ID: "1", Email: "student1@example.com", Preferences: &preferences}, nil)
	sender := &mockSender{}
	sender.On("Send", mock.Anything, email.TemplateNewAdmission, "student1@example.com", mock.Anything).Return(true).Once()

	universities := &mockUniversities{}
	universities.On("GetAll", mock.Anything).Return([]models.University{}, nil)

	bus := EventBus.New()
	mailer := newTestMailer(t, bus, users, universities, sender)

	bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{Notification: models.Notification{
		ID: "n5", UserID: "1", Type: models.TypeScholarship, UniversityName: "MIT",
	}})
	bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{Notification: models.Notification{
		ID: "n6", UserID: "1", Type: models.TypeNewAdmission, UniversityName: "MIT",
	}})
	mailer.Stop()

	sender.AssertExpectations(t)
	sender.AssertNotCalled(t, "Send", mock.Anything, email.TemplateScholarship, mock.Anything, mock.Anything)
}

func Test_NotificationMailer_StaticRecipient_ShouldBeMailed(t *testing.T) {
	dbUsers := &mockUsers{}
	sender := &mockSender{}
	sender.On("Send", mock.Anything, email.TemplateGeneric, "student2@example.com", mock.Anything).Return(true).Once()

	bus := EventBus.New()
	mailer := newTestMailer(t, bus, nil, &mockUniversities{}, sender)
	mailer.users = NewChainedUsers(testStaticRecipients(), dbUsers)

	bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{Notification: models.Notification{
		ID: "n7", UserID: "2", Type: models.TypeUpdate,
	}})
	mailer.Stop()

	sender.AssertExpectations(t)
	dbUsers.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}
