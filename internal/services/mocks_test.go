package services

import (
	"context"
	"github.com/maxaizer/uninotify/internal/clients/email"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/stretchr/testify/mock"
)

type mockUniversities struct {
	mock.Mock
}

func (m *mockUniversities) GetAll(ctx context.Context) ([]models.University, error) {
	args := m.Called(ctx)
	universities, _ := args.Get(0).([]models.University)
	return universities, args.Error(1)
}

func (m *mockUniversities) Add(ctx context.Context, university models.University) error {
	return m.Called(ctx, university).Error(0)
}

func (m *mockUniversities) Update(ctx context.Context, name string, update models.UniversityUpdate) error {
	return m.Called(ctx, name, update).Error(0)
}

type mockRecipients struct {
	mock.Mock
}

func (m *mockRecipients) UsersInterestedIn(ctx context.Context, universityName string) ([]models.Recipient, error) {
	args := m.Called(ctx, universityName)
	recipients, _ := args.Get(0).([]models.Recipient)
	return recipients, args.Error(1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, kind email.TemplateKind, address string, data email.Data) bool {
	return m.Called(ctx, kind, address, data).Bool(0)
}

type mockNotifications struct {
	mock.Mock
}

func (m *mockNotifications) Create(ctx context.Context, notification models.Notification) (models.Notification, error) {
	args := m.Called(ctx, notification)
	if f, ok := args.Get(0).(func(models.Notification) models.Notification); ok {
		return f(notification), args.Error(1)
	}
	created, _ := args.Get(0).(models.Notification)
	return created, args.Error(1)
}

func (m *mockNotifications) GetByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	notifications, _ := args.Get(0).([]models.Notification)
	return notifications, args.Error(1)
}

func (m *mockNotifications) MarkAsRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockNotifications) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockUsers struct {
	mock.Mock
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUsers) UpdatePreferences(ctx context.Context, id string, preferences models.UserPreferences) error {
	return m.Called(ctx, id, preferences).Error(0)
}

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Load(ctx context.Context) ([]models.University, error) {
	args := m.Called(ctx)
	universities, _ := args.Get(0).([]models.University)
	return universities, args.Error(1)
}

// echoCreated mimics the store: it returns the notification with an id assigned.
func echoCreated(n models.Notification) models.Notification {
	n.ID = "generated-" + n.UserID
	return n
}
