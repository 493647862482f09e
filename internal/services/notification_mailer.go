package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/uninotify/internal/clients/email"
	"github.com/maxaizer/uninotify/internal/domain/events"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/maxaizer/uninotify/internal/logger"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"time"
)

type userDirectory interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// NotificationMailer emails the owner of every notification created through the service,
// unless the owner turned that type of email off. Deadline notifications are skipped: the
// reminder batch mails those itself.
type NotificationMailer struct {
	bus          EventBus.Bus
	users        userDirectory
	universities universitySnapshot
	sender       emailSender
	timeout      time.Duration
}

func NewNotificationMailer(bus EventBus.Bus, users userDirectory, universities universitySnapshot,
	sender emailSender) (*NotificationMailer, error) {

	m := &NotificationMailer{
		bus:          bus,
		users:        users,
		universities: universities,
		sender:       sender,
		timeout:      30 * time.Second,
	}
	if err := bus.SubscribeAsync(events.NotificationCreatedTopic, m.onNotificationCreated, false); err != nil {
		return nil, err
	}
	return m, nil
}

// Stop unsubscribes and waits for mails already in flight.
func (m *NotificationMailer) Stop() {
	_ = m.bus.Unsubscribe(events.NotificationCreatedTopic, m.onNotificationCreated)
	m.bus.WaitAsync()
}

func (m *NotificationMailer) onNotificationCreated(event events.NotificationCreated) {
	notification := event.Notification
	if notification.Type == models.TypeDeadline {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	user, err := m.users.GetByID(ctx, notification.UserID)
	if errors.Is(err, models.ErrNotFound) {
		log.Warnf("notification %s belongs to unknown user %s, not mailing it", notification.ID, notification.UserID)
		return
	}
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("can't find user %s for notification %s: %v", notification.UserID, notification.ID, err)
		return
	}

	if !user.Settings().Wants(notification.Type) {
		log.Debugf("user %s turned off %s emails, notification %s stays in-app", user.ID, notification.Type, notification.ID)
		return
	}

	kind, data := m.compose(ctx, notification)
	if !m.sender.Send(ctx, kind, user.Email, data) {
		log.Warnf("notification %s was not mailed to user %s", notification.ID, user.ID)
	}
}

func (m *NotificationMailer) compose(ctx context.Context, notification models.Notification) (email.TemplateKind, email.Data) {
	data := email.Data{
		UniversityName: notification.UniversityName,
		Title:          notification.Title,
		Details:        notification.Message,
	}

	switch notification.Type {
	case models.TypeNewAdmission:
		data.Programs = m.programsOf(ctx, notification.UniversityName)
		return email.TemplateNewAdmission, data
	case models.TypeScholarship:
		return email.TemplateScholarship, data
	case models.TypeUpdate, models.TypeDeadline:
		return email.TemplateGeneric, data
	}
	return email.TemplateGeneric, data
}

func (m *NotificationMailer) programsOf(ctx context.Context, universityName string) []string {
	universities, err := m.universities.GetAll(ctx)
	if err != nil {
		log.Warnf("can't load programs of %s: %v", universityName, err)
		return nil
	}
	university, found := lo.Find(universities, func(u models.University) bool { return u.Name == universityName })
	if !found {
		return nil
	}
	return university.Programs
}
