package services

import (
	"context"
	"fmt"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/uninotify/internal/domain/events"
	"github.com/maxaizer/uninotify/internal/domain/models"
	log "github.com/sirupsen/logrus"
	"strings"
	"time"
)

type notificationCreator interface {
	Create(ctx context.Context, request CreateNotificationRequest) (models.Notification, error)
}

// AdmissionAnnouncer turns an opened admission into a new_admission notification for every
// interested user. The notifications are then mailed like any other created notification.
type AdmissionAnnouncer struct {
	bus           EventBus.Bus
	recipients    RecipientResolver
	notifications notificationCreator
	timeout       time.Duration
}

func NewAdmissionAnnouncer(bus EventBus.Bus, recipients RecipientResolver,
	notifications notificationCreator) (*AdmissionAnnouncer, error) {

	a := &AdmissionAnnouncer{bus: bus, recipients: recipients, notifications: notifications, timeout: time.Minute}
	if err := bus.SubscribeAsync(events.AdmissionOpenedTopic, a.onAdmissionOpened, false); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *AdmissionAnnouncer) Stop() {
	_ = a.bus.Unsubscribe(events.AdmissionOpenedTopic, a.onAdmissionOpened)
	a.bus.WaitAsync()
}

func (a *AdmissionAnnouncer) onAdmissionOpened(event events.AdmissionOpened) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	university := event.University
	recipients, err := a.recipients.UsersInterestedIn(ctx, university.Name)
	if err != nil {
		log.Errorf("can't resolve recipients for opened admission at %s: %v", university.Name, err)
		return
	}

	message := fmt.Sprintf("%s has opened applications", university.Name)
	if len(university.Programs) > 0 {
		message += " for " + strings.Join(university.Programs, ", ")
	}

	for _, recipient := range recipients {
		_, err := a.notifications.Create(ctx, CreateNotificationRequest{
			UserID:         recipient.ID,
			Type:           string(models.TypeNewAdmission),
			Title:          "New Admission Opening",
			Message:        message,
			UniversityName: university.Name,
			Priority:       string(models.PriorityMedium),
		})
		if err != nil {
			log.Errorf("can't announce opened admission at %s to user %s: %v", university.Name, recipient.ID, err)
		}
	}
}
