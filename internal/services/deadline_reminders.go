package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/uninotify/internal/clients/email"
	"github.com/maxaizer/uninotify/internal/domain/events"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/maxaizer/uninotify/internal/logger"
	"github.com/maxaizer/uninotify/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"time"
)

type universitySnapshot interface {
	GetAll(ctx context.Context) ([]models.University, error)
}

type RecipientResolver interface {
	UsersInterestedIn(ctx context.Context, universityName string) ([]models.Recipient, error)
}

type deadlineRecorder interface {
	RecordDeadline(ctx context.Context, userID, universityName string, daysLeft int) (models.Notification, error)
}

type emailSender interface {
	Send(ctx context.Context, kind email.TemplateKind, address string, data email.Data) bool
}

type DispatchResult struct {
	UpcomingDeadlines     int
	NotificationsRecorded int
	EmailsSent            int
	EmailsFailed          int
	ProcessedAt           time.Time
}

// DeadlineReminders runs one reminder batch: every university whose deadline is exactly at a
// reminder window gets a stored notification and an email for each interested user who
// has not turned deadline reminders off.
type DeadlineReminders struct {
	bus          EventBus.Bus
	universities universitySnapshot
	recipients   RecipientResolver
	recorder     deadlineRecorder
	sender       emailSender
	windows      []int
	now          func() time.Time
}

func NewDeadlineReminders(bus EventBus.Bus, universities universitySnapshot, recipients RecipientResolver,
	recorder deadlineRecorder, sender emailSender) *DeadlineReminders {

	return &DeadlineReminders{
		bus:          bus,
		universities: universities,
		recipients:   recipients,
		recorder:     recorder,
		sender:       sender,
		windows:      models.ReminderWindows,
		now:          time.Now,
	}
}

// Run reads one snapshot of the universities and processes it sequentially. Only a failed
// snapshot or recipient lookup aborts the batch; a cancelled context stops it between
// recipients and the partial result is returned with the context error.
func (d *DeadlineReminders) Run(ctx context.Context) (DispatchResult, error) {
	start := time.Now()
	now := d.now()
	result := DispatchResult{}

	universities, err := d.universities.GetAll(ctx)
	if err != nil {
		return result, errors.Wrap(err, "can't read universities")
	}

	due := models.SelectDue(universities, d.windows, now)
	result.UpcomingDeadlines = len(due)
	log.Infof("found %d universities with upcoming deadlines", len(due))

	for _, item := range due {
		if err := d.remind(ctx, item, &result); err != nil {
			result.ProcessedAt = d.now()
			return result, err
		}
	}

	result.ProcessedAt = d.now()
	metrics.DispatchDuration.Observe(time.Since(start).Seconds())
	metrics.UpcomingDeadlinesGauge.Set(float64(result.UpcomingDeadlines))

	d.bus.Publish(events.DeadlineRemindersDispatchedTopic, events.DeadlineRemindersDispatched{
		UpcomingDeadlines:     result.UpcomingDeadlines,
		NotificationsRecorded: result.NotificationsRecorded,
		EmailsSent:            result.EmailsSent,
		EmailsFailed:          result.EmailsFailed,
		ProcessedAt:           result.ProcessedAt,
	})

	log.Infof("deadline reminders processed: %d universities, %d notifications, %d emails sent, %d failed",
		result.UpcomingDeadlines, result.NotificationsRecorded, result.EmailsSent, result.EmailsFailed)
	return result, nil
}

func (d *DeadlineReminders) remind(ctx context.Context, item models.DueUniversity, result *DispatchResult) error {
	name := item.University.Name

	recipients, err := d.recipients.UsersInterestedIn(ctx, name)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to resolve recipients for %s: %v", name, err)
		return errors.Wrapf(err, "can't resolve recipients for %q", name)
	}

	recipients = lo.Filter(recipients, func(r models.Recipient, _ int) bool {
		return r.Settings.Wants(models.TypeDeadline)
	})

	data := email.Data{
		UniversityName: name,
		Deadline:       item.University.DeadlineString(),
		DaysLeft:       item.DaysLeft,
	}

	for _, recipient := range recipients {
		select {
		case <-ctx.Done():
			log.Infof("deadline reminders cancelled at %s", name)
			return ctx.Err()
		default:
		}

		if _, err := d.recorder.RecordDeadline(ctx, recipient.ID, name, item.DaysLeft); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to record notification for user %s: %v", recipient.ID, err)
		} else {
			result.NotificationsRecorded++
		}

		if d.sender.Send(ctx, email.TemplateDeadline, recipient.Email, data) {
			result.EmailsSent++
		} else {
			result.EmailsFailed++
		}
	}
	return nil
}
