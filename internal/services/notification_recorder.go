package services

import (
	"context"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/maxaizer/uninotify/internal/metrics"
)

type notificationStore interface {
	Create(ctx context.Context, notification models.Notification) (models.Notification, error)
}

// NotificationRecorder stores one deadline notification per call. It never deduplicates.
type NotificationRecorder struct {
	store notificationStore
}

func NewNotificationRecorder(store notificationStore) *NotificationRecorder {
	return &NotificationRecorder{store: store}
}

func (r *NotificationRecorder) RecordDeadline(ctx context.Context, userID, universityName string,
	daysLeft int) (models.Notification, error) {

	notification, err := r.store.Create(ctx, models.NewDeadlineNotification(userID, universityName, daysLeft))
	if err != nil {
		return models.Notification{}, &PersistenceError{Op: "record deadline notification", Err: err}
	}

	metrics.NotificationsRecordedCounter.WithLabelValues(string(models.TypeDeadline)).Inc()
	return notification, nil
}
