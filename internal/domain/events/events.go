package events

import (
	"github.com/maxaizer/uninotify/internal/domain/models"
	"time"
)

var (
	NotificationCreatedTopic         = "NotificationCreatedEvent"
	DeadlineRemindersDispatchedTopic = "DeadlineRemindersDispatchedEvent"
	AdmissionOpenedTopic             = "AdmissionOpenedEvent"
)

type NotificationCreated struct {
	Notification models.Notification
}

type DeadlineRemindersDispatched struct {
	UpcomingDeadlines     int
	NotificationsRecorded int
	EmailsSent            int
	EmailsFailed          int
	ProcessedAt           time.Time
}

type AdmissionOpened struct {
	University models.University
}
