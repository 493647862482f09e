package models

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func Test_NewDeadlineNotification(t *testing.T) {
	notification := NewDeadlineNotification("1", "MIT", 5)

	assert.Equal(t, "1", notification.UserID)
	assert.Equal(t, TypeDeadline, notification.Type)
	assert.Equal(t, "Application Deadline Approaching", notification.Title)
	assert.Equal(t, "MIT application deadline is in 5 days", notification.Message)
	assert.Equal(t, "MIT", notification.UniversityName)
	assert.False(t, notification.Read)
	assert.Equal(t, PriorityMedium, notification.Priority)
	assert.Empty(t, notification.ID)
}

func Test_NewDeadlineNotification_PriorityFollowsDaysLeft(t *testing.T) {
	assert.Equal(t, PriorityHigh, NewDeadlineNotification("1", "MIT", 2).Priority)
	assert.Equal(t, PriorityMedium, NewDeadlineNotification("1", "MIT", 5).Priority)
	assert.Equal(t, PriorityLow, NewDeadlineNotification("1", "MIT", 10).Priority)
	assert.Equal(t, PriorityLow, NewDeadlineNotification("1", "MIT", 15).Priority)
}

func Test_ToNotificationType(t *testing.T) {
	for _, s := range []string{"deadline", "new_admission", "scholarship", "update"} {
		notificationType, err := ToNotificationType(s)
		assert.NoError(t, err)
		assert.Equal(t, NotificationType(s), notificationType)
	}

	_, err := ToNotificationType("promo")
	assert.Error(t, err)
}

func Test_ToPriority(t *testing.T) {
	priority, err := ToPriority("high")
	assert.NoError(t, err)
	assert.Equal(t, PriorityHigh, priority)

	_, err = ToPriority("HIGH")
	assert.Error(t, err)
}
