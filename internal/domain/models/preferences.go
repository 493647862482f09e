package models

import "fmt"

type EmailFrequency string

const (
	FrequencyImmediate EmailFrequency = "immediate"
	FrequencyDaily     EmailFrequency = "daily"
	FrequencyWeekly    EmailFrequency = "weekly"
)

func ToEmailFrequency(s string) (EmailFrequency, error) {
	switch EmailFrequency(s) {
	case FrequencyImmediate, FrequencyDaily, FrequencyWeekly:
		return EmailFrequency(s), nil
	}
	return "", fmt.Errorf("invalid email frequency: %q", s)
}

type NotificationSettings struct {
	DeadlineReminders bool           `json:"deadlineReminders"`
	NewAdmissions     bool           `json:"newAdmissions"`
	Scholarships      bool           `json:"scholarships"`
	EmailFrequency    EmailFrequency `json:"emailFrequency"`
}

// UserPreferences is stored as one json column on the user.
type UserPreferences struct {
	Countries            []string             `json:"countries"`
	Programs             []string             `json:"programs"`
	MaxTuition           int                  `json:"maxTuition"`
	Currency             string               `json:"currency"`
	NotificationSettings NotificationSettings `json:"notificationSettings"`
}

// DefaultNotificationSettings apply to users who never saved preferences.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		DeadlineReminders: true,
		NewAdmissions:     true,
		Scholarships:      true,
		EmailFrequency:    FrequencyImmediate,
	}
}

func DefaultPreferences() UserPreferences {
	return UserPreferences{
		Countries:            []string{},
		Programs:             []string{},
		Currency:             "USD",
		NotificationSettings: DefaultNotificationSettings(),
	}
}

// Wants reports whether a notification of the given type may be mailed. Updates are always on.
func (s NotificationSettings) Wants(notificationType NotificationType) bool {
	switch notificationType {
	case TypeDeadline:
		return s.DeadlineReminders
	case TypeNewAdmission:
		return s.NewAdmissions
	case TypeScholarship:
		return s.Scholarships
	case TypeUpdate:
		return true
	}
	return true
}
