package models

import "time"

type User struct {
	ID          string `gorm:"primaryKey"`
	Email       string `gorm:"uniqueIndex;not null"`
	FirstName   string
	LastName    string
	Preferences *UserPreferences `gorm:"serializer:json"`
	CreatedAt   time.Time
}

// Settings falls back to the defaults when the user has no stored preferences.
func (u User) Settings() NotificationSettings {
	if u.Preferences == nil {
		return DefaultNotificationSettings()
	}
	return u.Preferences.NotificationSettings
}

type SavedUniversity struct {
	ID             int    `gorm:"primaryKey"`
	UserID         string `gorm:"index;not null"`
	UniversityName string `gorm:"index;not null"`
	Notes          string
	SavedAt        time.Time `gorm:"autoCreateTime"`
}

// Recipient is a user who should hear about a university.
type Recipient struct {
	ID       string
	Email    string
	Settings NotificationSettings
}
