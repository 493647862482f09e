package models

import (
	"fmt"
	"time"
)

type NotificationType string

const (
	TypeDeadline     NotificationType = "deadline"
	TypeNewAdmission NotificationType = "new_admission"
	TypeScholarship  NotificationType = "scholarship"
	TypeUpdate       NotificationType = "update"
)

func ToNotificationType(s string) (NotificationType, error) {
	switch NotificationType(s) {
	case TypeDeadline, TypeNewAdmission, TypeScholarship, TypeUpdate:
		return NotificationType(s), nil
	}
	return "", fmt.Errorf("invalid notification type: %q", s)
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func ToPriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), nil
	}
	return "", fmt.Errorf("invalid priority: %q", s)
}

type Notification struct {
	ID             string           `json:"id" gorm:"primaryKey"`
	UserID         string           `json:"userId" gorm:"index;not null"`
	Type           NotificationType `json:"type" gorm:"not null"`
	Title          string           `json:"title" gorm:"not null"`
	Message        string           `json:"message" gorm:"not null"`
	UniversityName string           `json:"universityName" gorm:"not null"`
	Read           bool             `json:"read" gorm:"default:false"`
	Priority       Priority         `json:"priority" gorm:"not null"`
	CreatedAt      time.Time        `json:"createdAt"`
}

func NewDeadlineNotification(userID, universityName string, daysLeft int) Notification {
	return Notification{
		UserID:         userID,
		Type:           TypeDeadline,
		Title:          "Application Deadline Approaching",
		Message:        fmt.Sprintf("%s application deadline is in %d days", universityName, daysLeft),
		UniversityName: universityName,
		Read:           false,
		Priority:       Classify(daysLeft).Priority(),
	}
}
