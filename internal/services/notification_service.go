package services

import (
	"context"
	"errors"
	"github.com/asaskevich/EventBus"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/uninotify/internal/domain/events"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/maxaizer/uninotify/internal/metrics"
	"reflect"
	"strings"
)

const reasonRequired = "is required"

type CreateNotificationRequest struct {
	UserID         string `json:"userId" validate:"required"`
	Type           string `json:"type" validate:"required,oneof=deadline new_admission scholarship update"`
	Title          string `json:"title" validate:"required"`
	Message        string `json:"message" validate:"required"`
	UniversityName string `json:"universityName" validate:"required"`
	Priority       string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

type notificationRepository interface {
	Create(ctx context.Context, notification models.Notification) (models.Notification, error)
	GetByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	Remove(ctx context.Context, id string) error
}

type NotificationService struct {
	bus           EventBus.Bus
	notifications notificationRepository
	validate      *validator.Validate
}

func NewNotificationService(bus EventBus.Bus, notifications notificationRepository) *NotificationService {
	return &NotificationService{bus: bus, notifications: notifications, validate: newRequestValidator()}
}

// newRequestValidator reports fields by their json names.
func newRequestValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		return strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	})
	return validate
}

// Create validates the request before touching the store. Priority defaults to medium.
func (s *NotificationService) Create(ctx context.Context, request CreateNotificationRequest) (models.Notification, error) {
	request.UserID = strings.TrimSpace(request.UserID)
	request.Title = strings.TrimSpace(request.Title)
	request.Message = strings.TrimSpace(request.Message)
	request.UniversityName = strings.TrimSpace(request.UniversityName)

	if err := validateRequest(s.validate, request); err != nil {
		return models.Notification{}, err
	}

	notificationType, err := models.ToNotificationType(request.Type)
	if err != nil {
		return models.Notification{}, &ValidationError{Fields: map[string]string{"type": err.Error()}}
	}
	priority := models.PriorityMedium
	if request.Priority != "" {
		if priority, err = models.ToPriority(request.Priority); err != nil {
			return models.Notification{}, &ValidationError{Fields: map[string]string{"priority": err.Error()}}
		}
	}

	notification, err := s.notifications.Create(ctx, models.Notification{
		UserID:         request.UserID,
		Type:           notificationType,
		Title:          request.Title,
		Message:        request.Message,
		UniversityName: request.UniversityName,
		Priority:       priority,
	})
	if err != nil {
		return models.Notification{}, &PersistenceError{Op: "create notification", Err: err}
	}

	metrics.NotificationsRecordedCounter.WithLabelValues(string(notification.Type)).Inc()
	s.bus.Publish(events.NotificationCreatedTopic, events.NotificationCreated{Notification: notification})
	return notification, nil
}

func validateRequest(validate *validator.Validate, request any) error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	fields := make(map[string]string, len(fieldErrors))
	for _, fieldErr := range fieldErrors {
		switch fieldErr.Tag() {
		case "required":
			fields[fieldErr.Field()] = reasonRequired
		case "oneof":
			fields[fieldErr.Field()] = "must be one of: " + fieldErr.Param()
		case "gte":
			fields[fieldErr.Field()] = "must be at least " + fieldErr.Param()
		default:
			fields[fieldErr.Field()] = "is invalid"
		}
	}
	return &ValidationError{Fields: fields}
}

func (s *NotificationService) ListByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, &ValidationError{Fields: map[string]string{"userId": reasonRequired}}
	}

	notifications, err := s.notifications.GetByUser(ctx, userID)
	if err != nil {
		return nil, &PersistenceError{Op: "list notifications", Err: err}
	}
	return notifications, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id string) error {
	return s.mapStoreError("mark notification as read", s.notifications.MarkAsRead(ctx, id))
}

func (s *NotificationService) Delete(ctx context.Context, id string) error {
	return s.mapStoreError("delete notification", s.notifications.Remove(ctx, id))
}

func (s *NotificationService) mapStoreError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, models.ErrNotFound):
		return ErrNotificationNotFound
	default:
		return &PersistenceError{Op: op, Err: err}
	}
}
