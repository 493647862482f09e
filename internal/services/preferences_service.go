package services

import (
	"context"
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/samber/lo"
	"strings"
)

var ErrUserNotFound = wrapNotFound("user")

type NotificationSettingsRequest struct {
	DeadlineReminders bool   `json:"deadlineReminders"`
	NewAdmissions     bool   `json:"newAdmissions"`
	Scholarships      bool   `json:"scholarships"`
	EmailFrequency    string `json:"emailFrequency" validate:"omitempty,oneof=immediate daily weekly"`
}

// UpdatePreferencesRequest replaces the stored preferences as a whole.
type UpdatePreferencesRequest struct {
	Countries            []string                    `json:"countries"`
	Programs             []string                    `json:"programs"`
	MaxTuition           int                         `json:"maxTuition" validate:"gte=0"`
	Currency             string                      `json:"currency" validate:"omitempty,len=3"`
	NotificationSettings NotificationSettingsRequest `json:"notificationSettings"`
}

type preferencesStore interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePreferences(ctx context.Context, id string, preferences models.UserPreferences) error
}

type PreferencesService struct {
	users    preferencesStore
	validate *validator.Validate
}

func NewPreferencesService(users preferencesStore) *PreferencesService {
	return &PreferencesService{users: users, validate: newRequestValidator()}
}

// Get returns the defaults for users who never saved preferences.
func (s *PreferencesService) Get(ctx context.Context, userID string) (models.UserPreferences, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.UserPreferences{}, &ValidationError{Fields: map[string]string{"userId": reasonRequired}}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return models.UserPreferences{}, s.mapStoreError("get preferences", err)
	}
	if user.Preferences == nil {
		return models.DefaultPreferences(), nil
	}
	return *user.Preferences, nil
}

func (s *PreferencesService) Update(ctx context.Context, userID string,
	request UpdatePreferencesRequest) (models.UserPreferences, error) {

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return models.UserPreferences{}, &ValidationError{Fields: map[string]string{"userId": reasonRequired}}
	}
	if err := validateRequest(s.validate, request); err != nil {
		return models.UserPreferences{}, err
	}

	frequency := models.FrequencyImmediate
	if request.NotificationSettings.EmailFrequency != "" {
		frequency = models.EmailFrequency(request.NotificationSettings.EmailFrequency)
	}
	currency := strings.ToUpper(request.Currency)
	if currency == "" {
		currency = "USD"
	}

	preferences := models.UserPreferences{
		Countries:  normalizeList(request.Countries),
		Programs:   normalizeList(request.Programs),
		MaxTuition: request.MaxTuition,
		Currency:   currency,
		NotificationSettings: models.NotificationSettings{
			DeadlineReminders: request.NotificationSettings.DeadlineReminders,
			NewAdmissions:     request.NotificationSettings.NewAdmissions,
			Scholarships:      request.NotificationSettings.Scholarships,
			EmailFrequency:    frequency,
		},
	}

	if err := s.users.UpdatePreferences(ctx, userID, preferences); err != nil {
		return models.UserPreferences{}, s.mapStoreError("update preferences", err)
	}
	return preferences, nil
}

func (s *PreferencesService) mapStoreError(op string, err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return ErrUserNotFound
	}
	return &PersistenceError{Op: op, Err: err}
}

func normalizeList(values []string) []string {
	trimmed := lo.Map(values, func(v string, _ int) string { return strings.TrimSpace(v) })
	return lo.Uniq(lo.Compact(trimmed))
}
