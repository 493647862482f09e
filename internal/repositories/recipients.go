package repositories

import (
	"context"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// SavedUniversities resolves the users interested in a university from their saved lists.
type SavedUniversities struct {
	db *gorm.DB
}

func NewSavedUniversitiesRepository(db *gorm.DB) *SavedUniversities {
	return &SavedUniversities{db: db}
}

func (repo *SavedUniversities) Save(ctx context.Context, userID, universityName, notes string) (models.SavedUniversity, error) {
	saved := models.SavedUniversity{UserID: userID, UniversityName: universityName, Notes: notes}
	err := repo.db.WithContext(ctx).Create(&saved).Error
	return saved, err
}

func (repo *SavedUniversities) GetByUser(ctx context.Context, userID string) ([]models.SavedUniversity, error) {
	saved := make([]models.SavedUniversity, 0)
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

// UsersInterestedIn returns the users who saved the university, each with their notification settings.
func (repo *SavedUniversities) UsersInterestedIn(ctx context.Context, universityName string) ([]models.Recipient, error) {
	users := make([]models.User, 0)
	err := repo.db.WithContext(ctx).
		Joins("JOIN saved_universities ON saved_universities.user_id = users.id").
		Where("saved_universities.university_name = ?", universityName).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(user models.User, _ int) models.Recipient {
		return models.Recipient{ID: user.ID, Email: user.Email, Settings: user.Settings()}
	}), nil
}

