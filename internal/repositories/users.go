package repositories

import (
	"context"
	"github.com/google/uuid"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsersRepository(db *gorm.DB) *Users {
	return &Users{db: db}
}

func (repo *Users) Add(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	err := repo.db.WithContext(ctx).Create(&user).Error
	return user, err
}

func (repo *Users) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := repo.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrapf(models.ErrNotFound, "user %q", id)
		}
		return nil, err
	}
	return &user, nil
}

func (repo *Users) UpdatePreferences(ctx context.Context, id string, preferences models.UserPreferences) error {
	result := repo.db.WithContext(ctx).
		Model(&models.User{ID: id}).
		Select("Preferences").
		Updates(models.User{Preferences: &preferences})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.Wrapf(models.ErrNotFound, "user %q", id)
	}
	return nil
}
