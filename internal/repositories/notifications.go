package repositories

import (
	"context"
	"github.com/google/uuid"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"gorm.io/gorm"
	"time"
)

type Notifications struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *Notifications {
	return &Notifications{db: db}
}

// Create inserts a fresh row; id, read flag and creation time are always assigned here.
func (repo *Notifications) Create(ctx context.Context, notification models.Notification) (models.Notification, error) {
	notification.ID = uuid.NewString()
	notification.Read = false
	notification.CreatedAt = time.Now().UTC()

	if err := repo.db.WithContext(ctx).Create(&notification).Error; err != nil {
		return models.Notification{}, err
	}
	return notification, nil
}

func (repo *Notifications) GetByUser(ctx context.Context, userID string) ([]models.Notification, error) {

	notifications := make([]models.Notification, 0)
	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, rowid DESC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (repo *Notifications) MarkAsRead(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (repo *Notifications) Remove(ctx context.Context, id string) error {
	res := repo.db.WithContext(ctx).Delete(&models.Notification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrNotFound
	}
	return nil
}
