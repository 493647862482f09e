package repositories

import (
	"fmt"
	"github.com/glebarez/sqlite"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Error),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	entities := []struct {
		name  string
		value any
	}{
		{"User", models.User{}},
		{"SavedUniversity", models.SavedUniversity{}},
		{"Notification", models.Notification{}},
		{"University", models.University{}},
	}

	for _, entity := range entities {
		if err := c.DB.AutoMigrate(entity.value); err != nil {
			return fmt.Errorf("failed to migrate %s entity: %w", entity.name, err)
		}
	}

	if err := c.DB.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_saved_user_university " +
		"ON saved_universities (user_id, university_name);").Error; err != nil {
		return fmt.Errorf("failed to create saved university index: %w", err)
	}

	if err := c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_user_created " +
		"ON notifications (user_id, created_at DESC);").Error; err != nil {
		return fmt.Errorf("failed to create notification index: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
