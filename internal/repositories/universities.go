package repositories

import (
	"context"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"time"
)

// Universities is the database-backed university source used when no spreadsheet is configured.
type Universities struct {
	db *gorm.DB
}

func NewUniversitiesRepository(db *gorm.DB) *Universities {
	return &Universities{db: db}
}

func (repo *Universities) GetAll(ctx context.Context) ([]models.University, error) {
	universities := make([]models.University, 0)
	if err := repo.db.WithContext(ctx).Order("rowid").Find(&universities).Error; err != nil {
		return nil, err
	}
	return universities, nil
}

func (repo *Universities) Add(ctx context.Context, university models.University) error {
	university.Programs = models.NormalizePrograms(university.Programs)
	university.LastUpdated = time.Now().UTC()

	err := repo.db.WithContext(ctx).Create(&university).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errors.Wrapf(models.ErrAlreadyExists, "university %q", university.Name)
	}
	return err
}

func (repo *Universities) Update(ctx context.Context, name string, update models.UniversityUpdate) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var university models.University
		if err := tx.First(&university, "name = ?", name).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrapf(models.ErrNotFound, "university %q", name)
			}
			return err
		}

		university = update.Apply(university)
		university.LastUpdated = time.Now().UTC()
		return tx.Save(&university).Error
	})
}
