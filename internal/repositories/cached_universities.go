package repositories

import (
	"context"
	"github.com/maxaizer/uninotify/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
	"time"
)

type universitySource interface {
	GetAll(ctx context.Context) ([]models.University, error)
	Add(ctx context.Context, university models.University) error
	Update(ctx context.Context, name string, update models.UniversityUpdate) error
}

const snapshotKey = "universities"

// CachedUniversities keeps the last bulk snapshot for ttl and drops it on every write.
type CachedUniversities struct {
	source universitySource
	cache  *gocache.Cache
}

func NewCachedUniversities(source universitySource, ttl time.Duration) *CachedUniversities {
	return &CachedUniversities{source: source, cache: gocache.New(ttl, 2*ttl)}
}

func (c *CachedUniversities) GetAll(ctx context.Context) ([]models.University, error) {
	if value, found := c.cache.Get(snapshotKey); found {
		return value.([]models.University), nil
	}

	universities, err := c.source.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	c.cache.SetDefault(snapshotKey, universities)
	return universities, nil
}

func (c *CachedUniversities) Add(ctx context.Context, university models.University) error {
	defer c.cache.Delete(snapshotKey)
	return c.source.Add(ctx, university)
}

func (c *CachedUniversities) Update(ctx context.Context, name string, update models.UniversityUpdate) error {
	defer c.cache.Delete(snapshotKey)
	return c.source.Update(ctx, name, update)
}
