package services

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/uninotify/internal/domain/events"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/maxaizer/uninotify/internal/logger"
	"github.com/maxaizer/uninotify/internal/metrics"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"time"
)

type catalogSource interface {
	Load(ctx context.Context) ([]models.University, error)
}

type universityStore interface {
	GetAll(ctx context.Context) ([]models.University, error)
	Add(ctx context.Context, university models.University) error
	Update(ctx context.Context, name string, update models.UniversityUpdate) error
}

type SyncResult struct {
	TotalUniversities int
	NewAdmissions     int
	Added             int
	Updated           int
	Failed            int
	LastUpdated       time.Time
}

// UniversitySync copies the catalog into the university store, adding absent records
// and overwriting present ones.
type UniversitySync struct {
	bus     EventBus.Bus
	catalog catalogSource
	store   universityStore
	now     func() time.Time
}

func NewUniversitySync(bus EventBus.Bus, catalog catalogSource, store universityStore) *UniversitySync {
	return &UniversitySync{bus: bus, catalog: catalog, store: store, now: time.Now}
}

func (s *UniversitySync) Run(ctx context.Context) (SyncResult, error) {
	start := time.Now()
	result := SyncResult{}

	records, err := s.catalog.Load(ctx)
	if err != nil {
		return result, errors.Wrap(err, "can't load catalog")
	}
	stored, err := s.store.GetAll(ctx)
	if err != nil {
		return result, errors.Wrap(err, "can't read stored universities")
	}
	existing := lo.KeyBy(stored, func(u models.University) string { return u.Name })

	result.TotalUniversities = len(records)
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			result.LastUpdated = s.now()
			return result, err
		}

		if record.IsOpen() {
			result.NewAdmissions++
		}

		previous, found := existing[record.Name]
		if err := s.upsert(ctx, record, found); err != nil {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
				Errorf("failed to sync university %s: %v", record.Name, err)
			result.Failed++
			continue
		}
		if found {
			result.Updated++
		} else {
			result.Added++
		}

		if record.IsOpen() && (!found || !previous.IsOpen()) {
			s.bus.Publish(events.AdmissionOpenedTopic, events.AdmissionOpened{University: record})
		}
	}

	result.LastUpdated = s.now()
	metrics.SyncDuration.Observe(time.Since(start).Seconds())
	log.Infof("university sync finished: %d total, %d added, %d updated, %d failed, %d open",
		result.TotalUniversities, result.Added, result.Updated, result.Failed, result.NewAdmissions)
	return result, nil
}

func (s *UniversitySync) upsert(ctx context.Context, record models.University, exists bool) error {
	if exists {
		return s.store.Update(ctx, record.Name, models.UpdateFrom(record))
	}
	err := s.store.Add(ctx, record)
	if errors.Is(err, models.ErrAlreadyExists) {
		return s.store.Update(ctx, record.Name, models.UpdateFrom(record))
	}
	return err
}
