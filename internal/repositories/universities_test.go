package repositories

import (
	"context"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

func Test_Universities_AddGetUpdate(t *testing.T) {
	repo := NewUniversitiesRepository(newTestDbContext(t).DB)
	ctx := context.Background()
	deadline := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Add(ctx, models.University{
		Name:            "ETH Zurich",
		Country:         "Switzerland",
		Currency:        "CHF",
		Programs:        []string{"Engineering", "Physics", "Engineering"},
		Deadline:        deadline,
		AdmissionStatus: models.AdmissionClosed,
	}))
	require.NoError(t, repo.Add(ctx, models.University{Name: "MIT", Currency: "USD", Deadline: deadline}))
	assert.Error(t, repo.Add(ctx, models.University{Name: "MIT"}))

	open := models.AdmissionOpen
	require.NoError(t, repo.Update(ctx, "ETH Zurich", models.UniversityUpdate{AdmissionStatus: &open}))

	universities, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, universities, 2)
	assert.Equal(t, "ETH Zurich", universities[0].Name)
	assert.Equal(t, []string{"Engineering", "Physics"}, universities[0].Programs)
	assert.True(t, universities[0].IsOpen())
	assert.Equal(t, "Switzerland", universities[0].Country)
	assert.True(t, deadline.Equal(universities[0].Deadline))
	assert.Equal(t, "MIT", universities[1].Name)
}

func Test_Universities_UpdateUnknownReturnsNotFound(t *testing.T) {
	repo := NewUniversitiesRepository(newTestDbContext(t).DB)

	err := repo.Update(context.Background(), "Nowhere", models.UniversityUpdate{})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
