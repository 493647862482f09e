package repositories

import (
	"context"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_SavedUniversities_UsersInterestedIn(t *testing.T) {
	dbCtx := newTestDbContext(t)
	users := NewUsersRepository(dbCtx.DB)
	saved := NewSavedUniversitiesRepository(dbCtx.DB)
	ctx := context.Background()

	first, err := users.Add(ctx, models.User{ID: "1", Email: "student1@example.com"})
	require.NoError(t, err)
	second, err := users.Add(ctx, models.User{ID: "2", Email: "student2@example.com"})
	require.NoError(t, err)

	_, err = saved.Save(ctx, first.ID, "MIT", "")
	require.NoError(t, err)
	_, err = saved.Save(ctx, second.ID, "MIT", "dream school")
	require.NoError(t, err)
	_, err = saved.Save(ctx, second.ID, "ETH Zurich", "")
	require.NoError(t, err)
	_, err = saved.Save(ctx, second.ID, "ETH Zurich", "")
	assert.Error(t, err)

	recipients, err := saved.UsersInterestedIn(ctx, "MIT")
	require.NoError(t, err)
	assert.Equal(t, []models.Recipient{
		{ID: "1", Email: "student1@example.com", Settings: models.DefaultNotificationSettings()},
		{ID: "2", Email: "student2@example.com", Settings: models.DefaultNotificationSettings()},
	}, recipients)

	none, err := saved.UsersInterestedIn(ctx, "Harvard University")
	require.NoError(t, err)
	assert.Empty(t, none)

	list, err := saved.GetByUser(ctx, second.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func Test_Users_GetByID(t *testing.T) {
	users := NewUsersRepository(newTestDbContext(t).DB)
	ctx := context.Background()

	created, err := users.Add(ctx, models.User{Email: "a@example.com", FirstName: "Ada"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	byID, err := users.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.FirstName)

	_, err = users.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func Test_SavedUniversities_UsersInterestedIn_CarriesStoredSettings(t *testing.T) {
	dbCtx := newTestDbContext(t)
	users := NewUsersRepository(dbCtx.DB)
	saved := NewSavedUniversitiesRepository(dbCtx.DB)
	ctx := context.Background()

	optedOut := models.DefaultPreferences()
	optedOut.NotificationSettings.DeadlineReminders = false

	_, err := users.Add(ctx, models.User{ID: "1", Email: "student1@example.com"})
	require.NoError(t, err)
	_, err = users.Add(ctx, models.User{ID: "2", Email: "student2@example.com", Preferences: &optedOut})
	require.NoError(t, err)

	for _, id := range []string{"1", "2"} {
		_, err = saved.Save(ctx, id, "MIT", "")
		require.NoError(t, err)
	}

	recipients, err := saved.UsersInterestedIn(ctx, "MIT")
	require.NoError(t, err)
	require.Len(t, recipients, 2)
	assert.True(t, recipients[0].Settings.Wants(models.TypeDeadline))
	assert.False(t, recipients[1].Settings.Wants(models.TypeDeadline))
	assert.True(t, recipients[1].Settings.Wants(models.TypeNewAdmission))
}

func Test_Users_UpdatePreferences(t *testing.T) {
	users := NewUsersRepository(newTestDbContext(t).DB)
	ctx := context.Background()

	_, err := users.Add(ctx, models.User{ID: "1", Email: "student1@example.com"})
	require.NoError(t, err)

	preferences := models.DefaultPreferences()
	preferences.Countries = []string{"Switzerland"}
	preferences.NotificationSettings.Scholarships = false
	preferences.NotificationSettings.EmailFrequency = models.FrequencyWeekly
	require.NoError(t, users.UpdatePreferences(ctx, "1", preferences))

	user, err := users.GetByID(ctx, "1")
	require.NoError(t, err)
	require.NotNil(t, user.Preferences)
	assert.Equal(t, preferences, *user.Preferences)
	assert.False(t, user.Settings().Scholarships)

	err = users.UpdatePreferences(ctx, "missing", preferences)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
