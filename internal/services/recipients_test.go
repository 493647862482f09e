package services

import (
	"context"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
)

func Test_StaticRecipients_UseDefaultSettings(t *testing.T) {
	recipients, err := testStaticRecipients().UsersInterestedIn(context.Background(), "MIT")

	require.NoError(t, err)
	require.Len(t, recipients, 2)
	assert.Equal(t, models.DefaultNotificationSettings(), recipients[0].Settings)
}

func Test_ChainedUsers_GetByID(t *testing.T) {
	dbUsers := &mockUsers{}
	dbUsers.On("GetByID", mock.Anything, "42").Return(&models.User{ID: "42", Email: "a@example.com"}, nil)
	dbUsers.On("GetByID", mock.Anything, "9").Return(nil, errors.Wrap(models.ErrNotFound, "user"))
	dbUsers.On("GetByID", mock.Anything, "broken").Return(nil, errors.New("database is locked"))

	users := NewChainedUsers(testStaticRecipients(), dbUsers)
	ctx := context.Background()

	static, err := users.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "student1@example.com", static.Email)

	stored, err := users.GetByID(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", stored.Email)

	_, err = users.GetByID(ctx, "9")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = users.GetByID(ctx, "broken")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrNotFound)
}
