package services

import (
	"context"
	"github.com/maxaizer/uninotify/internal/config"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// StaticRecipients announces every university to the same fixed list of users.
type StaticRecipients struct {
	recipients []models.Recipient
}

func NewStaticRecipients(configured []config.StaticRecipient) *StaticRecipients {
	return &StaticRecipients{recipients: lo.Map(configured, func(r config.StaticRecipient, _ int) models.Recipient {
		return models.Recipient{ID: r.ID, Email: r.Email, Settings: models.DefaultNotificationSettings()}
	})}
}

func (s *StaticRecipients) UsersInterestedIn(_ context.Context, _ string) ([]models.Recipient, error) {
	return append([]models.Recipient(nil), s.recipients...), nil
}

// GetByID lets configured recipients stand in for users that have no database row.
func (s *StaticRecipients) GetByID(_ context.Context, id string) (*models.User, error) {
	recipient, found := lo.Find(s.recipients, func(r models.Recipient) bool { return r.ID == id })
	if !found {
		return nil, errors.Wrapf(models.ErrNotFound, "static recipient %q", id)
	}
	return &models.User{ID: recipient.ID, Email: recipient.Email}, nil
}

// ChainedUsers asks each directory in turn and returns the first user found.
type ChainedUsers struct {
	directories []userDirectory
}

func NewChainedUsers(directories ...userDirectory) *ChainedUsers {
	return &ChainedUsers{directories: directories}
}

func (c *ChainedUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, directory := range c.directories {
		user, err := directory.GetByID(ctx, id)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
	}
	return nil, errors.Wrapf(models.ErrNotFound, "user %q", id)
}
