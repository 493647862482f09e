package services

import (
	"context"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"testing"
	"time"
)

type mockRemindersRunner struct {
	mock.Mock
}

func (m *mockRemindersRunner) Run(ctx context.Context) (DispatchResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(DispatchResult), args.Error(1)
}

type mockSyncRunner struct {
	mock.Mock
}

func (m *mockSyncRunner) Run(ctx context.Context) (SyncResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(SyncResult), args.Error(1)
}

func Test_NewReminderScheduler_InvalidSpec_ShouldFail(t *testing.T) {
	_, err := NewReminderScheduler(&mockRemindersRunner{}, "every day", nil, "", time.Minute)
	assert.Error(t, err)

	_, err = NewReminderScheduler(&mockRemindersRunner{}, "0 9 * * *", &mockSyncRunner{}, "whenever", time.Minute)
	assert.Error(t, err)

	_, err = NewReminderScheduler(&mockRemindersRunner{}, "0 9 * * *", nil, "", 0)
	assert.Error(t, err)
}

func Test_ReminderScheduler_ShouldRegisterBothJobs(t *testing.T) {
	s, err := NewReminderScheduler(&mockRemindersRunner{}, "0 9 * * *", &mockSyncRunner{}, "0 6 * * *", time.Minute)
	require.NoError(t, err)

	assert.Len(t, s.cron.Entries(), 2)
}

func Test_ReminderScheduler_RunReminders_ShouldApplyTimeout(t *testing.T) {
	runner := &mockRemindersRunner{}
	runner.On("Run", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= time.Minute
	})).Return(DispatchResult{}, errors.New("boom")).Once()

	s, err := NewReminderScheduler(runner, "0 9 * * *", nil, "", time.Minute)
	require.NoError(t, err)

	s.runReminders()
	runner.AssertExpectations(t)
}

func Test_ReminderScheduler_RunSync_ShouldCallRunner(t *testing.T) {
	sync := &mockSyncRunner{}
	sync.On("Run", mock.Anything).Return(SyncResult{TotalUniversities: 10}, nil).Once()

	s, err := NewReminderScheduler(&mockRemindersRunner{}, "0 9 * * *", sync, "0 6 * * *", time.Minute)
	require.NoError(t, err)

	s.runSync()
	sync.AssertExpectations(t)
}

func Test_ReminderScheduler_PanickingJob_ShouldNotCrash(t *testing.T) {
	runner := &mockRemindersRunner{}
	runner.On("Run", mock.Anything).Panic("sheet exploded").Once()
	runner.On("Run", mock.Anything).Return(DispatchResult{}, nil).Once()

	s, err := NewReminderScheduler(runner, "0 9 * * *", nil, "", time.Minute)
	require.NoError(t, err)

	entries := s.cron.Entries()
	require.Len(t, entries, 1)

	assert.NotPanics(t, entries[0].WrappedJob.Run)
	// the next tick still runs
	entries[0].WrappedJob.Run()
	runner.AssertExpectations(t)
}
