package services

import (
	"context"
	"fmt"
	"github.com/maxaizer/uninotify/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"time"
)

type remindersRunner interface {
	Run(ctx context.Context) (DispatchResult, error)
}

type syncRunner interface {
	Run(ctx context.Context) (SyncResult, error)
}

// ReminderScheduler triggers the reminder batch and the catalog sync on cron schedules.
// A tick is skipped while the previous run of the same job is still going.
type ReminderScheduler struct {
	cron       *cron.Cron
	reminders  remindersRunner
	sync       syncRunner
	runTimeout time.Duration
}

func NewReminderScheduler(reminders remindersRunner, remindersSpec string, sync syncRunner, syncSpec string,
	runTimeout time.Duration) (*ReminderScheduler, error) {

	if runTimeout <= 0 {
		return nil, errors.New("run timeout must be greater than zero")
	}

	s := &ReminderScheduler{
		// Recover sits inside the skip wrapper so a panicking run still releases the job
		cron: cron.New(cron.WithLogger(cronLogger{}), cron.WithChain(
			cron.SkipIfStillRunning(cronLogger{}),
			cron.Recover(cronLogger{}),
		)),
		reminders:  reminders,
		sync:       sync,
		runTimeout: runTimeout,
	}

	if _, err := s.cron.AddFunc(remindersSpec, s.runReminders); err != nil {
		return nil, errors.Wrapf(err, "invalid reminders cron %q", remindersSpec)
	}
	if sync != nil && syncSpec != "" {
		if _, err := s.cron.AddFunc(syncSpec, s.runSync); err != nil {
			return nil, errors.Wrapf(err, "invalid catalog sync cron %q", syncSpec)
		}
	}
	return s, nil
}

// cronLogger routes cron's own messages, recovered job panics included, to logrus.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.WithFields(cronFields(keysAndValues)).Debug(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.WithFields(cronFields(keysAndValues)).
		WithField(logger.ErrorTypeField, logger.ErrorTypeScheduler).
		Errorf("%s: %v", msg, err)
}

func cronFields(keysAndValues []interface{}) log.Fields {
	fields := log.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}

func (s *ReminderScheduler) Start() {
	s.cron.Start()
	log.Infof("reminder scheduler started with %d jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish.
func (s *ReminderScheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("reminder scheduler stopped")
}

func (s *ReminderScheduler) runReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	log.Infof("running deadline reminders at %v", time.Now())
	if _, err := s.reminders.Run(ctx); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeScheduler).Errorf("deadline reminders failed: %v", err)
	}
}

func (s *ReminderScheduler) runSync() {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	log.Infof("running university sync at %v", time.Now())
	if _, err := s.sync.Run(ctx); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeScheduler).Errorf("university sync failed: %v", err)
	}
}
