package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/uninotify/internal/api"
	"github.com/maxaizer/uninotify/internal/clients/catalog"
	"github.com/maxaizer/uninotify/internal/clients/email"
	"github.com/maxaizer/uninotify/internal/clients/sheets"
	"github.com/maxaizer/uninotify/internal/config"
	"github.com/maxaizer/uninotify/internal/logger"
	"github.com/maxaizer/uninotify/internal/metrics"
	"github.com/maxaizer/uninotify/internal/repositories"
	"github.com/maxaizer/uninotify/internal/services"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
	"time"
)

func createUniversities(ctx context.Context, cfg *config.Config,
	dbContext *repositories.DbContext) *repositories.CachedUniversities {

	if !cfg.Sheets.Enabled() {
		log.Info("using database as university source")
		return repositories.NewCachedUniversities(repositories.NewUniversitiesRepository(dbContext.DB), cfg.Sheets.CacheTTL)
	}

	client, err := sheets.NewClient(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName, cfg.Sheets.CredentialsFile)
	if err != nil {
		log.Fatalf("can't create sheets client: %v", err)
	}
	if cfg.Sheets.MaxRequestsPerSecond > 0 {
		client.SetRateLimit(cfg.Sheets.MaxRequestsPerSecond)
	}

	log.Infof("using google sheet %s as university source", cfg.Sheets.SpreadsheetID)
	return repositories.NewCachedUniversities(client, cfg.Sheets.CacheTTL)
}

// createRecipients also returns the user lookup for the mailer: configured recipients have
// no database rows, so they are looked up before the users table.
func createRecipients(cfg *config.Config, users *repositories.Users,
	dbContext *repositories.DbContext) (services.RecipientResolver, *services.ChainedUsers) {

	if len(cfg.Reminders.StaticRecipients) > 0 {
		log.Infof("reminders go to %d static recipients", len(cfg.Reminders.StaticRecipients))
		static := services.NewStaticRecipients(cfg.Reminders.StaticRecipients)
		return static, services.NewChainedUsers(static, users)
	}
	return repositories.NewSavedUniversitiesRepository(dbContext.DB), services.NewChainedUsers(users)
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	metricsServer := metrics.StartMetricsServer(cfg.HTTP.MetricsAddress)

	dbContext, err := repositories.NewDbContext(cfg.DB.DSN())
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	if err = dbContext.Migrate(); err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	sender, err := email.NewSenderFromConfig(cfg.Email)
	if err != nil {
		log.Fatalf("can't create email sender: %v", err)
	}

	bus := EventBus.New()

	universities := createUniversities(ctx, cfg, dbContext)
	users := repositories.NewUsersRepository(dbContext.DB)
	recipients, mailerUsers := createRecipients(cfg, users, dbContext)
	notifications := services.NewNotificationService(bus, repositories.NewNotificationsRepository(dbContext.DB))

	reminders := services.NewDeadlineReminders(bus, universities, recipients,
		services.NewNotificationRecorder(repositories.NewNotificationsRepository(dbContext.DB)), sender)

	mailer, err := services.NewNotificationMailer(bus, mailerUsers, universities, sender)
	if err != nil {
		log.Fatalf("can't create notification mailer: %v", err)
	}
	announcer, err := services.NewAdmissionAnnouncer(bus, recipients, notifications)
	if err != nil {
		log.Fatalf("can't create admission announcer: %v", err)
	}

	var sync *services.UniversitySync
	if cfg.Catalog.File != "" {
		sync = services.NewUniversitySync(bus, catalog.NewFile(cfg.Catalog.File), universities)
	}

	var scheduler *services.ReminderScheduler
	if sync != nil {
		scheduler, err = services.NewReminderScheduler(reminders, cfg.Reminders.Cron, sync, cfg.Catalog.SyncCron,
			cfg.Reminders.RunTimeout)
	} else {
		scheduler, err = services.NewReminderScheduler(reminders, cfg.Reminders.Cron, nil, "", cfg.Reminders.RunTimeout)
	}
	if err != nil {
		log.Fatalf("can't create reminder scheduler: %v", err)
	}
	scheduler.Start()

	options := api.Options{
		Address:        cfg.HTTP.Address,
		Debug:          cfg.HTTP.Debug,
		RequestTimeout: cfg.HTTP.RequestTimeout,
		Reminders:      reminders,
		Notifications:  notifications,
		Preferences:    services.NewPreferencesService(users),
	}
	if sync != nil {
		options.Sync = sync
	}
	server := api.NewServer(options)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("http server failed: %v", err)
		}
	}()

	<-ctx.Done()

	log.Info("Shutting down services...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Errorf("can't stop http server: %v", err)
	}
	scheduler.Stop()
	announcer.Stop()
	mailer.Stop()
	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("can't stop metrics server: %v", err)
	}
	log.Info("Services stopped.")
}
