package api

import (
	"context"
	"errors"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/maxaizer/uninotify/internal/domain/models"
	"github.com/maxaizer/uninotify/internal/services"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type remindersRunner interface {
	Run(ctx context.Context) (services.DispatchResult, error)
}

type syncRunner interface {
	Run(ctx context.Context) (services.SyncResult, error)
}

type notificationService interface {
	Create(ctx context.Context, request services.CreateNotificationRequest) (models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkAsRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type preferencesService interface {
	Get(ctx context.Context, userID string) (models.UserPreferences, error)
	Update(ctx context.Context, userID string, request services.UpdatePreferencesRequest) (models.UserPreferences, error)
}

type Options struct {
	Address        string
	Debug          bool
	RequestTimeout time.Duration
	DisableReqLogs bool
	Reminders      remindersRunner
	Sync           syncRunner
	Notifications  notificationService
	Preferences    preferencesService
}

type Server struct {
	opts Options
	app  *echo.Echo
}

func NewServer(opts Options) *Server {
	s := &Server{opts: opts, app: echo.New()}
	s.setup()
	return s
}

func (s *Server) setup() {
	s.app.HideBanner = true
	s.app.HidePort = true
	s.app.Debug = s.opts.Debug
	s.app.HTTPErrorHandler = appHTTPErrorHandler

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(requestLogger())
	}
	if !s.opts.Debug {
		s.app.Use(middleware.Recover())
	}
	if s.opts.RequestTimeout > 0 {
		s.app.Use(middleware.ContextTimeout(s.opts.RequestTimeout))
	}
	s.app.Use(sessionMiddleware)

	s.app.GET("/health", health)

	g := s.app.Group("/api")
	registerDispatchAPI(g, s.opts.Reminders, s.opts.Sync)
	registerNotificationAPI(g, s.opts.Notifications)
	if s.opts.Preferences != nil {
		registerPreferencesAPI(g, s.opts.Preferences)
	}
}

// Start blocks until the server is stopped.
func (s *Server) Start() error {
	log.Infof("http server listening on %s", s.opts.Address)
	if err := s.app.Start(s.opts.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "ok")
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			}).Debug("request")
			return nil
		},
	})
}
