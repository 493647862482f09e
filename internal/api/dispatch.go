package api

import (
	"fmt"
	"github.com/labstack/echo/v4"
	"net/http"
	"time"
)

type dispatchAPI struct {
	reminders remindersRunner
	sync      syncRunner
}

func registerDispatchAPI(g *echo.Group, reminders remindersRunner, sync syncRunner) {
	api := dispatchAPI{reminders: reminders, sync: sync}

	g.POST("/send-deadline-reminders", api.sendDeadlineReminders)
	g.POST("/scrape-universities", api.scrapeUniversities)
}

func (api *dispatchAPI) sendDeadlineReminders(ctx echo.Context) error {
	result, err := api.reminders.Run(ctx.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, failure("Failed to send deadline reminders")).
			SetInternal(err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Processed %d deadline reminders", result.UpcomingDeadlines),
		"data": echo.Map{
			"upcomingDeadlines":     result.UpcomingDeadlines,
			"notificationsRecorded": result.NotificationsRecorded,
			"emailsSent":            result.EmailsSent,
			"emailsFailed":          result.EmailsFailed,
			"processedAt":           result.ProcessedAt.UTC().Format(time.RFC3339),
		},
	})
}

func (api *dispatchAPI) scrapeUniversities(ctx echo.Context) error {
	if api.sync == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, failure("University catalog is not configured"))
	}

	result, err := api.sync.Run(ctx.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, failure("Failed to scrape universities")).
			SetInternal(err)
	}

	return ctx.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": fmt.Sprintf("Successfully scraped and updated %d universities", result.TotalUniversities),
		"data": echo.Map{
			"totalUniversities": result.TotalUniversities,
			"newAdmissions":     result.NewAdmissions,
			"added":             result.Added,
			"updated":           result.Updated,
			"failed":            result.Failed,
			"lastUpdated":       result.LastUpdated.UTC().Format(time.RFC3339),
		},
	})
}
