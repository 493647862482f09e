package api

import (
	"errors"
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/uninotify/internal/services"
	"net/http"
	"strings"
)

type notificationAPI struct {
	svc notificationService
}

func registerNotificationAPI(g *echo.Group, svc notificationService) {
	api := notificationAPI{svc: svc}

	ng := g.Group("/notifications")
	ng.GET("", api.list)
	ng.POST("", api.create)
	ng.PATCH("/:id/read", api.markAsRead)
	ng.DELETE("/:id", api.destroy)
}

// userID prefers the query parameter and falls back to the session.
func userID(ctx echo.Context) string {
	if id := strings.TrimSpace(ctx.QueryParam("userId")); id != "" {
		return id
	}
	if session, ok := getSession(ctx); ok {
		return session.UserID
	}
	return ""
}

func (api *notificationAPI) list(ctx echo.Context) error {
	id := userID(ctx)
	if id == "" {
		return errUserIDRequired
	}

	notifications, err := api.svc.ListByUser(ctx.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch notifications").SetInternal(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "notifications": notifications})
}

func (api *notificationAPI) create(ctx echo.Context) error {
	var request services.CreateNotificationRequest
	if err := ctx.Bind(&request); err != nil {
		return errInvalidBody
	}
	if request.UserID == "" {
		if session, ok := getSession(ctx); ok {
			request.UserID = session.UserID
		}
	}

	notification, err := api.svc.Create(ctx.Request().Context(), request)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.MissingOnly() {
				return errMissingFields
			}
			return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
				"error":  "Invalid notification fields",
				"fields": validationErr.Fields,
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create notification").SetInternal(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "notification": notification})
}

func (api *notificationAPI) markAsRead(ctx echo.Context) error {
	if err := api.svc.MarkAsRead(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return errNotificationMissing
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update notification").SetInternal(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}

func (api *notificationAPI) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			return errNotificationMissing
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete notification").SetInternal(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true})
}
