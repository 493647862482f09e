package api

import (
	"errors"
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/uninotify/internal/services"
	"net/http"
)

type preferencesAPI struct {
	svc preferencesService
}

func registerPreferencesAPI(g *echo.Group, svc preferencesService) {
	api := preferencesAPI{svc: svc}

	g.GET("/preferences", api.get)
	g.PUT("/preferences", api.update)
}

func (api *preferencesAPI) get(ctx echo.Context) error {
	id := userID(ctx)
	if id == "" {
		return errUserIDRequired
	}

	preferences, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return errUserMissing
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch preferences").SetInternal(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "preferences": preferences})
}

func (api *preferencesAPI) update(ctx echo.Context) error {
	id := userID(ctx)
	if id == "" {
		return errUserIDRequired
	}

	var request services.UpdatePreferencesRequest
	if err := ctx.Bind(&request); err != nil {
		return errInvalidBody
	}

	preferences, err := api.svc.Update(ctx.Request().Context(), id, request)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			return echo.NewHTTPError(http.StatusBadRequest, echo.Map{
				"error":  "Invalid preferences",
				"fields": validationErr.Fields,
			})
		case errors.Is(err, services.ErrUserNotFound):
			return errUserMissing
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update preferences").SetInternal(err)
	}
	return ctx.JSON(http.StatusOK, echo.Map{"success": true, "preferences": preferences})
}
