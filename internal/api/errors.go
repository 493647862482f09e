package api

import (
	"github.com/labstack/echo/v4"
	"github.com/maxaizer/uninotify/internal/logger"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	errUserIDRequired      = echo.NewHTTPError(http.StatusBadRequest, "User ID is required")
	errMissingFields       = echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	errInvalidBody         = echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	errNotificationMissing = echo.NewHTTPError(http.StatusNotFound, "Notification not found")
	errUserMissing         = echo.NewHTTPError(http.StatusNotFound, "User not found")
)

func failure(message string) echo.Map {
	return echo.Map{"success": false, "error": message}
}

// appHTTPErrorHandler renders every error as JSON. String messages become {"error": ...},
// map messages are sent as they are. Server errors are logged with their cause.
func appHTTPErrorHandler(err error, ctx echo.Context) {
	code := http.StatusInternalServerError
	var message any = http.StatusText(http.StatusInternalServerError)

	if httpErr, ok := err.(*echo.HTTPError); ok {
		code = httpErr.Code
		message = httpErr.Message
		if httpErr.Internal != nil {
			err = httpErr.Internal
		}
	}

	if code >= http.StatusInternalServerError {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHTTP).
			Errorf("%s %s failed: %v", ctx.Request().Method, ctx.Request().URL.Path, err)
	}

	if m, ok := message.(string); ok {
		message = echo.Map{"error": m}
	}

	if ctx.Response().Committed {
		return
	}
	if ctx.Request().Method == http.MethodHead {
		err = ctx.NoContent(code)
	} else {
		err = ctx.JSON(code, message)
	}
	if err != nil {
		log.Errorf("can't write error response: %v", err)
	}
}
