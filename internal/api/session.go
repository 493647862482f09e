package api

import (
	"github.com/labstack/echo/v4"
	"strings"
)

const (
	userIDHeader = "X-User-ID"
	sessionKey   = "session"
)

// Session is the caller identity forwarded by the frontend.
type Session struct {
	UserID string
}

func sessionMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if userID := strings.TrimSpace(ctx.Request().Header.Get(userIDHeader)); userID != "" {
			ctx.Set(sessionKey, Session{UserID: userID})
		}
		return next(ctx)
	}
}

func getSession(ctx echo.Context) (Session, bool) {
	session, ok := ctx.Get(sessionKey).(Session)
	return session, ok
}
