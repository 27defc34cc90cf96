package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/feedwire/feed-service/internal/api/middleware"
)

// ctxUserID extracts the user id stamped by the access gate and performs a
// fast-fail check before any service call: an empty id means the gate did not
// run or did not authenticate, and no domain operation may proceed.
func ctxUserID(c echo.Context) (string, error) {
	userID, _ := c.Get(middleware.KeyUserID).(string)
	if userID == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, nil
}
