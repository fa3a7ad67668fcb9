package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rei-naissance/Huggle-Bundler/pkg/logger"
)

// ErrorHandler is the catch-all echo HTTP error handler for errors that
// escape the handlers (404s, method mismatches, panics surfaced by Recover).
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Error("unhandled request error", "path", c.Request().URL.Path, "error", err)
	}

	if err := c.JSON(code, map[string]interface{}{
		"message": message,
	}); err != nil {
		logger.Error("failed to write error response", err)
	}
}
