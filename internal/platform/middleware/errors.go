package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/meditrack/meditrack/pkg/respond"
)

// ErrorHandler renders every error echo sees as the uniform response
// envelope. Unexpected errors are logged server-side and reported as a
// generic 500; the detailed message is included only in development mode.
func ErrorHandler(logger zerolog.Logger, dev bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Something went wrong!"

		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			message = fmt.Sprintf("%v", he.Message)
		} else {
			rid, _ := c.Get("request_id").(string)
			logger.Error().
				Err(err).
				Str("request_id", rid).
				Str("path", c.Request().URL.Path).
				Msg("unhandled error")
			if dev {
				message = err.Error()
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = respond.Error(c, status, message)
	}
}
