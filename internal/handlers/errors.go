package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"adminportal/internal/common"

	"github.com/labstack/echo/v4"
)

const internalErrorMessage = "Internal server error"

// NewHTTPErrorHandler renders every error through the common envelope. Causes
// of 5xx responses are logged in full; in production only a generic message
// reaches the client.
func NewHTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	logger := slog.Default().With("module", "http")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message, fields := classify(err)
		if status >= http.StatusInternalServerError {
			logger.Error("request failed",
				"method", c.Request().Method,
				"path", c.Path(),
				"status", status,
				"error", err,
			)
			if production {
				message = internalErrorMessage
			} else if message == internalErrorMessage {
				message = err.Error()
			}
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = common.SendError(c, status, message, fields)
		}
		if writeErr != nil {
			logger.Error("failed to write error response", "error", writeErr)
		}
	}
}

func classify(err error) (int, string, []common.FieldError) {
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Message, appErr.Fields
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Internal != nil {
			var inner *common.AppError
			if errors.As(httpErr.Internal, &inner) {
				return inner.Status, inner.Message, inner.Fields
			}
		}
		return httpErr.Code, httpMessage(httpErr), nil
	}

	return http.StatusInternalServerError, internalErrorMessage, nil
}

func httpMessage(err *echo.HTTPError) string {
	if msg, ok := err.Message.(string); ok {
		return msg
	}
	if err.Message != nil {
		return fmt.Sprint(err.Message)
	}
	return http.StatusText(err.Code)
}

// bindError is returned when the request body cannot be decoded.
var bindError = echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
