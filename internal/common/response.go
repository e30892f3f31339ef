package common

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Count   *int         `json:"count,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// SendData writes a successful response carrying data.
func SendData(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Response{Success: true, Message: message, Data: data})
}

// SendList writes a successful list response with its item count.
func SendList(c echo.Context, data interface{}, count int) error {
	return c.JSON(http.StatusOK, Response{Success: true, Data: data, Count: &count})
}

// SendMessage writes a successful response with only a message.
func SendMessage(c echo.Context, status int, message string) error {
	return c.JSON(status, Response{Success: true, Message: message})
}

// SendError writes a failure envelope.
func SendError(c echo.Context, status int, message string, fields []FieldError) error {
	return c.JSON(status, Response{Success: false, Message: message, Errors: fields})
}
