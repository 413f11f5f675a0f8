package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Envelope is the uniform JSON body shared by every endpoint:
// {success, data?, message?, errors?}.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// OK writes a 200 success envelope.
func OK(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Data: data})
}

// Created writes a 201 success envelope.
func Created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, Envelope{Success: true, Data: data})
}

// Message writes a success envelope carrying only a message.
func Message(c echo.Context, msg string) error {
	return c.JSON(http.StatusOK, Envelope{Success: true, Message: msg})
}

// Error writes a failure envelope with the given status.
func Error(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Message: msg})
}

// ValidationFailed writes a 400 failure envelope with field-level errors.
func ValidationFailed(c echo.Context, errs interface{}) error {
	return c.JSON(http.StatusBadRequest, Envelope{Success: false, Errors: errs})
}
