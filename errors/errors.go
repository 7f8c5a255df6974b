package errors

import (
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is the API error type carried through handlers and services. Status is
// the HTTP status the handler should respond with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *Error) Error() string {
	return e.Message
}

// New creates a new Error instance
func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

var (
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrForbidden           = New("forbidden", http.StatusForbidden)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrInvalidPassword     = New("invalid password", http.StatusUnauthorized)
	InActiveUserError      = New("user inactive", http.StatusUnauthorized)
)

// GetUniqueContraintError maps a database unique-violation to a conflict error,
// falling back to a generic internal error.
func GetUniqueContraintError(err error) *Error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "already in use") || strings.Contains(msg, "unique constraint") {
		return New(msg, http.StatusConflict)
	}
	return ErrInternalServerError
}

// ErrorHandler responds to rate-limited requests for gin-rate-limit.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "Too many requests. Try again in " + time.Until(info.ResetTime).String(),
		"status":  http.StatusText(http.StatusTooManyRequests),
	})
}
