package errors

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
)

// Error is a business error carrying the HTTP status it should be reported with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return e.Message
}

// Is matches on status and message so wrapped copies of a sentinel compare equal.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Status == t.Status && e.Message == t.Message
}

var (
	ErrInvalidRequest      = New("invalid request", http.StatusBadRequest)
	ErrInvalidParameter    = New("invalid parameter", http.StatusBadRequest)
	ErrURLForbidden        = New("you are not allowed to access this resource", http.StatusForbidden)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrInvalidCredentials  = New("invalid email or password", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	ErrTooManyRequests     = New("too many requests", http.StatusTooManyRequests)
)

// GetUniqueContraintError turns a duplicate key error into a conflict naming the column.
func GetUniqueContraintError(err error) *Error {
	msg := err.Error()
	if !strings.Contains(msg, "duplicate key") && !strings.Contains(msg, "already exists") {
		return ErrInternalServerError
	}
	field := "record"
	if i := strings.Index(msg, "Key ("); i >= 0 {
		rest := msg[i+len("Key ("):]
		if j := strings.Index(rest, ")"); j >= 0 {
			field = rest[:j]
		}
	}
	return New(fmt.Sprintf("%s already exists", field), http.StatusConflict)
}

// ErrorHandler is the gin-rate-limit callback for rejected requests.
func ErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message":   "too many requests, try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
		"data":      nil,
		"errors":    ErrTooManyRequests.Message,
		"status":    http.StatusText(http.StatusTooManyRequests),
		"timestamp": time.Now().Format("2006-01-02 15:04:05"),
	})
}
