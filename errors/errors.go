package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// Error is the serializable API error returned by services. Status carries
// the HTTP code the boundary should answer with.
type Error struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

var (
	ErrNotFound            = New("not found", http.StatusNotFound)
	ErrBadRequest          = New("bad request", http.StatusBadRequest)
	ErrUnauthorized        = New("unauthorized", http.StatusUnauthorized)
	ErrInternalServerError = New("internal server error", http.StatusInternalServerError)
	InActiveUserError      = New("user inactive", http.StatusUnauthorized)
)

func New(message string, status int) *Error {
	return &Error{
		Message: message,
		Status:  status,
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("error: %s, status: %d", e.Message, e.Status)
}

// GetUniqueContraintError maps a postgres unique-violation into a 400 the
// caller can return directly.
func GetUniqueContraintError(err error) *Error {
	if strings.Contains(err.Error(), "email") {
		return New("user with this email already exists", http.StatusBadRequest)
	}
	return New("record already exists", http.StatusBadRequest)
}
