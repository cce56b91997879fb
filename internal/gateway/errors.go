package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/alexanderramin/pinboard/internal/domain"
	"github.com/alexanderramin/pinboard/internal/repository"
)

var (
	// ErrUnavailable indicates the pinboard server could not be reached.
	ErrUnavailable = errors.New("pinboard server unavailable")

	// ErrRejected indicates the server refused a malformed request.
	ErrRejected = errors.New("request rejected")

	ErrCommitterClosed = errors.New("committer closed")
	ErrQueueFull       = errors.New("commit queue full")
)

// StatusError is a non-2xx reply from the server. It unwraps to the
// matching local sentinel so callers can use errors.Is either way.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pinboard server returned %d: %s", e.Code, e.Message)
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusNotFound:
		return repository.ErrNotFound
	case http.StatusLocked:
		return domain.ErrNoteLocked
	case http.StatusConflict:
		return repository.ErrConflict
	case http.StatusBadRequest:
		return ErrRejected
	default:
		return nil
	}
}
