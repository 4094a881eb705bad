// internal/core/ports/errors.go
package ports

import (
	"errors"
	"fmt"

	"github.com/stockline/stockline-go/internal/core/domain"
)

// ErrNotFound is returned when the backend reports a missing entity.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// IsServerError reports whether err is a 5xx backend response.
func IsServerError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}

// IsNetworkError reports whether err never produced a backend response,
// e.g. a timeout or connection failure.
func IsNetworkError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *APIError
	return !errors.As(err, &apiErr) && !errors.Is(err, ErrNotFound)
}

// SaveFailedMessage is the single user-facing message surfaced when a
// create/update fails. The form stays open and populated for retry.
func SaveFailedMessage(e domain.Entity) string {
	return fmt.Sprintf("Failed to save %s. Please try again.", e.Label())
}

// LoadFailedMessage is the inline message shown when a collection fetch
// fails; the previously displayed page is kept.
func LoadFailedMessage(e domain.Entity) string {
	return fmt.Sprintf("Failed to load %ss. Please try again.", e.Label())
}
