package httpx

import (
	"net/http"

	"github.com/sundayezeilo/repohub/internal/errx"
)

// ErrorKindToStatus maps errx.Kind to HTTP status codes.
func ErrorKindToStatus(kind errx.Kind) int {
	switch kind {
	case errx.Invalid:
		return http.StatusBadRequest
	case errx.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ErrorKindToMessage returns the generic client message for a kind.
// Handlers may send a more specific message for client errors.
func ErrorKindToMessage(kind errx.Kind) string {
	switch kind {
	case errx.Invalid:
		return "invalid request"
	case errx.NotFound:
		return "resource not found"
	default:
		return "an unexpected error occurred"
	}
}
