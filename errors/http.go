package errors

import (
	"errors"
	"net/http"
)

// StatusCode maps a classified error onto the HTTP status returned to the caller.
// Client input faults become 400, lookup misses 404, everything else 500.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidPayload), errors.Is(err, ErrInvalidPostID), errors.Is(err, ErrMissingRouteParam):
		return http.StatusBadRequest
	case errors.Is(err, ErrPostNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
