package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMapErrorToStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{ErrNotFound, http.StatusNotFound},
		{ErrUnauthorized, http.StatusUnauthorized},
		{ErrForbidden, http.StatusForbidden},
		{ErrBadRequest, http.StatusBadRequest},
		{ErrInvalidInput, http.StatusBadRequest},
		{ErrUsernameTaken, http.StatusConflict},
		{ErrRateLimitExceeded, http.StatusTooManyRequests},
		{ErrInternal, http.StatusInternalServerError},
		{errors.New("something else"), http.StatusInternalServerError},
		// Wrapped sentinels still map.
		{fmt.Errorf("loading user: %w", ErrNotFound), http.StatusNotFound},
		// AppError with an explicit code wins over the wrapped sentinel.
		{New(http.StatusTeapot, "teapot", ErrNotFound), http.StatusTeapot},
		// AppError without a code falls through to its wrapped sentinel.
		{New(0, "unknown team", ErrInvalidInput), http.StatusBadRequest},
	}
	for _, tc := range cases {
		if got := MapErrorToStatus(tc.err); got != tc.want {
			t.Errorf("MapErrorToStatus(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	err := New(0, "unknown team", ErrInvalidInput)
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("AppError should unwrap to its sentinel")
	}
	if err.Error() != ErrInvalidInput.Error() {
		t.Errorf("Error() = %q", err.Error())
	}
}
