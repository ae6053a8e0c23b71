package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{NewValidation("bad input"), http.StatusBadRequest},
		{NewAuthentication("no token"), http.StatusUnauthorized},
		{NewAuthorization("not yours"), http.StatusForbidden},
		{NewNotFound("missing"), http.StatusNotFound},
		{NewConflict("already done"), http.StatusConflict},
		{NewInternal("boom", nil), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := tt.err.StatusCode(); got != tt.want {
			t.Errorf("%s: StatusCode() = %d, want %d", tt.err.Code(), got, tt.want)
		}
	}
}

func TestIsMatchesOnType(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", NewConflict("status mismatch"))
	if !stderrors.Is(err, NewConflict("")) {
		t.Error("conflict not matched through wrapping")
	}
	if stderrors.Is(err, NewNotFound("")) {
		t.Error("conflict matched a not-found target")
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("driver: bad connection")
	err := NewInternal("query failed", cause)
	if !stderrors.Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
}
