package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatting(t *testing.T) {
	plain := New(CodeNotFound, "address not found")
	assert.Equal(t, "NOT_FOUND: address not found", plain.Error())

	wrapped := Wrap(fmt.Errorf("connection refused"), CodeTransport, "request failed")
	assert.Equal(t, "TRANSPORT_ERROR: request failed (caused by: connection refused)", wrapped.Error())
}

func TestUnwrapPreservesCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Internal("snapshot write failed", cause)

	assert.ErrorIs(t, err, cause)
}

func TestConstructorsSetCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		code string
	}{
		{"validation", Validation("bad payload", nil), CodeValidation},
		{"invalid input", InvalidInput("empty code"), CodeInvalidInput},
		{"transport", Transport("boom", nil), CodeTransport},
		{"unauthorized", Unauthorized("sign in"), CodeUnauthorized},
		{"not found", NotFound("coupon"), CodeNotFound},
		{"conflict", Conflict("already running"), CodeConflict},
		{"internal", Internal("oops", nil), CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("busy")
	wrapped := fmt.Errorf("outer: %w", appErr)

	got := AsAppError(wrapped)
	assert.Equal(t, CodeConflict, got.Code)

	fallback := AsAppError(errors.New("plain"))
	assert.Equal(t, CodeInternal, fallback.Code)
}

func TestIsAppError(t *testing.T) {
	assert.True(t, IsAppError(Validation("x", nil)))
	assert.False(t, IsAppError(errors.New("plain")))
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		expected string
	}{
		{"app error message wins", Validation("code expired", nil), "default", "code expired"},
		{"wrapped app error found", fmt.Errorf("outer: %w", Transport("server said no", nil)), "default", "server said no"},
		{"plain error text used", errors.New("dial tcp: refused"), "default", "dial tcp: refused"},
		{"nil error falls back", nil, "default", "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Message(tt.err, tt.fallback))
		})
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("incomplete", nil).WithDetails(map[string]any{"fields": []string{"date"}})
	assert.Equal(t, []string{"date"}, err.Details["fields"])
}
