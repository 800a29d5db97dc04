package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "error with cause",
			err: &Error{
				Type:    ErrExternalTool,
				Message: "kubectl failed",
				Cause:   errors.New("exit status 1"),
			},
			want: "external_tool: kubectl failed: exit status 1",
		},
		{
			name: "error without cause",
			err: &Error{
				Type:    ErrKeyNotFound,
				Message: "key foo not found in secret bar",
				Cause:   nil,
			},
			want: "key_not_found: key foo not found in secret bar",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.want {
				t.Errorf("Error.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := &Error{
		Type:    ErrInternal,
		Message: "test message",
		Cause:   cause,
	}

	if got := err.Unwrap(); got != cause {
		t.Errorf("Error.Unwrap() = %v, want %v", got, cause)
	}

	errNoCause := &Error{
		Type:    ErrInternal,
		Message: "test message",
		Cause:   nil,
	}

	if got := errNoCause.Unwrap(); got != nil {
		t.Errorf("Error.Unwrap() = %v, want nil", got)
	}
}

func TestNewError(t *testing.T) {
	cause := errors.New("underlying error")
	err := NewError(ErrInvalidArgument, "test message", cause)

	if err.Type != ErrInvalidArgument {
		t.Errorf("NewError().Type = %v, want %v", err.Type, ErrInvalidArgument)
	}
	if err.Message != "test message" {
		t.Errorf("NewError().Message = %v, want %v", err.Message, "test message")
	}
	if err.Cause != cause {
		t.Errorf("NewError().Cause = %v, want %v", err.Cause, cause)
	}
}

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
		want  bool
	}{
		{"external tool", NewExternalToolError("m", nil), IsExternalTool, true},
		{"key not found", NewKeyNotFoundError("m", nil), IsKeyNotFound, true},
		{"usage", NewUsageError("m", nil), IsUsage, true},
		{"invalid argument", NewInvalidArgumentError("m", nil), IsInvalidArgument, true},
		{"internal", NewInternalError("m", nil), IsInternal, true},
		{"mismatched type", NewUsageError("m", nil), IsKeyNotFound, false},
		{"plain error", errors.New("plain"), IsExternalTool, false},
		{"wrapped error", fmt.Errorf("context: %w", NewKeyNotFoundError("m", nil)), IsKeyNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.check(tt.err); got != tt.want {
				t.Errorf("predicate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsKnown(t *testing.T) {
	if !IsKnown(NewExternalToolError("m", nil)) {
		t.Error("IsKnown() = false for taxonomy error, want true")
	}
	if !IsKnown(fmt.Errorf("wrapped: %w", NewUsageError("m", nil))) {
		t.Error("IsKnown() = false for wrapped taxonomy error, want true")
	}
	if IsKnown(errors.New("plain")) {
		t.Error("IsKnown() = true for plain error, want false")
	}
}
