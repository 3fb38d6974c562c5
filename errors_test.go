package frontier

import (
	"errors"
	"strings"
	"testing"
)

func TestStructuredErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantType ErrorType
		wantOp   string
		wantMsg  string
		checkFn  func(error) bool
	}{
		{
			name:     "No Devices Error",
			err:      ErrNoDevices,
			wantType: ErrTypeConfig,
			wantOp:   "Partition",
			wantMsg:  "no compute devices available",
			checkFn:  IsConfigError,
		},
		{
			name:     "Size Mismatch Error",
			err:      ErrSizeMismatch,
			wantType: ErrTypeConfig,
			wantOp:   "Run",
			wantMsg:  "output buffer size does not match numResults * vertexCount",
			checkFn:  IsConfigError,
		},
		{
			name:     "Nil Graph Error",
			err:      ErrNilGraph,
			wantType: ErrTypeConfig,
			wantOp:   "Run",
			wantMsg:  "graph is nil",
			checkFn:  IsConfigError,
		},
		{
			name:     "Invalid Size Error",
			err:      ErrInvalidSize,
			wantType: ErrTypeInvalidArg,
			wantOp:   "Malloc",
			wantMsg:  "size must be positive",
			checkFn:  nil,
		},
		{
			name:     "Double Free Error",
			err:      ErrDoubleFree,
			wantType: ErrTypeMemory,
			wantOp:   "Free",
			wantMsg:  "double free detected",
			checkFn:  IsMemoryError,
		},
		{
			name:     "Invalid Device Error",
			err:      ErrInvalidDevice,
			wantType: ErrTypeDevice,
			wantOp:   "NewContext",
			wantMsg:  "invalid device",
			checkFn:  IsDeviceError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e *Error
			if !errors.As(tt.err, &e) {
				t.Fatalf("error is not a *Error: %T", tt.err)
			}
			if e.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", e.Type, tt.wantType)
			}
			if e.Op != tt.wantOp {
				t.Errorf("Op = %q, want %q", e.Op, tt.wantOp)
			}
			if e.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", e.Message, tt.wantMsg)
			}
			if tt.checkFn != nil && !tt.checkFn(tt.err) {
				t.Error("Type predicate rejected its own error")
			}
		})
	}
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("worker panicked")
	wrapped := NewExecutionError("Launch", "kernel failed", cause)

	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is does not see through the wrapper")
	}

	msg := wrapped.Error()
	if !strings.Contains(msg, "Launch") {
		t.Errorf("Formatted error omits the operation: %q", msg)
	}
	if !strings.Contains(msg, "worker panicked") {
		t.Errorf("Formatted error omits the cause: %q", msg)
	}
}

func TestErrorTypeString(t *testing.T) {
	got := map[ErrorType]string{
		ErrTypeConfig:     "Configuration",
		ErrTypeMemory:     "Memory",
		ErrTypeInvalidArg: "InvalidArgument",
		ErrTypeExecution:  "Execution",
		ErrTypeDevice:     "Device",
		ErrorType(99):     "Unknown",
	}
	for typ, want := range got {
		if typ.String() != want {
			t.Errorf("ErrorType(%d).String() = %q, want %q", typ, typ.String(), want)
		}
	}
}

func TestTypePredicatesRejectForeignErrors(t *testing.T) {
	plain := errors.New("boring")
	if IsConfigError(plain) || IsMemoryError(plain) || IsDeviceError(plain) {
		t.Error("Type predicates accepted a plain error")
	}
	if IsConfigError(nil) {
		t.Error("IsConfigError accepted nil")
	}
}
