package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownNodeType, "unknown node type: %s", "Volcano")

	if err.Code != ErrCodeUnknownNodeType {
		t.Errorf("Code = %q, want %q", err.Code, ErrCodeUnknownNodeType)
	}
	if err.Message != "unknown node type: Volcano" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause = %v, want nil", err.Cause)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(ErrCodeStoreUnavailable, cause, "failed to persist %s", "river-valley")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped error should match cause via errors.Is")
	}
	want := "STORE_UNAVAILABLE: failed to persist river-valley: connection refused"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"MatchingCode", New(ErrCodeTemplateNotFound, "no such template"), ErrCodeTemplateNotFound, true},
		{"DifferentCode", New(ErrCodeTemplateNotFound, "no such template"), ErrCodeUnknownNodeType, false},
		{"PlainError", stderrors.New("plain"), ErrCodeInternal, false},
		{"WrappedInFmt", fmt.Errorf("outer: %w", New(ErrCodeDuplicateNodeID, "id 183 reused")), ErrCodeDuplicateNodeID, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeInvalidMode, "bad mode")); got != ErrCodeInvalidMode {
		t.Errorf("GetCode = %q, want %q", got, ErrCodeInvalidMode)
	}
	if got := GetCode(stderrors.New("plain")); got != "" {
		t.Errorf("GetCode = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeInvalidBlueprint, "missing node block")); got != "missing node block" {
		t.Errorf("UserMessage = %q", got)
	}
	if got := UserMessage(stderrors.New("plain")); got != "plain" {
		t.Errorf("UserMessage = %q", got)
	}
}
