package operr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessage(t *testing.T) {
	err := New(NotFound, "locate dialog", "dialog/window not found")
	want := "locate dialog: dialog/window not found"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := Wrap(OperationFailed, "click", "input synthesis failed", errors.New("boom"))
	want = "click: input synthesis failed: boom"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		err    error
		want   Kind
		wantOK bool
	}{
		{New(NotFound, "op", "reason"), NotFound, true},
		{New(InvalidInput, "op", "reason"), InvalidInput, true},
		{fmt.Errorf("outer: %w", New(Timeout, "op", "reason")), Timeout, true},
		{errors.New("plain"), 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := KindOf(tt.err)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("KindOf(%v) = (%v, %v), want (%v, %v)", tt.err, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(NotFound, "op", "gone")) {
		t.Error("IsNotFound should accept a NotFound error")
	}
	if IsNotFound(New(Timeout, "op", "slow")) {
		t.Error("IsNotFound should reject a Timeout error")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("IsNotFound should reject an untyped error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := Wrap(OperationFailed, "op", "failed", cause)
	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}
