package bpe

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorIsSentinel(t *testing.T) {
	tok, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = tok.Decode([]Id{999999})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrUnknownId) {
		t.Errorf("errors.Is(err, ErrUnknownId) = false for %v", err)
	}

	var typed *Error
	if !errors.As(err, &typed) {
		t.Fatalf("errors.As(err, *Error) failed for %v", err)
	}
	if typed.Kind != KindUnknownId {
		t.Errorf("Kind = %q, want %q", typed.Kind, KindUnknownId)
	}
	if typed.Op != "Decode" {
		t.Errorf("Op = %q, want %q", typed.Op, "Decode")
	}
}

func TestErrorMessageIncludesOp(t *testing.T) {
	e := newErr("Train", KindInvalidInput, ErrInvalidInput, "vocab_size %d must be >= 256", 100)
	msg := e.Error()
	if !strings.Contains(msg, "Train") {
		t.Fatalf("error message %q does not include the op %q", msg, "Train")
	}
}
