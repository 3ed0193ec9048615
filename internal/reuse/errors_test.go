package reuse

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := Errorf(KindInput, "document %d not found", 7)
	if KindOf(err) != KindInput {
		t.Errorf("kind = %v, want input", KindOf(err))
	}

	wrapped := fmt.Errorf("loading stream: %w", err)
	if KindOf(wrapped) != KindInput {
		t.Errorf("wrapped kind = %v, want input", KindOf(wrapped))
	}

	if KindOf(errors.New("plain")) != KindUnknown {
		t.Error("plain error reported a kind")
	}
	if KindOf(nil) != KindUnknown {
		t.Error("nil error reported a kind")
	}
}

func TestWrapError(t *testing.T) {
	if WrapError(KindOutput, nil) != nil {
		t.Error("wrapping nil produced an error")
	}

	base := errors.New("disk full")
	err := WrapError(KindOutput, base)
	if !errors.Is(err, base) {
		t.Error("wrapped error lost its cause")
	}
	if KindOf(err) != KindOutput {
		t.Errorf("kind = %v, want output", KindOf(err))
	}
}
