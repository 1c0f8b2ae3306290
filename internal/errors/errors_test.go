package errors

import (
	"fmt"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}

	err := fmt.Errorf("storage not loaded")
	if got, want := Format(err), "Error: storage not loaded"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("failed to initialize logging: %v", fmt.Errorf("disk full"))
	want := "Error: failed to initialize logging: disk full"
	if got != want {
		t.Errorf("Formatf() = %q, want %q", got, want)
	}
}
