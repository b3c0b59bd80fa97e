package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name    string
		err     *NotFoundError
		wantMsg string
	}{
		{"with ID", &NotFoundError{Resource: "book", ID: "Hezekiah"}, "book not found: Hezekiah"},
		{"without ID", &NotFoundError{Resource: "passage"}, "passage not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrNotFound) {
				t.Errorf("expected %v to wrap ErrNotFound", tt.err)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		cause := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "MT.txt", Err: cause}
		if got := err.Unwrap(); got != cause {
			t.Errorf("Unwrap() = %v, want %v", got, cause)
		}
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		wantMsg string
	}{
		{"field and value", NewValidation("condense_type", "paragraph", "unknown object type"), `invalid condense_type "paragraph": unknown object type`},
		{"field only", NewValidation("version", "", "must not be empty"), "invalid version: must not be empty"},
		{"message only", &ValidationError{Message: "bad"}, "invalid input: bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Error("expected ValidationError to wrap ErrInvalidInput")
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ParseError
		wantMsg string
	}{
		{"with path and line", NewParse("wordline", "MT.txt", 12, "missing reference"), "failed to parse wordline MT.txt line 12: missing reference"},
		{"without line", NewParse("osis", "nt.xml", 0, "no verses"), "failed to parse osis nt.xml: no verses"},
		{"bare", NewParse("passage", "", 0, "empty"), "failed to parse passage: empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Error("expected ParseError to wrap ErrInvalidInput")
			}
		})
	}
}

func TestIOError(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := NewIO("read", "/tmp/MT.txt", cause)
	if got, want := err.Error(), "failed to read /tmp/MT.txt: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, cause) {
		t.Error("expected IOError to unwrap to its cause")
	}

	noPath := &IOError{Operation: "write", Err: cause}
	if got, want := noPath.Error(), "failed to write: permission denied"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupported("source format", ".pdf")
	if got, want := err.Error(), "unsupported source format: .pdf"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrUnsupported) {
		t.Error("expected UnsupportedError to wrap ErrUnsupported")
	}
	if got := (&UnsupportedError{Feature: "xz"}).Error(); got != "unsupported xz" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if Wrapf(nil, "context %d", 1) != nil {
		t.Error("Wrapf(nil) should return nil")
	}

	base := NewNotFound("node", "42")
	wrapped := Wrapf(base, "render %s", "pretty")
	if got, want := wrapped.Error(), "render pretty: node not found: 42"; got != want {
		t.Errorf("Wrapf() = %q, want %q", got, want)
	}
	if !Is(wrapped, ErrNotFound) {
		t.Error("wrapped error should still match ErrNotFound")
	}

	var nf *NotFoundError
	if !As(Wrap(base, "lookup"), &nf) || nf.ID != "42" {
		t.Errorf("As() failed to extract NotFoundError, got %+v", nf)
	}
}
