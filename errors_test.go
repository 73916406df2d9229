package clipmap

import (
	"errors"
	"testing"
)

func TestErrorStringIncludesOpAndKind(t *testing.T) {
	err := newError(OutOfRange, "NewClipmap", nil)
	want := "clipmap: NewClipmap: OutOfRange"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorStringIncludesWrappedCause(t *testing.T) {
	cause := errors.New("boom")
	err := newError(BackendFailure, "ClipmapUpdater.Update", cause)
	if got := err.Error(); got == "" || !errors.Is(err, cause) {
		t.Fatalf("Error() = %q, Unwrap should expose cause %v", got, cause)
	}
}

func TestIsMatchesKind(t *testing.T) {
	err := newError(MissingAABB, "Terrain.InvalidateLayer", nil)
	if !Is(err, MissingAABB) {
		t.Fatal("Is(err, MissingAABB) = false, want true")
	}
	if Is(err, InvalidArgument) {
		t.Fatal("Is(err, InvalidArgument) = true, want false")
	}
}

func TestIsReturnsFalseForNonClipmapError(t *testing.T) {
	if Is(errors.New("plain error"), InvalidArgument) {
		t.Fatal("Is() matched a non-*Error error")
	}
}

func TestKindStringNames(t *testing.T) {
	cases := map[Kind]string{
		InvalidArgument:   "InvalidArgument",
		OutOfRange:        "OutOfRange",
		MissingAABB:       "MissingAABB",
		UnsupportedFormat: "UnsupportedFormat",
		NotImplemented:    "NotImplemented",
		BackendFailure:    "BackendFailure",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}
