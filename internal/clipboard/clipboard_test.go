package clipboard

import (
	"errors"
	"testing"

	kerrors "github.com/zhubert/kavosh/internal/errors"
)

func withWriters(t *testing.T, ws ...func(string) error) {
	t.Helper()
	orig := writers
	writers = ws
	t.Cleanup(func() { writers = orig })
}

func TestWriteText_FirstWriterWins(t *testing.T) {
	var first, second []string
	withWriters(t,
		func(s string) error { first = append(first, s); return nil },
		func(s string) error { second = append(second, s); return nil },
	)

	if err := WriteText("https://example.com"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if len(first) != 1 || first[0] != "https://example.com" {
		t.Errorf("first writer got %v", first)
	}
	if len(second) != 0 {
		t.Error("second writer should not run after a success")
	}
}

func TestWriteText_FallsBack(t *testing.T) {
	var got string
	withWriters(t,
		func(string) error { return errors.New("no display") },
		func(s string) error { got = s; return nil },
	)

	if err := WriteText("منبع"); err != nil {
		t.Fatalf("WriteText() error = %v", err)
	}
	if got != "منبع" {
		t.Errorf("fallback writer got %q", got)
	}
}

func TestWriteText_AllFail(t *testing.T) {
	withWriters(t,
		func(string) error { return errors.New("a") },
		func(string) error { return errors.New("b") },
	)

	err := WriteText("x")
	if !kerrors.Is(err, kerrors.KindClipboard) {
		t.Errorf("error = %v, want KindClipboard", err)
	}
}
