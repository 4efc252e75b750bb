package ledger

import (
	"path/filepath"
	"testing"
)

func TestCheckAbsentWarns(t *testing.T) {
	l, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatal(err)
	}
	if l.Check("t1", "derived") {
		t.Fatal("expected Check to report absent for a fresh ledger")
	}
}

func TestMarkThenCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger")
	l, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.Mark("t1", "derived", true); err != nil {
		t.Fatal(err)
	}
	if !l.Check("t1", "derived") {
		t.Fatal("expected Check to report present after Mark(true)")
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !reloaded.Check("t1", "derived") {
		t.Fatal("mark should persist across reloads")
	}
}

func TestUnmark(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger")
	l, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	must(t, l.Mark("t1", "derived", true))
	must(t, l.Mark("t1", "derived", false))
	if l.Check("t1", "derived") {
		t.Fatal("expected Check to report absent after unmark")
	}
}

func TestHashConcatenatesWithNoSeparator(t *testing.T) {
	a := Hash("t1", "derived")
	b := Hash("t", "1derived")
	if a == b {
		t.Fatal("Hash should depend on the exact split point between name and derived")
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
