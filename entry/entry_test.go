package entry

import (
	"testing"

	"github.com/creachadair/hel/skey"
)

func TestStringNoPrefix(t *testing.T) {
	e := Entry{Name: "t1", Mode: skey.Regular, Seq: 99, Date: Date{2022, 10, 10}}
	got := e.String()
	want := "      t1 R 99 2022-10-10"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStringWithCommentAndParent(t *testing.T) {
	e := Entry{Name: "t2", Mode: skey.Regular, Seq: 99, Date: Date{2022, 10, 10}, Comment: "test", Parent: "t1"}
	got := e.String()
	want := "      t2 R 99 2022-10-10 test ^t1"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestStringWithShortPrefix(t *testing.T) {
	e := Entry{Prefix: "#W9", Name: "ableton89", Mode: skey.RegularUpcase, Seq: 99, Date: Date{2020, 12, 9}}
	got := e.String()
	want := "  #W9 ableton89 UR 99 2020-12-09"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestEqual(t *testing.T) {
	a := Entry{Name: "t1", Mode: skey.Regular, Seq: 99, Date: Date{2022, 1, 1}}
	b := a
	if !a.Equal(b) {
		t.Fatal("identical entries should be Equal")
	}
	b.Comment = "x"
	if a.Equal(b) {
		t.Fatal("differing entries should not be Equal")
	}
}

func TestParseDateNow(t *testing.T) {
	d, err := ParseDate("now")
	if err != nil {
		t.Fatal(err)
	}
	if d != Today() {
		t.Errorf("ParseDate(now) = %v, want %v", d, Today())
	}
}

func TestParseDateYMD(t *testing.T) {
	d, err := ParseDate("2022-12-03")
	if err != nil {
		t.Fatal(err)
	}
	want := Date{2022, 12, 3}
	if d != want {
		t.Errorf("ParseDate = %v, want %v", d, want)
	}
	if d.String() != "2022-12-03" {
		t.Errorf("String() = %q", d.String())
	}
}
