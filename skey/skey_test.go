package skey

import (
	"crypto/sha1"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDeriveByteLayout(t *testing.T) {
	// The digest must be SHA-1 over "seq name master" exactly, space
	// separated, with no extra framing.
	got := Derive("test1", 99, "my secret")
	want := sha1.Sum([]byte(fmt.Sprintf("%d %s %s", 99, "test1", "my secret")))
	if got.k8 != [8]byte(want[:8]) {
		t.Fatalf("K8 = %x, want %x", got.k8, want[:8])
	}
	if got.r12 != [12]byte(want[8:20]) {
		t.Fatalf("R12 = %x, want %x", got.r12, want[8:20])
	}
}

func TestDeriveIsDeterministic(t *testing.T) {
	a := Derive("test1", 99, "my secret")
	b := Derive("test1", 99, "my secret")
	if a != b {
		t.Fatalf("Derive is not deterministic: %+v vs %+v", a, b)
	}
	c := Derive("test1", 100, "my secret")
	if a == c {
		t.Fatal("Derive ignored seq")
	}
}

func TestHexEncoding(t *testing.T) {
	d := Derive("test1", 99, "my secret")
	got := Encode(Hex, d, "", 0)
	want := fmt.Sprintf("%x", d.k8)
	if got != want {
		t.Errorf("Hex = %q, want %q", got, want)
	}
	gotUp := Encode(HexUpcase, d, "", 0)
	if gotUp != fmt.Sprintf("%X", d.k8) {
		t.Errorf("HexUpcase = %q, want %q", gotUp, fmt.Sprintf("%X", d.k8))
	}
}

func TestDecimalEncoding(t *testing.T) {
	d := Derive("test1", 99, "my secret")
	idx := d.indices()
	got := Encode(Decimal, d, "", 0)
	want := fmt.Sprintf("%d %d %d %d %d %d", idx[0], idx[1], idx[2], idx[3], idx[4], idx[5])
	if got != want {
		t.Errorf("Decimal = %q, want %q", got, want)
	}
}

func TestPrefixAndLengthTruncation(t *testing.T) {
	d := Derive("a", 99, "my secret")
	full := Encode(Hex, d, "#Q3a", 0)
	got := Encode(Hex, d, "#Q3a", 6)
	if len(got) != 6 {
		t.Fatalf("length = %d, want 6", len(got))
	}
	if got != full[:6] {
		t.Errorf("truncated %q is not a prefix of full %q", got, full)
	}
}

func TestLengthSetForcesEmptySeparator(t *testing.T) {
	d := Derive("test1", 99, "my secret")
	got := Encode(Regular, d, "", 10)
	if len(got) != 10 {
		t.Fatalf("length = %d, want 10", len(got))
	}
	// With no length, Regular mode joins with a space; forcing a length
	// joins the words with no separator, so the result is the first 10
	// runes of the words concatenated.
	words := d.Words()
	joined := words[0] + words[1] + words[2] + words[3] + words[4] + words[5]
	if got != joined[:10] {
		t.Errorf("Encode(Regular, length 10) = %q, want %q", got, joined[:10])
	}
}

func TestCamelHasNoSeparatorOrSpaces(t *testing.T) {
	d := Derive("test1", 99, "my secret")
	got := Encode(NoSpaceCamel, d, "", 0)
	for _, r := range got {
		if r == ' ' || r == '-' {
			t.Fatalf("Camel output contains separator rune: %q", got)
		}
	}
	words := d.Words()
	if len(got) != len(words[0])+len(words[1])+len(words[2])+len(words[3])+len(words[4])+len(words[5]) {
		t.Fatalf("Camel length mismatch: %q vs words %v", got, words)
	}
}

func TestWordsAreSixDictionaryEntries(t *testing.T) {
	d := Derive("test1", 99, "my secret")
	words := d.Words()
	inDict := make(map[string]bool, len(dictionary))
	for _, w := range dictionary {
		inDict[w] = true
	}
	for _, w := range words {
		if len(w) == 0 {
			t.Fatal("empty word in output")
		}
		if !inDict[w] {
			t.Errorf("word %q is not in the dictionary", w)
		}
	}
	if diff := cmp.Diff(6, len(words)); diff != "" {
		t.Errorf("word count mismatch (-want +got):\n%s", diff)
	}
}

func TestBase64NoPadding(t *testing.T) {
	d := Derive("test1", 99, "my secret")
	got := Encode(Base64, d, "", 0)
	for _, r := range got {
		if r == '=' {
			t.Fatalf("Base64 output is padded: %q", got)
		}
	}
	if len(got) != 11 {
		t.Fatalf("Base64 length = %d, want 11 for a 64-bit input", len(got))
	}
}

func TestParseModeRoundTrip(t *testing.T) {
	cases := []Mode{Regular, RegularUpcase, NoSpace, NoSpaceUpcase, NoSpaceCamel, Hex, HexUpcase, Base64, Base64Upcase, Decimal}
	for _, m := range cases {
		parsed, err := ParseMode(m.String())
		if err != nil {
			t.Fatalf("ParseMode(%q): %v", m.String(), err)
		}
		if parsed != m {
			t.Errorf("ParseMode(%q) = %v, want %v", m.String(), parsed, m)
		}
	}
	if _, err := ParseMode("U"); err != nil {
		t.Errorf("bare U should parse as RegularUpcase: %v", err)
	}
}

func TestDictionaryHas2048UniqueEntries(t *testing.T) {
	seen := make(map[string]bool, 2048)
	for _, w := range dictionary {
		if seen[w] {
			t.Fatalf("duplicate dictionary word %q", w)
		}
		seen[w] = true
	}
	if len(seen) != 2048 {
		t.Fatalf("dictionary has %d unique entries, want 2048", len(seen))
	}
}
