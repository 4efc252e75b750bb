// Package entry defines the Entry record: a recipe, never a secret.
package entry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/mds/value"

	"github.com/creachadair/hel/skey"
)

// Entry is one named recipe in the store. Length of zero means "unset".
// Parent is the name of the parent entry, or "" for a root entry.
type Entry struct {
	Prefix  string
	Name    string
	Length  int
	Mode    skey.Mode
	Seq     int
	Date    Date
	Comment string
	Parent  string
}

// Equal reports whether two entries have identical fields, the notion of
// "differs" that Store.Insert uses to distinguish an idempotent re-add
// from a conflicting one.
func (e Entry) Equal(o Entry) bool {
	return e.Prefix == o.Prefix &&
		e.Name == o.Name &&
		e.Length == o.Length &&
		e.Mode == o.Mode &&
		e.Seq == o.Seq &&
		e.Date == o.Date &&
		e.Comment == o.Comment &&
		e.Parent == o.Parent
}

// String renders the entry's canonical serialization: a right-justified
// six-wide prefix block (the prefix plus one trailing space if present,
// or six blank spaces if absent), the name, optional length, mode, seq,
// date, optional comment, and optional "^parent" back-reference. This is
// the exact string `ls`/`ld` print after their index column, and the
// suffix of every `dump` line after "add ".
func (e Entry) String() string {
	prefixBlock := ""
	if e.Prefix != "" {
		prefixBlock = e.Prefix + " "
	}
	if len(prefixBlock) < 6 {
		prefixBlock = strings.Repeat(" ", 6-len(prefixBlock)) + prefixBlock
	}

	length := value.Cond(e.Length > 0, strconv.Itoa(e.Length), "")
	comment := value.Cond(e.Comment != "", " "+e.Comment, "")
	parent := value.Cond(e.Parent != "", " ^"+e.Parent, "")

	return fmt.Sprintf("%s%s %s%s %d %s%s%s", prefixBlock, e.Name, length, e.Mode, e.Seq, e.Date, comment, parent)
}

// Digest computes the SKey digest for e using master as the resolved
// keying material for e's parent (or the root secret, for a root entry).
func (e Entry) Digest(master string) skey.Digest {
	return skey.Derive(e.Name, e.Seq, master)
}

// Derive computes e's fully assembled derived output under master.
func (e Entry) Derive(master string) string {
	return skey.Encode(e.Mode, e.Digest(master), e.Prefix, e.Length)
}
