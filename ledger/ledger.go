// Package ledger records a correctness fingerprint for each (name,
// derived) pair the user has confirmed, without ever persisting the
// master secret or the derived password itself.
package ledger

import (
	"crypto/sha1"
	"encoding/hex"
	"os"
	"strings"

	"github.com/creachadair/atomicfile"
)

// Ledger is the in-memory set of confirmed fingerprints, backed by a flat
// hex-lines file.
type Ledger struct {
	path string
	set  map[string]bool
}

// Hash computes the ledger fingerprint for a (name, derived) pair: the
// hex SHA-1 of their exact byte concatenation, no separator.
func Hash(name, derived string) string {
	sum := sha1.Sum([]byte(name + derived))
	return hex.EncodeToString(sum[:])
}

// Load reads the ledger file at path, ignoring a missing file (treated as
// empty) and trimming trailing whitespace from each line.
func Load(path string) (*Ledger, error) {
	l := &Ledger{path: path, set: make(map[string]bool)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, err
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if line != "" {
			l.set[line] = true
		}
	}
	return l, nil
}

// Check reports whether (name, derived) is marked correct, without
// mutating the ledger.
func (l *Ledger) Check(name, derived string) bool {
	return l.set[Hash(name, derived)]
}

// Mark records or removes the fingerprint for (name, derived) and
// rewrites the backing file.
func (l *Ledger) Mark(name, derived string, correct bool) error {
	h := Hash(name, derived)
	if correct {
		l.set[h] = true
	} else {
		delete(l.set, h)
	}
	return l.save()
}

func (l *Ledger) save() error {
	lines := make([]string, 0, len(l.set))
	for h := range l.set {
		lines = append(lines, h)
	}
	data := []byte(strings.Join(lines, "\n"))
	if len(data) > 0 {
		data = append(data, '\n')
	}
	return atomicfile.Tx(l.path, 0o600, func(f *atomicfile.File) error {
		_, err := f.Write(data)
		return err
	})
}
