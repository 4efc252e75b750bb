package eval

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"sort"
	"unicode/utf8"

	"github.com/creachadair/hel/entry"
)

// cmdGen derives a batch of variants of e (its name possibly expanded by
// a trailing run of G's or X's, per §4.6), sorts them by derived length
// descending, and prints the N longest. The listing index is rebuilt to
// point at exactly the printed rows, so a following pass/enc/keep by
// listing key reaches one of them.
func (ev *Evaluator) cmdGen(o *Output, n int, e entry.Entry) {
	variants, err := genVariants(e)
	if err != nil {
		o.PrintErr("error: " + err.Error())
		return
	}

	// Populate the listing index with the raw batch first and derive by
	// looking each one back up through it, the same path enc uses for a
	// listing-key argument — so the invariant below is actually guarding
	// something (a Lookup that returned the wrong entry), not tautology.
	pointers := make([]*entry.Entry, len(variants))
	for i := range variants {
		pointers[i] = &variants[i]
	}
	ev.Store.AssignKeys(pointers)

	rows := make([]genRow, 0, len(variants))
	warn := func(name string) {
		o.PrintErr(fmt.Sprintf("warning: password %s is not marked as correct", name))
	}
	for i, want := range variants {
		key := listingKey(i)
		v, ok := ev.Store.Lookup(key)
		if !ok || v.Name != want.Name {
			panic(fmt.Sprintf("gen: listing key %s resolved to %q, want %q", key, safeName(v), want.Name))
		}
		master, found, err := ev.Resolver.Resolve(v, true, warn)
		if err != nil {
			o.PrintErr("error: " + err.Error())
			return
		}
		if !found {
			o.PrintErr(fmt.Sprintf("error: master for %s not found", v.Name))
			return
		}
		derived := v.Derive(master)
		rows = append(rows, genRow{entry: *v, derived: derived})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return utf8.RuneCountInString(rows[i].derived) > utf8.RuneCountInString(rows[j].derived)
	})
	if n >= 0 && n < len(rows) {
		rows = rows[:n]
	}

	kept := make([]*entry.Entry, len(rows))
	for i := range rows {
		cp := rows[i].entry
		kept[i] = &cp
	}
	ev.Store.AssignKeys(kept)

	for i, row := range rows {
		length := utf8.RuneCountInString(row.derived)
		o.PrintOut(fmt.Sprintf("%3s %s %d %s", listingKey(i), row.derived, length, row.entry.String()))
	}
}

func safeName(e *entry.Entry) string {
	if e == nil {
		return "<nil>"
	}
	return e.Name
}

type genRow struct {
	entry   entry.Entry
	derived string
}

// genVariants expands e per the gen naming convention: a trailing run
// of G's produces every base-10 suffix from 1 to 10^g-1; a trailing run
// of X's produces one variant with a uniformly random suffix in
// [1, 10^x); otherwise e is the sole variant, unchanged.
func genVariants(e entry.Entry) ([]entry.Entry, error) {
	if base, g := trailingRun(e.Name, 'G'); g > 0 {
		count := pow10(g) - 1
		if count < 1 {
			return nil, fmt.Errorf("gen: no variants for %q", e.Name)
		}
		variants := make([]entry.Entry, count)
		for i := range variants {
			v := e
			v.Name = fmt.Sprintf("%s%d", base, i+1)
			variants[i] = v
		}
		return variants, nil
	}
	if base, x := trailingRun(e.Name, 'X'); x > 0 {
		suffix, err := randomSuffix(x)
		if err != nil {
			return nil, err
		}
		v := e
		v.Name = fmt.Sprintf("%s%d", base, suffix)
		return []entry.Entry{v}, nil
	}
	return []entry.Entry{e}, nil
}

// trailingRun splits s into (base, count) where count is the length of
// the trailing run of ch, possibly zero.
func trailingRun(s string, ch byte) (base string, count int) {
	i := len(s)
	for i > 0 && s[i-1] == ch {
		i--
	}
	return s[:i], len(s) - i
}

func pow10(n int) int {
	p := 1
	for range n {
		p *= 10
	}
	return p
}

// randomSuffix returns a uniformly random integer in [1, 10^x) using the
// platform CSPRNG (crypto/rand's package-level Reader, which tests swap
// via mtest.Swap for determinism).
func randomSuffix(x int) (int64, error) {
	max := new(big.Int).Sub(tenToThe(x), big.NewInt(1))
	n, err := crand.Int(crand.Reader, max)
	if err != nil {
		return 0, err
	}
	return n.Int64() + 1, nil
}

func tenToThe(x int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(x)), nil)
}
