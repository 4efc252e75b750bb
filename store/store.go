// Package store holds the in-memory set of named entries: insertion with
// idempotence checking, lookup by name or listing index, hierarchy
// normalization, and the session secret cache the resolver consults.
package store

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/creachadair/mds/mbits"
	"github.com/creachadair/mds/slice"

	"github.com/creachadair/hel/entry"
)

// parentToken matches a "^NAME" back-reference embedded in a comment.
var parentToken = regexp.MustCompile(`\s*\^(\S+)`)

// Store is the evaluator's sole owner of entries, the listing index, and
// the session secret cache. It is not safe for concurrent use; the
// evaluator is single-threaded by design (see the concurrency model).
type Store struct {
	byName  map[string]*entry.Entry
	byKey   map[string]*entry.Entry
	secrets map[string]string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		byName:  make(map[string]*entry.Entry),
		byKey:   make(map[string]*entry.Entry),
		secrets: make(map[string]string),
	}
}

// Insert adds e, or confirms an identical entry of the same name already
// exists. It returns an error if an entry of the same name exists with
// different fields. On a genuinely new insertion, FixHierarchy runs
// afterward.
func (s *Store) Insert(e entry.Entry) error {
	if existing, ok := s.byName[e.Name]; ok {
		if existing.Equal(e) {
			return nil
		}
		return fmt.Errorf("entry %q already exists with different fields", e.Name)
	}
	cp := e
	s.byName[e.Name] = &cp
	s.FixHierarchy()
	return nil
}

// Lookup resolves key as a name first, then as a listing index.
func (s *Store) Lookup(key string) (*entry.Entry, bool) {
	if e, ok := s.byName[key]; ok {
		return e, true
	}
	if e, ok := s.byKey[key]; ok {
		return e, true
	}
	return nil, false
}

// Remove deletes the entry resolved lookup-key refers to, by name.
func (s *Store) Remove(key string) (string, bool) {
	e, ok := s.Lookup(key)
	if !ok {
		return "", false
	}
	delete(s.byName, e.Name)
	return e.Name, true
}

// Entries returns every entry currently in the store, unordered.
func (s *Store) Entries() []*entry.Entry {
	out := make([]*entry.Entry, 0, len(s.byName))
	for _, e := range s.byName {
		out = append(out, e)
	}
	return out
}

// Len reports the number of entries in the store.
func (s *Store) Len() int { return len(s.byName) }

// SetParent sets (or, for "/", clears) e's parent, then runs FixCycle on
// e alone — not a full FixHierarchy pass, matching mv's narrower
// contract.
func (s *Store) SetParent(name, parent string) error {
	e, ok := s.byName[name]
	if !ok {
		return fmt.Errorf("no such entry %q", name)
	}
	if parent == "/" {
		e.Parent = ""
	} else {
		if _, ok := s.byName[parent]; !ok {
			return fmt.Errorf("no such parent %q", parent)
		}
		e.Parent = parent
	}
	s.fixCycle(e)
	return nil
}

// FixHierarchy scans every entry's comment for "^NAME" tokens, sets
// parent edges for any target name present in the store, strips the
// token from the comment, and then runs FixCycle on every entry
// regardless of whether a parent was set this pass.
func (s *Store) FixHierarchy() {
	for _, e := range s.byName {
		matches := parentToken.FindAllStringSubmatch(e.Comment, -1)
		for _, m := range matches {
			target := m[1]
			if _, ok := s.byName[target]; ok {
				e.Parent = target
				e.Comment = strings.Replace(e.Comment, m[0], "", 1)
			}
		}
	}
	for _, e := range s.byName {
		s.fixCycle(e)
	}
}

// fixCycle walks e's parent chain with Floyd's tortoise-and-hare
// algorithm, checking for a meeting point after each single hare step
// rather than once per full iteration (the hare moves twice for every
// one tortoise move, but the two hare steps are not equivalent: a cycle
// can close on either one, and checking only after both would report
// the wrong meeting node for some topologies). If a cycle is found, it
// clears the parent of the node where tortoise and hare meet — not e
// itself, unless e is that node.
func (s *Store) fixCycle(e *entry.Entry) {
	tortoise := e
	hare := e
	for {
		hare = s.parentOf(hare)
		if hare == nil {
			return
		}
		if hare == tortoise {
			hare.Parent = ""
			return
		}
		tortoise = s.parentOf(tortoise)
		if tortoise == nil {
			return
		}
		hare = s.parentOf(hare)
		if hare == nil {
			return
		}
		if hare == tortoise {
			hare.Parent = ""
			return
		}
	}
}

func (s *Store) parentOf(e *entry.Entry) *entry.Entry {
	if e == nil || e.Parent == "" {
		return nil
	}
	p, ok := s.byName[e.Parent]
	if !ok {
		return nil
	}
	return p
}

// SortKey selects the field rebuild-listing orders by.
type SortKey int

const (
	SortByName SortKey = iota
	SortByDate
)

// RebuildListing repopulates the listing index with every entry whose
// serialized form, name, or comment matches filter, sorted first by name
// (a stable intermediate pass) and then by sortKey — net effect: primary
// sort by sortKey, ties broken by name. Returns the entries in their new
// listing order.
func (s *Store) RebuildListing(filter *regexp.Regexp, sortKey SortKey) []*entry.Entry {
	all := make([]*entry.Entry, 0, len(s.byName))
	for _, e := range s.byName {
		all = append(all, e)
	}
	matched := slice.Partition(all, func(e *entry.Entry) bool {
		return filter.MatchString(e.String()) || filter.MatchString(e.Name) || filter.MatchString(e.Comment)
	})
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })
	sort.SliceStable(matched, func(i, j int) bool {
		switch sortKey {
		case SortByDate:
			return matched[i].Date.Before(matched[j].Date)
		default:
			return matched[i].Name < matched[j].Name
		}
	})

	s.byKey = make(map[string]*entry.Entry, len(matched))
	for i, e := range matched {
		key := strconv.FormatInt(int64(i+1), 36)
		s.byKey[key] = e
	}
	return matched
}

// AssignKeys repopulates the listing index directly from an explicit,
// already-ordered slice of entries — used by gen, whose printed order is
// not a filter/sort of the whole store but the sorted result of one
// batch.
func (s *Store) AssignKeys(ordered []*entry.Entry) {
	s.byKey = make(map[string]*entry.Entry, len(ordered))
	for i, e := range ordered {
		key := strconv.FormatInt(int64(i+1), 36)
		s.byKey[key] = e
	}
}

// CachedSecret returns the session-cached secret for name, if any.
func (s *Store) CachedSecret(name string) (string, bool) {
	v, ok := s.secrets[name]
	return v, ok
}

// CacheSecret records value as the session secret for name.
func (s *Store) CacheSecret(name, value string) {
	s.secrets[name] = value
}

// Uncache drops name from the session secret cache. Since Go strings are
// immutable, the backing array of the cached value can't be wiped in
// place; Uncache zeros a byte copy instead, the best effort the data
// model's non-goals concede is all that's promised.
func (s *Store) Uncache(name string) bool {
	v, ok := s.secrets[name]
	if !ok {
		return false
	}
	b := []byte(v)
	mbits.Zero(b)
	delete(s.secrets, name)
	return true
}
