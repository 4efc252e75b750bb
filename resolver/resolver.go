// Package resolver implements the master-resolution recursion: walking
// an entry's ancestor chain, prompting only where needed, and caching
// partial secrets for the lifetime of the session.
package resolver

import (
	"github.com/creachadair/hel/entry"
	"github.com/creachadair/hel/ledger"
	"github.com/creachadair/hel/store"
)

// PromptSecret requests a secret from the user, identified by name (the
// entry name being prompted for, or "/" for the root). An empty result
// with a nil error means the user declined to answer.
type PromptSecret func(name string) (string, error)

// Resolver recursively resolves the keying material for an entry,
// consulting and populating the store's session cache as it goes. It
// never marks the ledger itself — only correct/uncorrect do that — but
// it does report every newly obtained ancestor secret to warn unless
// the ledger already has it marked correct, which is why a first-ever
// enc of a deep chain warns about every ancestor it had to climb.
type Resolver struct {
	Store  *store.Store
	Ledger *ledger.Ledger
	Prompt PromptSecret
}

// Resolve returns the keying material e's own derivation should use: the
// secret resolved for e's parent (or the root secret, if e has no
// parent). ok is false if no secret could be obtained without a prompt
// (when prompt is false) or the user declined every prompt offered.
func (r *Resolver) Resolve(e *entry.Entry, prompt bool, warn func(name string)) (string, bool, error) {
	if prompt {
		if v, ok, err := r.Resolve(e, false, warn); err != nil || ok {
			return v, ok, err
		}
	}

	parentName := e.Parent
	if parentName == "" {
		parentName = "/"
	}
	if v, ok := r.Store.CachedSecret(parentName); ok {
		return v, true, nil
	}

	if e.Parent == "" {
		if !prompt {
			return "", false, nil
		}
		v, err := r.Prompt("/")
		if err != nil {
			return "", false, err
		}
		if v == "" {
			return "", false, nil
		}
		r.Store.CacheSecret("/", v)
		r.check(warn, "/", v)
		return v, true, nil
	}

	if prompt {
		v, err := r.Prompt(e.Parent)
		if err != nil {
			return "", false, err
		}
		if v != "" {
			r.Store.CacheSecret(e.Parent, v)
			r.check(warn, e.Parent, v)
			return v, true, nil
		}
	}

	parentEntry, ok := r.Store.Lookup(e.Parent)
	if !ok {
		return "", false, nil
	}
	grandMaster, found, err := r.Resolve(parentEntry, prompt, warn)
	if err != nil || !found {
		return "", false, err
	}
	childMaster := parentEntry.Derive(grandMaster)
	r.Store.CacheSecret(e.Parent, childMaster)
	r.check(warn, e.Parent, childMaster)
	return childMaster, true, nil
}

// check reports (name, value) to warn if the ledger doesn't already
// have it marked correct. It never mutates the ledger.
func (r *Resolver) check(warn func(name string), name, value string) {
	if warn != nil && !r.Ledger.Check(name, value) {
		warn(name)
	}
}
