// Package eval implements the command evaluator: verb dispatch over the
// store, ledger, and master-resolver, writing results to an Output
// rather than a real terminal so the REPL loop, scripts, and pb's
// buffer redirection all share one code path.
package eval

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/creachadair/atomicfile"

	"github.com/creachadair/hel/config"
	"github.com/creachadair/hel/entry"
	"github.com/creachadair/hel/grammar"
	"github.com/creachadair/hel/ledger"
	"github.com/creachadair/hel/resolver"
	"github.com/creachadair/hel/store"
)

// RunSubprocess runs commandLine with input on stdin and returns its
// captured stdout — the shape of internal/subprocess.Run, injected here
// so tests can stub it out.
type RunSubprocess func(commandLine, input string) (string, error)

// Evaluator binds the store, ledger, and resolver behind the verb set,
// plus the subprocess capability that pb, source "...|", and "save |..."
// need.
type Evaluator struct {
	Store    *store.Store
	Ledger   *ledger.Ledger
	Resolver *resolver.Resolver
	Config   config.Config

	RunSubprocess RunSubprocess

	// ReadFile and WriteFile back source (from a path) and save (to a
	// path); tests can stub them to avoid touching the real filesystem.
	ReadFile  func(path string) ([]byte, error)
	WriteFile func(path string, data []byte) error
}

// Eval parses one line and evaluates it, returning true if it signaled
// quit (directly, or by running a script that hit quit).
func (ev *Evaluator) Eval(o *Output, line string) bool {
	cmd, err := grammar.Parse(line)
	if err != nil {
		o.PrintErr("error: " + err.Error())
		return false
	}
	return ev.evalCommand(o, cmd)
}

func (ev *Evaluator) evalCommand(o *Output, cmd grammar.Command) bool {
	switch cmd.Kind {
	case grammar.KindNoop:
		return false
	case grammar.KindHelp:
		ev.cmdHelp(o)
		return false
	case grammar.KindQuit:
		return true
	case grammar.KindError:
		o.PrintErr("error: " + cmd.Text)
		return false
	case grammar.KindAdd:
		ev.cmdAdd(o, cmd.Entry)
		return false
	case grammar.KindLs:
		ev.cmdList(o, cmd.Regex, store.SortByName)
		return false
	case grammar.KindLd:
		ev.cmdList(o, cmd.Regex, store.SortByDate)
		return false
	case grammar.KindMv:
		ev.cmdMv(o, cmd.Name, cmd.Parent)
		return false
	case grammar.KindRm:
		ev.cmdRm(o, cmd.Name)
		return false
	case grammar.KindEnc:
		ev.cmdEnc(o, cmd.Name)
		return false
	case grammar.KindGen:
		ev.cmdGen(o, cmd.N, cmd.Entry)
		return false
	case grammar.KindPass:
		ev.cmdPass(o, cmd.Name, cmd.Literal, cmd.HasValue)
		return false
	case grammar.KindUnpass:
		ev.cmdUnpass(o, cmd.Name)
		return false
	case grammar.KindCorrect:
		ev.cmdCorrect(o, cmd.Name, true)
		return false
	case grammar.KindUncorrect:
		ev.cmdCorrect(o, cmd.Name, false)
		return false
	case grammar.KindComment:
		ev.cmdComment(o, cmd.Name, cmd.Text, cmd.HasValue)
		return false
	case grammar.KindKeep:
		ev.cmdKeep(o, cmd.Name)
		return false
	case grammar.KindPb:
		ev.cmdPb(o, cmd.Sub)
		return false
	case grammar.KindSource:
		return ev.cmdSource(o, cmd.Target)
	case grammar.KindSave:
		ev.cmdSave(o, cmd.Target)
		return false
	case grammar.KindDump:
		ev.cmdDump(o)
		return false
	default:
		o.PrintErr(fmt.Sprintf("error: unhandled command kind %v", cmd.Kind))
		return false
	}
}

func (ev *Evaluator) cmdHelp(o *Output) {
	o.PrintOut("verbs: add ls ld mv rm enc gen pass unpass correct uncorrect comment keep pb source save dump quit help")
}

func (ev *Evaluator) cmdAdd(o *Output, e entry.Entry) {
	if err := ev.Store.Insert(e); err != nil {
		o.PrintErr("error: " + err.Error())
	}
}

func (ev *Evaluator) cmdList(o *Output, pattern string, key store.SortKey) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		o.PrintErr("error: " + err.Error())
		return
	}
	for i, e := range ev.Store.RebuildListing(re, key) {
		o.PrintOut(fmt.Sprintf("%3s %s", listingKey(i), e.String()))
	}
}

func (ev *Evaluator) cmdMv(o *Output, name, parent string) {
	if err := ev.Store.SetParent(name, parent); err != nil {
		o.PrintErr("error: " + err.Error())
	}
}

func (ev *Evaluator) cmdRm(o *Output, key string) {
	if _, ok := ev.Store.Remove(key); !ok {
		o.PrintErr(fmt.Sprintf("error: no such entry %q", key))
	}
}

// cmdEnc implements the enc state machine of §4.7: START/LOOKUP/PROBE/
// CLIMB/EMIT/FAIL. See emit and deriveForName for where the ledger gets
// checked — enc, like pass and gen, only ever checks and warns; marking
// is correct/uncorrect's job alone.
func (ev *Evaluator) cmdEnc(o *Output, key string) {
	name, derived, ok := ev.deriveForName(o, key)
	if !ok {
		return
	}
	ev.emit(o, name, derived)
}

// deriveForName resolves the password for name, whether name is a store
// entry or the literal root "/": a cache hit short-circuits, otherwise
// name must look up to a real entry (there is no entry literally named
// "/", so an uncached "/" simply fails here) and its master is resolved
// with prompting allowed, forwarding ancestor warnings to o.
func (ev *Evaluator) deriveForName(o *Output, key string) (name, derived string, ok bool) {
	if v, cached := ev.Store.CachedSecret(key); cached {
		return key, v, true
	}

	e, found := ev.Store.Lookup(key)
	if !found {
		o.PrintErr(fmt.Sprintf("error: no such entry %q", key))
		return "", "", false
	}
	if v, cached := ev.Store.CachedSecret(e.Name); cached {
		return e.Name, v, true
	}

	master, have, err := ev.Resolver.Resolve(e, true, func(ancestor string) {
		o.PrintErr(fmt.Sprintf("warning: password %s is not marked as correct", ancestor))
	})
	if err != nil {
		o.PrintErr("error: " + err.Error())
		return "", "", false
	}
	if !have {
		o.PrintErr(fmt.Sprintf("error: master for %s not found", e.Name))
		return "", "", false
	}
	derived = e.Derive(master)
	ev.Store.CacheSecret(e.Name, derived)
	return e.Name, derived, true
}

// emit prints derived and checks (but does not mark) the ledger for
// (name, derived) — marking the target entry itself is left to correct/
// uncorrect, not to enc, which is why a freshly-derived password warns
// every time until the user explicitly confirms it.
func (ev *Evaluator) emit(o *Output, name, derived string) {
	o.PrintOut(derived)
	if !ev.Ledger.Check(name, derived) {
		o.PrintErr(fmt.Sprintf("warning: password %s is not marked as correct", name))
	}
}

// cmdPass caches a literal or prompted value as name's password without
// deriving it, then checks (but does not mark) the ledger — exactly
// like enc's ending, since pass is just another way of obtaining a
// value to check rather than a way of confirming one.
func (ev *Evaluator) cmdPass(o *Output, name, literal string, hasValue bool) {
	if _, found := ev.Store.Lookup(name); !found && name != "/" {
		o.PrintErr(fmt.Sprintf("error: no such entry %q", name))
		return
	}

	value := literal
	if hasValue {
		o.SkipHistory = true
	} else {
		v, err := ev.Resolver.Prompt(name)
		if err != nil {
			o.PrintErr("error: " + err.Error())
			return
		}
		value = v
	}
	if value == "" {
		o.PrintErr(fmt.Sprintf("error: no value supplied for %s", name))
		return
	}
	ev.Store.CacheSecret(name, value)
	ev.emit(o, name, value)
}

func (ev *Evaluator) cmdUnpass(o *Output, name string) {
	if !ev.Store.Uncache(name) {
		o.PrintErr(fmt.Sprintf("error: %s is not cached", name))
	}
}

// cmdCorrect re-derives NAME's password (prompting if needed, forwarding
// any ancestor warnings the derivation turns up) and marks or unmarks it
// in the ledger. This is the only path that ever mutates the ledger.
func (ev *Evaluator) cmdCorrect(o *Output, name string, correct bool) {
	target, derived, ok := ev.deriveForName(o, name)
	if !ok {
		return
	}
	if err := ev.Ledger.Mark(target, derived, correct); err != nil {
		o.PrintErr("error: " + err.Error())
	}
}

func (ev *Evaluator) cmdComment(o *Output, name, text string, hasValue bool) {
	e, ok := ev.Store.Lookup(name)
	if !ok {
		o.PrintErr(fmt.Sprintf("error: no such entry %q", name))
		return
	}
	if hasValue {
		e.Comment = text
	} else {
		e.Comment = ""
	}
}

// cmdKeep promotes an entry that only exists in the listing index (most
// commonly one row of a gen batch) into a permanent store entry.
func (ev *Evaluator) cmdKeep(o *Output, key string) {
	e, ok := ev.Store.Lookup(key)
	if !ok {
		o.PrintErr(fmt.Sprintf("error: %s not found", key))
		return
	}
	if err := ev.Store.Insert(*e); err != nil {
		o.PrintErr("error: " + err.Error())
	}
}

// cmdPb evaluates sub with its own fresh stdout buffer (sharing the
// caller's stderr), then pipes that buffer into the clipboard
// subprocess.
func (ev *Evaluator) cmdPb(o *Output, sub string) {
	buf := make([]string, 0)
	inner := &Output{Out: &buf, Err: o.Err}
	ev.Eval(inner, sub)

	text := strings.Join(buf, "\n")
	if len(buf) > 0 {
		text += "\n"
	}
	clipCmd := clipboardCommand(ev.Config.Clipboard)
	if _, err := ev.RunSubprocess(clipCmd, text); err != nil {
		o.PrintErr("error: " + err.Error())
	}
}

func (ev *Evaluator) cmdSource(o *Output, target string) bool {
	var text string
	if cmdLine, isPipe := pipeSource(target); isPipe {
		out, err := ev.RunSubprocess(cmdLine, "")
		if err != nil {
			o.PrintErr("error: " + err.Error())
			return false
		}
		text = out
	} else {
		data, err := ev.ReadFile(target)
		if err != nil {
			o.PrintErr("error: " + err.Error())
			return false
		}
		text = string(data)
	}
	for _, line := range grammar.Script(text) {
		if ev.Eval(o, line) {
			return true
		}
	}
	return false
}

func (ev *Evaluator) cmdDump(o *Output) {
	for _, line := range dumpLines(ev.Store) {
		o.PrintOut(line)
	}
}

func (ev *Evaluator) cmdSave(o *Output, target string) {
	switch {
	case target == "-":
		ev.cmdDump(o)
	case strings.HasPrefix(target, "|"):
		cmdLine := strings.TrimSpace(strings.TrimPrefix(target, "|"))
		if _, err := ev.RunSubprocess(cmdLine, dumpText(ev.Store)); err != nil {
			o.PrintErr("error: " + err.Error())
		}
	default:
		path := target
		if path == "" {
			path = ev.Config.DumpFile
		}
		if err := ev.WriteFile(path, []byte(dumpText(ev.Store))); err != nil {
			o.PrintErr("error: " + err.Error())
		}
	}
}

// pipeSource reports whether target is the "run this and consume its
// stdout" form (a trailing "|"), returning the command line with the
// marker stripped.
func pipeSource(target string) (cmdLine string, isPipe bool) {
	if !strings.HasSuffix(target, "|") {
		return "", false
	}
	return strings.TrimSpace(strings.TrimSuffix(target, "|")), true
}

func dumpLines(s *store.Store) []string {
	entries := append([]*entry.Entry(nil), s.Entries()...)
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = "add " + e.String()
	}
	return lines
}

func dumpText(s *store.Store) string {
	lines := dumpLines(s)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// defaultWriteFile backs WriteFile with an atomic write to the real
// filesystem via atomicfile, the same library the ledger uses for its
// own persistence.
func defaultWriteFile(path string, data []byte) error {
	return atomicfile.Tx(path, 0o600, func(f *atomicfile.File) error {
		_, err := f.Write(data)
		return err
	})
}
