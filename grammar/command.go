package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/creachadair/hel/entry"
)

// Kind identifies which verb a parsed Command represents.
type Kind int

const (
	KindNoop Kind = iota
	KindHelp
	KindQuit
	KindError
	KindLs
	KindLd
	KindAdd
	KindMv
	KindRm
	KindEnc
	KindGen
	KindPass
	KindUnpass
	KindCorrect
	KindUncorrect
	KindComment
	KindKeep
	KindPb
	KindSource
	KindSave
	KindDump
)

// Command is one parsed REPL line.
type Command struct {
	Kind Kind

	Regex string // ls, ld

	Entry entry.Entry // add, gen

	N int // gen: variant count, default 10

	Name      string // mv, rm, enc, pass, unpass, correct, uncorrect, comment, keep
	Parent    string // mv
	Literal   string // pass
	HasValue  bool   // pass, comment: whether a literal/text was supplied
	Text      string // comment text, error text

	Target string // source, save: path, "-", or a leading/trailing "|" pipe form

	Sub string // pb: the remainder of the line, itself a Command to parse
}

// Script splits text into individual command lines. Newline is the only
// script separator; it is never ordinary token whitespace.
func Script(text string) []string {
	return strings.Split(text, "\n")
}

// Parse parses one command line.
func Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Command{Kind: KindNoop}, nil
	}

	sc := newScanner(line)
	verb, ok := sc.token()
	if !ok {
		return Command{Kind: KindNoop}, nil
	}

	switch verb {
	case "ls":
		return parseListing(sc, KindLs)
	case "ld":
		return parseListing(sc, KindLd)
	case "add":
		e, err := parseEntryDesc(sc)
		if err != nil {
			return Command{}, err
		}
		return Command{Kind: KindAdd, Entry: e}, nil
	case "gen":
		return parseGen(sc)
	case "mv":
		name, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("mv: missing name")
		}
		parent, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("mv: missing parent")
		}
		return Command{Kind: KindMv, Name: name, Parent: parent}, nil
	case "rm":
		name, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("rm: missing name")
		}
		return Command{Kind: KindRm, Name: name}, nil
	case "enc":
		name, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("enc: missing name")
		}
		return Command{Kind: KindEnc, Name: name}, nil
	case "pass":
		name, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("pass: missing name")
		}
		literal := sc.rest()
		return Command{Kind: KindPass, Name: name, Literal: literal, HasValue: literal != ""}, nil
	case "unpass":
		name, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("unpass: missing name")
		}
		return Command{Kind: KindUnpass, Name: name}, nil
	case "correct":
		name, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("correct: missing name")
		}
		return Command{Kind: KindCorrect, Name: name}, nil
	case "uncorrect":
		name, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("uncorrect: missing name")
		}
		return Command{Kind: KindUncorrect, Name: name}, nil
	case "comment":
		name, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("comment: missing name")
		}
		text := sc.rest()
		return Command{Kind: KindComment, Name: name, Text: text, HasValue: text != ""}, nil
	case "keep":
		name, ok := sc.token()
		if !ok {
			return Command{}, fmt.Errorf("keep: missing name")
		}
		return Command{Kind: KindKeep, Name: name}, nil
	case "pb":
		return Command{Kind: KindPb, Sub: sc.rest()}, nil
	case "source":
		return Command{Kind: KindSource, Target: sc.rest()}, nil
	case "save":
		return Command{Kind: KindSave, Target: sc.rest()}, nil
	case "dump":
		return Command{Kind: KindDump}, nil
	case "quit":
		return Command{Kind: KindQuit}, nil
	case "help":
		return Command{Kind: KindHelp}, nil
	case "error":
		return Command{Kind: KindError, Text: sc.rest()}, nil
	default:
		return Command{}, fmt.Errorf("unknown verb %q", verb)
	}
}

func parseListing(sc *scanner, kind Kind) (Command, error) {
	re := sc.rest()
	if re == "" {
		re = "."
	}
	return Command{Kind: kind, Regex: re}, nil
}

func parseGen(sc *scanner) (Command, error) {
	n := 10
	saved := sc.save()
	if tok, ok := sc.token(); ok {
		if v, err := strconv.Atoi(tok); err == nil {
			n = v
		} else {
			sc.restore(saved)
		}
	}
	e, err := parseEntryDesc(sc)
	if err != nil {
		return Command{}, err
	}
	return Command{Kind: KindGen, N: n, Entry: e}, nil
}
