package grammar

import (
	"fmt"
	"strconv"

	"github.com/creachadair/hel/entry"
	"github.com/creachadair/hel/skey"
)

// parseLenMode splits a "[LEN]MODE" token into its optional leading
// decimal length and its mode letter code.
func parseLenMode(tok string) (int, skey.Mode, bool) {
	i := 0
	for i < len(tok) && tok[i] >= '0' && tok[i] <= '9' {
		i++
	}
	lengthStr, modeStr := tok[:i], tok[i:]
	length := 0
	if lengthStr != "" {
		n, err := strconv.Atoi(lengthStr)
		if err != nil {
			return 0, 0, false
		}
		length = n
	}
	mode, err := skey.ParseMode(modeStr)
	if err != nil {
		return 0, 0, false
	}
	return length, mode, true
}

// parseEntryDesc parses the entry-description grammar used by add and
// gen: a sequence of whitespace-separated tokens matched by the first of
// six ordered rules that succeeds, from most to least specific.
func parseEntryDesc(sc *scanner) (entry.Entry, error) {
	if e, ok := tryPrefixNameLenModeSeqDate(sc); ok {
		return e, nil
	}
	if e, ok := tryNameLenModeSeqDate(sc); ok {
		return e, nil
	}
	if e, ok := tryPrefixNameLenModeDate(sc); ok {
		return e, nil
	}
	if e, ok := tryNameLenModeDate(sc); ok {
		return e, nil
	}
	if e, ok := tryNameLenMode(sc); ok {
		return e, nil
	}
	if e, ok := tryNameOnly(sc); ok {
		return e, nil
	}
	return entry.Entry{}, fmt.Errorf("invalid entry description")
}

// tryPrefixNameLenModeSeqDate matches "PREFIX NAME [LEN]MODE SEQ DATE
// [COMMENT]".
func tryPrefixNameLenModeSeqDate(sc *scanner) (entry.Entry, bool) {
	saved := sc.save()
	prefix, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	name, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	lenMode, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	length, mode, ok := parseLenMode(lenMode)
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	seqTok, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	seq, err := strconv.Atoi(seqTok)
	if err != nil {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	dateTok, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	date, err := entry.ParseDate(dateTok)
	if err != nil {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	return entry.Entry{
		Prefix: prefix, Name: name, Length: length, Mode: mode,
		Seq: seq, Date: date, Comment: sc.rest(),
	}, true
}

// tryNameLenModeSeqDate matches "NAME [LEN]MODE SEQ DATE [COMMENT]".
func tryNameLenModeSeqDate(sc *scanner) (entry.Entry, bool) {
	saved := sc.save()
	name, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	lenMode, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	length, mode, ok := parseLenMode(lenMode)
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	seqTok, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	seq, err := strconv.Atoi(seqTok)
	if err != nil {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	dateTok, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	date, err := entry.ParseDate(dateTok)
	if err != nil {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	return entry.Entry{
		Name: name, Length: length, Mode: mode,
		Seq: seq, Date: date, Comment: sc.rest(),
	}, true
}

// tryPrefixNameLenModeDate matches "PREFIX NAME [LEN]MODE DATE
// [COMMENT]" (seq defaults to 99).
func tryPrefixNameLenModeDate(sc *scanner) (entry.Entry, bool) {
	saved := sc.save()
	prefix, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	name, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	lenMode, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	length, mode, ok := parseLenMode(lenMode)
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	dateTok, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	date, err := entry.ParseDate(dateTok)
	if err != nil {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	return entry.Entry{
		Prefix: prefix, Name: name, Length: length, Mode: mode,
		Seq: 99, Date: date, Comment: sc.rest(),
	}, true
}

// tryNameLenModeDate matches "NAME [LEN]MODE DATE [COMMENT]" (seq=99).
func tryNameLenModeDate(sc *scanner) (entry.Entry, bool) {
	saved := sc.save()
	name, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	lenMode, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	length, mode, ok := parseLenMode(lenMode)
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	dateTok, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	date, err := entry.ParseDate(dateTok)
	if err != nil {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	return entry.Entry{
		Name: name, Length: length, Mode: mode,
		Seq: 99, Date: date, Comment: sc.rest(),
	}, true
}

// tryNameLenMode matches "NAME [LEN]MODE" (seq=99, date=today), only
// when nothing else remains — otherwise a trailing date or comment would
// have to belong to a higher-priority rule.
func tryNameLenMode(sc *scanner) (entry.Entry, bool) {
	saved := sc.save()
	name, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	lenMode, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	length, mode, ok := parseLenMode(lenMode)
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	if !sc.atEnd() {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	return entry.Entry{
		Name: name, Length: length, Mode: mode,
		Seq: 99, Date: entry.Today(),
	}, true
}

// tryNameOnly matches "NAME" alone (mode=NoSpaceCamel, seq=99,
// date=today).
func tryNameOnly(sc *scanner) (entry.Entry, bool) {
	saved := sc.save()
	name, ok := sc.token()
	if !ok {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	if !sc.atEnd() {
		sc.restore(saved)
		return entry.Entry{}, false
	}
	return entry.Entry{
		Name: name, Mode: skey.NoSpaceCamel, Seq: 99, Date: entry.Today(),
	}, true
}
