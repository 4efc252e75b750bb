package skey

import (
	"fmt"
	"strings"
)

// Mode selects one of the ten derivation output encodings.
type Mode int

const (
	Regular Mode = iota
	RegularUpcase
	NoSpace
	NoSpaceUpcase
	NoSpaceCamel
	Hex
	HexUpcase
	Base64
	Base64Upcase
	Decimal
)

// String returns the grammar letter-code for m (matching the letters the
// entry grammar and canonical serialization use).
func (m Mode) String() string {
	switch m {
	case Regular:
		return "R"
	case RegularUpcase:
		return "UR"
	case NoSpace:
		return "N"
	case NoSpaceUpcase:
		return "UN"
	case NoSpaceCamel:
		return "C"
	case Hex:
		return "H"
	case HexUpcase:
		return "UH"
	case Base64:
		return "B"
	case Base64Upcase:
		return "UB"
	case Decimal:
		return "D"
	default:
		return "?"
	}
}

// separatorFor returns the join separator for mode given whether a length
// truncation is in effect: any set length forces an empty separator;
// otherwise NoSpace variants use "-", Hex/Base64/Camel variants use "",
// and everything else (Regular, RegularUpcase, Decimal) uses " ".
func separatorFor(mode Mode, lengthSet bool) string {
	if lengthSet {
		return ""
	}
	switch mode {
	case NoSpace, NoSpaceUpcase:
		return "-"
	case Hex, HexUpcase, Base64, Base64Upcase, NoSpaceCamel:
		return ""
	default:
		return " "
	}
}

func upper(mode Mode) bool {
	switch mode {
	case RegularUpcase, NoSpaceUpcase, HexUpcase, Base64Upcase:
		return true
	default:
		return false
	}
}

func body(mode Mode, d Digest, sep string) string {
	switch mode {
	case Regular, RegularUpcase, NoSpace, NoSpaceUpcase:
		words := d.Words()
		s := strings.Join(words[:], sep)
		if upper(mode) {
			s = strings.ToUpper(s)
		}
		return s
	case NoSpaceCamel:
		return d.Camel()
	case Hex, HexUpcase:
		s := d.Hex()
		if upper(mode) {
			s = strings.ToUpper(s)
		}
		return s
	case Base64, Base64Upcase:
		s := d.Base64()
		if upper(mode) {
			s = strings.ToUpper(s)
		}
		return s
	case Decimal:
		digits := d.decimalStrings()
		return strings.Join(digits[:], sep)
	default:
		return ""
	}
}

// ParseMode parses one of the grammar's case-insensitive mode letter codes
// (R N C U H B D, optionally preceded by U for the upcase variants UR UN
// UH UB; bare U means RegularUpcase) into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(s) {
	case "R":
		return Regular, nil
	case "U", "UR":
		return RegularUpcase, nil
	case "N":
		return NoSpace, nil
	case "UN":
		return NoSpaceUpcase, nil
	case "C":
		return NoSpaceCamel, nil
	case "H":
		return Hex, nil
	case "UH":
		return HexUpcase, nil
	case "B":
		return Base64, nil
	case "UB":
		return Base64Upcase, nil
	case "D":
		return Decimal, nil
	default:
		return 0, fmt.Errorf("unknown mode %q", s)
	}
}

// Encode assembles the final derived string for mode from d, with an
// optional prefix and an optional positive length truncation. length <= 0
// means "unset". Truncation is character-count based and applies to the
// fully assembled prefix+separator+body string, so a long enough prefix
// alone can consume the whole output.
func Encode(mode Mode, d Digest, prefix string, length int) string {
	sep := separatorFor(mode, length > 0)
	result := body(mode, d, sep)
	if prefix != "" {
		result = prefix + sep + result
	}
	if length > 0 {
		runes := []rune(result)
		if len(runes) > length {
			result = string(runes[:length])
		}
	}
	return result
}
