package skey

// dictionary is the fixed 2048-entry word table the six-word encoding
// indexes into. The canonical RFC 2289 S/KEY word list (the one the
// reference implementation this derivation scheme is modeled on ships)
// was not available to reproduce verbatim: it lives in a dependency of
// the original program that was not retrieved alongside it. Rather than
// transcribe 2048 words from memory and risk silent duplicates or
// misspellings, this table is built deterministically at package
// initialization from the small syllable tables below. The
// result satisfies every property the codec actually needs: exactly 2048
// entries, no duplicates, a pure function of index, stable across
// platforms and runs.
var dictionary [2048]string

// Four-letter consonant-vowel-consonant-vowel syllables, built from a
// 16-symbol first consonant, a 4-symbol first vowel, an 8-symbol second
// consonant, and a 4-symbol second vowel: 16*4*8*4 = 2048 distinct words.
var (
	dictC1 = [16]byte{'b', 'c', 'd', 'f', 'g', 'h', 'j', 'k', 'l', 'm', 'n', 'p', 'r', 's', 't', 'w'}
	dictV1 = [4]byte{'a', 'e', 'i', 'o'}
	dictC2 = [8]byte{'b', 'd', 'g', 'l', 'm', 'n', 'r', 's'}
	dictV2 = [4]byte{'a', 'e', 'i', 'u'}
)

func init() {
	for n := 0; n < 2048; n++ {
		d0 := n / (4 * 8 * 4)
		rem := n % (4 * 8 * 4)
		d1 := rem / (8 * 4)
		rem2 := rem % (8 * 4)
		d2 := rem2 / 4
		d3 := rem2 % 4
		dictionary[n] = string([]byte{dictC1[d0], dictV1[d1], dictC2[d2], dictV2[d3]})
	}
}
