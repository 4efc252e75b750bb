// Package skey implements the keyed-hash derivation ("SKey") codec: a
// deterministic mapping from (name, sequence, master) to a fixed-size
// digest, and from that digest to the five output encodings (words, hex,
// base64, decimal, camel) an entry's mode selects between.
package skey

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Digest is the result of hashing one entry's keying material. It carries
// both halves of the underlying SHA-1 sum: the eight-byte primary key
// material used by every encoding, and the twelve-byte reservoir kept for
// encodings that may grow to need it.
type Digest struct {
	k8  [8]byte
	r12 [12]byte
}

// Derive computes the digest for (name, seq, master). The three fields are
// concatenated in the exact order "seq name master", space-separated, as
// UTF-8 bytes, then hashed with unkeyed SHA-1. This byte layout is a
// compatibility contract: any reordering changes every derived password.
func Derive(name string, seq int, master string) Digest {
	buf := fmt.Appendf(nil, "%d %s %s", seq, name, master)
	sum := sha1.Sum(buf)
	var d Digest
	copy(d.k8[:], sum[:8])
	copy(d.r12[:], sum[8:20])
	return d
}

// K8 returns the eight-byte primary key material.
func (d Digest) K8() [8]byte { return d.k8 }

// R12 returns the twelve-byte secondary reservoir.
func (d Digest) R12() [12]byte { return d.r12 }

// indices splits K8 plus a trailing two-bit RFC 2289 checksum into six
// 11-bit indices in the range [0, 2048).
func (d Digest) indices() [6]int {
	var buf [9]byte
	copy(buf[:8], d.k8[:])
	buf[8] = checksum2(d.k8) << 6

	var out [6]int
	for i := range out {
		out[i] = bits11(buf[:], i*11)
	}
	return out
}

// checksum2 computes the two-bit parity RFC 2289 appends to the 64 data
// bits before splitting into six 11-bit groups: the sum, modulo four, of
// every two-bit chunk of the input.
func checksum2(data [8]byte) byte {
	var sum uint32
	for _, b := range data {
		sum += uint32(b>>6&3) + uint32(b>>4&3) + uint32(b>>2&3) + uint32(b&3)
	}
	return byte(sum & 3)
}

// bits11 reads 11 bits starting at bit offset start (MSB-first) from buf.
func bits11(buf []byte, start int) int {
	val := 0
	for i := 0; i < 11; i++ {
		bit := start + i
		by := buf[bit/8]
		shift := 7 - bit%8
		val = (val << 1) | int(by>>shift&1)
	}
	return val
}

// Words returns the six lower-case dictionary words the RFC 2289 mapping
// selects for this digest.
func (d Digest) Words() [6]string {
	idx := d.indices()
	var words [6]string
	for i, n := range idx {
		words[i] = dictionary[n]
	}
	return words
}

// Decimal returns the same six 11-bit groups as base-2048 decimal digits.
func (d Digest) Decimal() [6]int {
	return d.indices()
}

// Hex returns the lower-case hex encoding of K8 (16 characters).
func (d Digest) Hex() string {
	return hex.EncodeToString(d.k8[:])
}

// Base64 returns the standard-alphabet, unpadded base64 encoding of K8
// (11 characters).
func (d Digest) Base64() string {
	return base64.RawStdEncoding.EncodeToString(d.k8[:])
}

// Camel capitalizes the first letter of each dictionary word and joins
// them with no separator.
func (d Digest) Camel() string {
	words := d.Words()
	var b strings.Builder
	for _, w := range words {
		if w == "" {
			continue
		}
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(w[1:])
	}
	return b.String()
}

// decimalStrings renders each of Decimal's six numbers (0 to 2047) as a
// decimal string; the Decimal mode joins them with its separator before
// prefix assembly.
func (d Digest) decimalStrings() [6]string {
	nums := d.Decimal()
	var out [6]string
	for i, n := range nums {
		out[i] = strconv.Itoa(n)
	}
	return out
}
