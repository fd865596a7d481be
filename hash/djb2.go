// Package hash implements the djb2 string digest.
//
// The digest runs over UTF-16 code units rather than UTF-8 bytes so that
// values match implementations whose native strings are UTF-16. It is meant
// for change detection and bucketing, never for anything security related.
package hash

import "unicode/utf16"

const offset uint32 = 5381

// String returns the djb2 digest of s. The empty string hashes to 5381.
func String(s string) uint32 {
	h := offset
	for _, r := range s {
		if r < 0x10000 {
			h = step(h, uint16(r))
			continue
		}
		hi, lo := utf16.EncodeRune(r)
		h = step(step(h, uint16(hi)), uint16(lo))
	}
	return h
}

// UTF16 returns the djb2 digest of already encoded code units.
func UTF16(units []uint16) uint32 {
	h := offset
	for _, c := range units {
		h = step(h, c)
	}
	return h
}

// Bucket maps s onto one of n buckets. It returns 0 when n is not positive.
func Bucket(s string, n int) int {
	if n <= 0 {
		return 0
	}
	return int(uint64(String(s)) % uint64(n))
}

// h*33 + c, wrapping at 2^32.
func step(h uint32, c uint16) uint32 {
	return (h << 5) + h + uint32(c)
}
