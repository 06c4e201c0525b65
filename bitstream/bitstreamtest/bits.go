// Package bitstreamtest builds base64url segments bit by bit for tests.
package bitstreamtest

import (
	"strconv"
	"strings"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

// FromBits encodes a string of '0' and '1' characters. Spaces are ignored so fields can be
// kept apart for readability. The last symbol is padded with zero bits.
func FromBits(bits string) string {
	bits = strings.ReplaceAll(bits, " ", "")
	if rem := len(bits) % 6; rem != 0 {
		bits += strings.Repeat("0", 6-rem)
	}

	var b strings.Builder
	for i := 0; i < len(bits); i += 6 {
		v, err := strconv.ParseUint(bits[i:i+6], 2, 8)
		if err != nil {
			panic(err)
		}
		b.WriteByte(alphabet[v])
	}
	return b.String()
}

// Uint renders v as a field of the given width, most significant bit first.
func Uint(v uint64, width int) string {
	s := strconv.FormatUint(v, 2)
	if len(s) > width {
		panic("value " + s + " does not fit in " + strconv.Itoa(width) + " bits")
	}
	return strings.Repeat("0", width-len(s)) + s
}
