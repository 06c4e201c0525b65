// Package base64url decodes the URL-safe base64 alphabet used by GPP strings.
//
// GPP strings never carry padding and their sections frequently end on a bit
// boundary which is not a multiple of 8, so the standard library decoders
// (which insist on whole quanta) cannot be used directly.
package base64url

import (
	"io"

	"github.com/prebid/prebid-gpp/errortypes"
)

const invalidValue int8 = -1

// decodeTable maps an input byte to its 6-bit value, or invalidValue.
// It is written once at package initialization and only read afterwards.
var decodeTable = makeDecodeTable()

func makeDecodeTable() [256]int8 {
	var table [256]int8
	for i := range table {
		table[i] = invalidValue
	}
	for i := 0; i < 26; i++ {
		table['A'+i] = int8(i)
		table['a'+i] = int8(i + 26)
	}
	for i := 0; i < 10; i++ {
		table['0'+i] = int8(i + 52)
	}
	table['-'] = 62
	table['_'] = 63
	return table
}

// Reader pulls decoded bytes out of a borrowed base64url encoded slice.
//
// Only the low `bits` bits of acc are meaningful; the rest are always zero.
type Reader struct {
	input []byte
	pos   int
	acc   uint32
	bits  uint8
}

// NewReader returns a Reader over input. The slice is not copied and must not be modified
// while the Reader is in use.
func NewReader(input []byte) *Reader {
	return &Reader{input: input}
}

// Read implements io.Reader.
//
// When the input ends with 1 to 7 bits that do not fill a byte, they are returned
// left-justified as a final byte. An input byte outside of the alphabet fails with an
// *errortypes.InvalidAlphabetByte; bytes decoded before it are still reported in n.
func (r *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		for r.bits < 8 && r.pos < len(r.input) {
			b := r.input[r.pos]
			v := decodeTable[b]
			if v == invalidValue {
				return n, &errortypes.InvalidAlphabetByte{Offset: r.pos, Byte: b}
			}
			r.pos++
			r.acc = r.acc<<6 | uint32(v)
			r.bits += 6
		}

		if r.bits >= 8 {
			r.bits -= 8
			p[n] = byte(r.acc >> r.bits)
			r.acc &= 1<<r.bits - 1
			n++
			continue
		}

		if r.bits > 0 {
			// input is exhausted here
			p[n] = byte(r.acc << (8 - r.bits))
			r.acc = 0
			r.bits = 0
			n++
		}
		break
	}

	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// DecodeString decodes all of s at once.
func DecodeString(s string) ([]byte, error) {
	out := make([]byte, 0, DecodedLen(len(s)))
	r := NewReader([]byte(s))
	buf := make([]byte, 64)
	for {
		n, err := r.Read(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// DecodedLen returns the number of bytes produced by n input symbols, counting
// a trailing partial byte.
func DecodedLen(n int) int {
	return (n*6 + 7) / 8
}
