// Package bitstream reads MSB-first bit fields out of base64url encoded GPP segments.
package bitstream

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/prebid/prebid-gpp/base64url"
)

var (
	// ErrExcessiveBits is returned when a read asks for more bits than the target type holds.
	ErrExcessiveBits = errors.New("excessive bits for type read")
	// ErrSignedWidth is returned when a signed read asks for less than one bit.
	ErrSignedWidth = errors.New("signed reads need at least 1 bit for sign")
)

// BitReader is the capability every section decoder depends on.
//
// Reads are exact or fail. Running out of input is reported as io.ErrUnexpectedEOF;
// any other error comes from the underlying alphabet decoder.
type BitReader interface {
	ReadBit() (bool, error)
	ReadUnsigned(bits uint) (uint64, error)
	ReadSigned(bits uint) (int64, error)
	ReadBytes(buf []byte) error
	Skip(bits uint) error
	ByteAligned() bool
	ByteAlign()
}

// Reader implements BitReader on top of a base64url.Reader, pulling one decoded byte at a time.
type Reader struct {
	src *base64url.Reader

	// value holds the pending byte; only its low `bits` bits are unread.
	value byte
	bits  uint
}

// NewReader returns a Reader over the base64url encoded input.
func NewReader(input []byte) *Reader {
	return &Reader{src: base64url.NewReader(input)}
}

// NewReaderString returns a Reader over the base64url encoded string s.
func NewReaderString(s string) *Reader {
	return NewReader([]byte(s))
}

func (r *Reader) nextByte() (byte, error) {
	var b [1]byte
	n, err := r.src.Read(b[:])
	if n == 1 {
		return b[0], nil
	}
	if err == nil || err == io.EOF {
		return 0, io.ErrUnexpectedEOF
	}
	return 0, err
}

func (r *Reader) trim() {
	if r.bits == 0 {
		r.value = 0
		return
	}
	r.value &= 1<<r.bits - 1
}

// ReadBit reads a single bit.
func (r *Reader) ReadBit() (bool, error) {
	if r.bits == 0 {
		b, err := r.nextByte()
		if err != nil {
			return false, err
		}
		r.value = b
		r.bits = 8
	}

	r.bits--
	bit := r.value>>r.bits&1 == 1
	r.trim()
	return bit, nil
}

// ReadUnsigned reads an unsigned integer of the given width, most significant bit first.
func (r *Reader) ReadUnsigned(bits uint) (uint64, error) {
	if bits > 64 {
		return 0, ErrExcessiveBits
	}

	var value uint64
	for remaining := bits; remaining > 0; {
		if r.bits == 0 {
			b, err := r.nextByte()
			if err != nil {
				return 0, err
			}
			r.value = b
			r.bits = 8
		}

		take := min(remaining, r.bits)
		shift := r.bits - take
		chunk := uint64(r.value>>shift) & (1<<take - 1)

		value = value<<take | chunk
		r.bits -= take
		r.trim()
		remaining -= take
	}

	return value, nil
}

// ReadSigned reads a sign bit followed by bits-1 magnitude bits.
//
// The sign bit weighs -2^(bits-1), which makes the result the two's complement
// interpretation of the whole field.
func (r *Reader) ReadSigned(bits uint) (int64, error) {
	if bits < 1 {
		return 0, ErrSignedWidth
	}
	if bits > 64 {
		return 0, ErrExcessiveBits
	}

	negative, err := r.ReadBit()
	if err != nil {
		return 0, err
	}
	magnitude, err := r.ReadUnsigned(bits - 1)
	if err != nil {
		return 0, err
	}

	if negative {
		return int64(magnitude) + (-1 << (bits - 1)), nil
	}
	return int64(magnitude), nil
}

// Skip discards the given number of bits.
func (r *Reader) Skip(bits uint) error {
	if bits == 0 {
		return nil
	}

	if r.bits > 0 {
		take := min(bits, r.bits)
		r.bits -= take
		r.trim()
		bits -= take
	}

	for ; bits >= 8; bits -= 8 {
		if _, err := r.nextByte(); err != nil {
			return err
		}
	}

	if bits > 0 {
		b, err := r.nextByte()
		if err != nil {
			return err
		}
		r.value = b
		r.bits = 8 - bits
		r.trim()
	}

	return nil
}

// ReadBytes fills buf. When the reader sits on a byte boundary the decoded bytes are copied
// straight from the alphabet decoder.
func (r *Reader) ReadBytes(buf []byte) error {
	if r.bits == 0 {
		if _, err := io.ReadFull(r.src, buf); err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}
		return nil
	}

	for i := range buf {
		v, err := r.ReadUnsigned(8)
		if err != nil {
			return err
		}
		buf[i] = byte(v)
	}
	return nil
}

// ReadUint16 reads two whole bytes in the given byte order.
func (r *Reader) ReadUint16(order binary.ByteOrder) (uint16, error) {
	var buf [2]byte
	if err := r.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return order.Uint16(buf[:]), nil
}

// ReadUint32 reads four whole bytes in the given byte order.
func (r *Reader) ReadUint32(order binary.ByteOrder) (uint32, error) {
	var buf [4]byte
	if err := r.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return order.Uint32(buf[:]), nil
}

// ReadUint64 reads eight whole bytes in the given byte order.
func (r *Reader) ReadUint64(order binary.ByteOrder) (uint64, error) {
	var buf [8]byte
	if err := r.ReadBytes(buf[:]); err != nil {
		return 0, err
	}
	return order.Uint64(buf[:]), nil
}

// ByteAligned reports whether no bits of a partially consumed byte are pending.
func (r *Reader) ByteAligned() bool {
	return r.bits == 0
}

// ByteAlign drops the unread bits of the pending byte, if any.
func (r *Reader) ByteAlign() {
	r.value = 0
	r.bits = 0
}
