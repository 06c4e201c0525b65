package bitstream

import (
	"errors"
	"strings"
)

// ErrFibonacciOverflow is returned when a Fibonacci coded integer does not fit in 64 bits.
var ErrFibonacciOverflow = errors.New("fibonacci coded integer overflows 64 bits")

const (
	datetimeBits = 36
	letterBits   = 6
	decisPerOne  = 10
)

// Bool reads a single bit flag.
func Bool(r BitReader) (bool, error) {
	return r.ReadBit()
}

// Uint8 reads an unsigned field of at most 8 bits.
func Uint8(r BitReader, bits uint) (uint8, error) {
	if bits > 8 {
		return 0, ErrExcessiveBits
	}
	v, err := r.ReadUnsigned(bits)
	return uint8(v), err
}

// Uint16 reads an unsigned field of at most 16 bits.
func Uint16(r BitReader, bits uint) (uint16, error) {
	if bits > 16 {
		return 0, ErrExcessiveBits
	}
	v, err := r.ReadUnsigned(bits)
	return uint16(v), err
}

// Uint32 reads an unsigned field of at most 32 bits.
func Uint32(r BitReader, bits uint) (uint32, error) {
	if bits > 32 {
		return 0, ErrExcessiveBits
	}
	v, err := r.ReadUnsigned(bits)
	return uint32(v), err
}

// Datetime reads a 36 bit count of deciseconds since the Unix epoch and returns whole seconds.
func Datetime(r BitReader) (uint64, error) {
	v, err := r.ReadUnsigned(datetimeBits)
	if err != nil {
		return 0, err
	}
	return v / decisPerOne, nil
}

// Letters reads n 6 bit characters, where 0 is 'A' and 25 is 'Z'.
func Letters(r BitReader, n int) (string, error) {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		v, err := r.ReadUnsigned(letterBits)
		if err != nil {
			return "", err
		}
		b.WriteRune(rune('A' + v))
	}
	return b.String(), nil
}

// Fibonacci reads a Fibonacci (Zeckendorf) coded integer. Bit i carries the weight of the
// i-th Fibonacci number starting at 1, 2, 3, 5, ... and the code ends on two consecutive set bits.
func Fibonacci(r BitReader) (uint64, error) {
	var (
		value      uint64
		prev, curr uint64 = 1, 1 // curr is the weight of the next bit
		lastSet    bool
	)

	for {
		bit, err := r.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit && lastSet {
			return value, nil
		}
		if bit {
			if value+curr < value {
				return 0, ErrFibonacciOverflow
			}
			value += curr
		}
		lastSet = bit

		if prev+curr < curr {
			// The next weight cannot be represented; only the terminator may follow.
			bit, err := r.ReadBit()
			if err != nil {
				return 0, err
			}
			if bit && lastSet {
				return value, nil
			}
			return 0, ErrFibonacciOverflow
		}
		prev, curr = curr, prev+curr
	}
}
