package idset

import (
	"errors"
	"io"
	"math"

	"github.com/prebid/prebid-gpp/bitstream"
)

const (
	countBits = 12
	idBits    = 16
)

// ErrIDOverflow is returned when a Fibonacci coded range reaches past the largest 16 bit identifier.
var ErrIDOverflow = errors.New("identifier does not fit in 16 bits")

// Range is one entry of a keyed array of ranges, such as a publisher restriction
// (Key is the purpose and RangeType the restriction type).
type Range struct {
	Key       uint8
	RangeType uint8
	IDs       IDSet
}

// ReadFixedBitfield reads n bits. Bit i, counting from 1 at the most significant bit read,
// marks identifier i as a member.
func ReadFixedBitfield(r bitstream.BitReader, n int) (IDSet, error) {
	var b Builder
	for i := 1; i <= n; i++ {
		set, err := r.ReadBit()
		if err != nil {
			return IDSet{}, err
		}
		if set {
			b.Add(uint16(i))
		}
	}
	return b.Build(), nil
}

// ReadIntegerRange reads a 12 bit entry count followed by the entries. Each entry is a group flag
// and a 16 bit identifier; groups carry a second 16 bit identifier closing the inclusive interval.
func ReadIntegerRange(r bitstream.BitReader) (IDSet, error) {
	n, err := bitstream.Uint16(r, countBits)
	if err != nil {
		return IDSet{}, err
	}

	var b Builder
	for i := uint16(0); i < n; i++ {
		isGroup, err := r.ReadBit()
		if err != nil {
			return IDSet{}, err
		}
		start, err := bitstream.Uint16(r, idBits)
		if err != nil {
			return IDSet{}, err
		}
		if !isGroup {
			b.Add(start)
			continue
		}
		end, err := bitstream.Uint16(r, idBits)
		if err != nil {
			return IDSet{}, err
		}
		b.AddRange(start, end)
	}
	return b.Build(), nil
}

// ReadOptimizedIntegerRange reads a 16 bit maximum identifier and a flag choosing between an
// integer range and a bitfield of that many bits. TCF vendor sections are encoded this way.
func ReadOptimizedIntegerRange(r bitstream.BitReader) (IDSet, error) {
	maxID, err := bitstream.Uint16(r, idBits)
	if err != nil {
		return IDSet{}, err
	}
	isRange, err := r.ReadBit()
	if err != nil {
		return IDSet{}, err
	}
	if isRange {
		return ReadIntegerRange(r)
	}
	return ReadFixedBitfield(r, int(maxID))
}

// ReadFibonacciRange reads a 12 bit entry count followed by entries whose identifiers are
// Fibonacci coded offsets. A single identifier is an offset from the previous identifier; a group
// is an offset for its start followed by its length.
func ReadFibonacciRange(r bitstream.BitReader) (IDSet, error) {
	n, err := bitstream.Uint16(r, countBits)
	if err != nil {
		return IDSet{}, err
	}

	var (
		b    Builder
		last uint64
	)
	for i := uint16(0); i < n; i++ {
		isGroup, err := r.ReadBit()
		if err != nil {
			return IDSet{}, err
		}
		offset, err := bitstream.Fibonacci(r)
		if err != nil {
			return IDSet{}, err
		}
		start := last + offset
		if offset > math.MaxUint16 || start > math.MaxUint16 {
			return IDSet{}, ErrIDOverflow
		}
		if !isGroup {
			b.Add(uint16(start))
			last = start
			continue
		}

		length, err := bitstream.Fibonacci(r)
		if err != nil {
			return IDSet{}, err
		}
		end := start + length
		if length > math.MaxUint16 || end > math.MaxUint16 {
			return IDSet{}, ErrIDOverflow
		}
		b.AddRange(uint16(start), uint16(end))
		last = end
	}
	return b.Build(), nil
}

// ReadOptimizedRange reads a 16 bit maximum identifier and a flag choosing between a Fibonacci
// range and a bitfield of that many bits.
func ReadOptimizedRange(r bitstream.BitReader) (IDSet, error) {
	maxID, err := bitstream.Uint16(r, idBits)
	if err != nil {
		return IDSet{}, err
	}
	isRange, err := r.ReadBit()
	if err != nil {
		return IDSet{}, err
	}
	if isRange {
		return ReadFibonacciRange(r)
	}
	return ReadFixedBitfield(r, int(maxID))
}

// ReadArrayOfRanges reads a 12 bit entry count followed by entries made of a keyBits wide key,
// a typeBits wide type and an integer range.
//
// Producers are known to cut trailing entries short. Running out of input inside an entry stops
// the collection and returns the complete entries read so far; running out of input on the count
// is an error, since nothing distinguishes it from a missing field.
func ReadArrayOfRanges(r bitstream.BitReader, keyBits, typeBits uint) ([]Range, error) {
	n, err := bitstream.Uint16(r, countBits)
	if err != nil {
		return nil, err
	}

	ranges := make([]Range, 0, n)
	for i := uint16(0); i < n; i++ {
		entry, err := readRange(r, keyBits, typeBits)
		if errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, entry)
	}
	return ranges, nil
}

func readRange(r bitstream.BitReader, keyBits, typeBits uint) (Range, error) {
	key, err := bitstream.Uint8(r, keyBits)
	if err != nil {
		return Range{}, err
	}
	rangeType, err := bitstream.Uint8(r, typeBits)
	if err != nil {
		return Range{}, err
	}
	ids, err := ReadIntegerRange(r)
	if err != nil {
		return Range{}, err
	}
	return Range{Key: key, RangeType: rangeType, IDs: ids}, nil
}
