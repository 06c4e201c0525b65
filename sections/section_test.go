package sections

import (
	"errors"
	"io"
	"testing"

	"github.com/prebid/prebid-gpp/bitstream"
	"github.com/prebid/prebid-gpp/errortypes"
	"github.com/stretchr/testify/assert"
)

// readByteInto returns a segment decoder storing the next 8 bits in dst.
func readByteInto(dst *[]uint8) SegmentDecoder {
	return func(r bitstream.BitReader) error {
		v, err := bitstream.Uint8(r, 8)
		if err != nil {
			return err
		}
		*dst = append(*dst, v)
		return nil
	}
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		description    string
		in             string
		expectedCore   []uint8
		expectedFirst  []uint8
		expectedSecond []uint8
		expectedErr    error
	}{
		{
			description:  "Core only",
			in:           "AB",
			expectedCore: []uint8{0x00},
		},
		{
			description:   "Core and segment type 1",
			in:            "AB.IAA",
			expectedCore:  []uint8{0x00},
			expectedFirst: []uint8{0x00},
		},
		{
			description:    "Repeated and out of order segments",
			in:             "AB.QAA.IAA.QAA",
			expectedCore:   []uint8{0x00},
			expectedFirst:  []uint8{0x00},
			expectedSecond: []uint8{0x00, 0x00},
		},
		{
			description: "Unknown segment type",
			in:          "AB.gAA",
			expectedErr: &errortypes.UnknownSegmentType{SegmentType: 4},
		},
		{
			description: "Empty optional segment",
			in:          "AB.",
			expectedErr: &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF},
		},
		{
			description: "Truncated optional segment",
			in:          "AB.I",
			expectedErr: &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF},
		},
		{
			description: "Empty core",
			in:          "",
			expectedErr: &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF},
		},
		{
			description: "Invalid byte in core",
			in:          "A!",
			expectedErr: &errortypes.ReadFailure{Cause: &errortypes.InvalidAlphabetByte{Offset: 1, Byte: '!'}},
		},
	}

	for _, test := range testCases {
		var core, first, second []uint8
		err := Decode(test.in, readByteInto(&core), map[uint8]SegmentDecoder{
			1: readByteInto(&first),
			2: readByteInto(&second),
		})

		assert.Equal(t, test.expectedErr, err, test.description)
		if test.expectedErr == nil {
			assert.Equal(t, test.expectedCore, core, test.description)
			assert.Equal(t, test.expectedFirst, first, test.description)
			assert.Equal(t, test.expectedSecond, second, test.description)
		}
	}
}

func TestDecodeKeepsSectionErrors(t *testing.T) {
	err := Decode("AB", func(r bitstream.BitReader) error {
		return &errortypes.UnknownSegmentVersion{SegmentVersion: 9}
	}, nil)

	assert.Equal(t, &errortypes.UnknownSegmentVersion{SegmentVersion: 9}, err)
}

func TestReadVersion(t *testing.T) {
	testCases := []struct {
		description     string
		in              string
		accepted        []uint8
		expectedVersion uint8
		expectedErr     error
	}{
		{
			description:     "Accepted version",
			in:              "C",
			accepted:        []uint8{2},
			expectedVersion: 2,
		},
		{
			description:     "One of several accepted versions",
			in:              "B",
			accepted:        []uint8{1, 2},
			expectedVersion: 1,
		},
		{
			description: "Rejected version",
			in:          "D",
			accepted:    []uint8{1, 2},
			expectedErr: &errortypes.UnknownSegmentVersion{SegmentVersion: 3},
		},
		{
			description: "No input",
			in:          "",
			accepted:    []uint8{2},
			expectedErr: &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF},
		},
	}

	for _, test := range testCases {
		version, err := ReadVersion(bitstream.NewReaderString(test.in), test.accepted...)
		assert.Equal(t, test.expectedErr, err, test.description)
		assert.Equal(t, test.expectedVersion, version, test.description)
	}
}

func TestReadFailure(t *testing.T) {
	assert.Nil(t, ReadFailure(nil))

	plain := errors.New("plain")
	assert.Equal(t, &errortypes.ReadFailure{Cause: plain}, ReadFailure(plain))

	already := &errortypes.ReadFailure{Cause: io.ErrUnexpectedEOF}
	assert.Same(t, already, ReadFailure(already))

	segmentType := &errortypes.UnknownSegmentType{SegmentType: 7}
	assert.Same(t, segmentType, ReadFailure(segmentType))
}

func TestIDString(t *testing.T) {
	assert.Equal(t, "tcfeuv2", TcfEuV2.String())
	assert.Equal(t, "tcfcav1", TcfCaV1.String())
	assert.Equal(t, "uspv1", UspV1.String())
	assert.Equal(t, "42", ID(42).String())
}
