// Package sections holds the decoding protocol shared by every GPP section format: a core segment
// gated on its version, followed by optional segments selected by a segment type.
package sections

import (
	"slices"
	"strings"

	"github.com/prebid/prebid-gpp/bitstream"
	"github.com/prebid/prebid-gpp/errortypes"
)

const (
	// SegmentSeparator separates the segments of one section.
	SegmentSeparator = "."

	versionBits     = 6
	segmentTypeBits = 3
)

// Section is a decoded GPP section.
type Section interface {
	SectionID() ID
}

// SegmentDecoder decodes an optional segment whose segment type has already been consumed.
type SegmentDecoder func(r bitstream.BitReader) error

// Decode runs core over the first segment of section and, for every following segment, reads its
// segment type and runs the matching entry of optional. Decoding stops at the first error, which
// is returned as one of the errortypes failures.
func Decode(section string, core SegmentDecoder, optional map[uint8]SegmentDecoder) error {
	segments := strings.Split(section, SegmentSeparator)

	if err := core(bitstream.NewReaderString(segments[0])); err != nil {
		return ReadFailure(err)
	}

	for _, segment := range segments[1:] {
		r := bitstream.NewReaderString(segment)
		segmentType, err := bitstream.Uint8(r, segmentTypeBits)
		if err != nil {
			return ReadFailure(err)
		}
		decode, ok := optional[segmentType]
		if !ok {
			return &errortypes.UnknownSegmentType{SegmentType: segmentType}
		}
		if err := decode(r); err != nil {
			return ReadFailure(err)
		}
	}
	return nil
}

// ReadVersion reads the 6 bit version which opens a core segment and checks it against the
// versions the section format accepts.
func ReadVersion(r bitstream.BitReader, accepted ...uint8) (uint8, error) {
	version, err := bitstream.Uint8(r, versionBits)
	if err != nil {
		return 0, ReadFailure(err)
	}
	if !slices.Contains(accepted, version) {
		return 0, &errortypes.UnknownSegmentVersion{SegmentVersion: version}
	}
	return version, nil
}

// ReadFailure wraps a bit reader error in an *errortypes.ReadFailure. Errors which already are
// section decoding failures are returned as they are.
func ReadFailure(err error) error {
	switch err.(type) {
	case nil:
		return nil
	case *errortypes.ReadFailure, *errortypes.UnknownSegmentVersion, *errortypes.UnknownSegmentType:
		return err
	}
	return &errortypes.ReadFailure{Cause: err}
}
