package errortypes

import (
	"fmt"
	"strconv"
)

// InvalidAlphabetByte should be used when a consent string contains a byte outside of the
// URL-safe base64 alphabet.
//
// The offset is zero-based and counts input bytes, not decoded bytes.
type InvalidAlphabetByte struct {
	Offset int
	Byte   byte
}

func (err *InvalidAlphabetByte) Error() string {
	return fmt.Sprintf("invalid byte %d at offset %d", err.Byte, err.Offset)
}

func (err *InvalidAlphabetByte) Code() int {
	return InvalidAlphabetByteErrorCode
}

func (err *InvalidAlphabetByte) Severity() Severity {
	return SeverityFatal
}

// ReadFailure should be used when the bit reader could not satisfy a read while decoding a section.
//
// The Cause is either io.ErrUnexpectedEOF (the string ended too early) or an *InvalidAlphabetByte.
type ReadFailure struct {
	Cause error
}

func (err *ReadFailure) Error() string {
	return "unable to read section: " + err.Cause.Error()
}

func (err *ReadFailure) Unwrap() error {
	return err.Cause
}

func (err *ReadFailure) Code() int {
	return ReadFailureErrorCode
}

func (err *ReadFailure) Severity() Severity {
	return SeverityFatal
}

// UnknownSegmentVersion should be used when the leading version field of a core segment holds a
// value the section format does not accept. Every bit offset after it would be meaningless.
type UnknownSegmentVersion struct {
	SegmentVersion uint8
}

func (err *UnknownSegmentVersion) Error() string {
	return "unknown segment version " + strconv.Itoa(int(err.SegmentVersion))
}

func (err *UnknownSegmentVersion) Code() int {
	return UnknownSegmentVersionErrorCode
}

func (err *UnknownSegmentVersion) Severity() Severity {
	return SeverityFatal
}

// UnknownSegmentType should be used when an optional segment declares a segment type the
// section format does not define.
type UnknownSegmentType struct {
	SegmentType uint8
}

func (err *UnknownSegmentType) Error() string {
	return "unknown segment type " + strconv.Itoa(int(err.SegmentType))
}

func (err *UnknownSegmentType) Code() int {
	return UnknownSegmentTypeErrorCode
}

func (err *UnknownSegmentType) Severity() Severity {
	return SeverityFatal
}

// InvalidHeader should be used when the GPP header segment cannot be decoded, or when it
// disagrees with the number of sections that follow it.
type InvalidHeader struct {
	Message string
}

func (err *InvalidHeader) Error() string {
	return err.Message
}

func (err *InvalidHeader) Code() int {
	return InvalidHeaderErrorCode
}

func (err *InvalidHeader) Severity() Severity {
	return SeverityFatal
}

// ConsentTooLong should be used when a GPP string exceeds the configured maximum length.
type ConsentTooLong struct {
	Length int
	Max    int
}

func (err *ConsentTooLong) Error() string {
	return fmt.Sprintf("consent string of %d bytes exceeds the limit of %d", err.Length, err.Max)
}

func (err *ConsentTooLong) Code() int {
	return ConsentTooLongErrorCode
}

func (err *ConsentTooLong) Severity() Severity {
	return SeverityFatal
}

// BadInput should be used when a request parameter other than the GPP string itself is malformed.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// UnsupportedSection is a warning raised for sections listed in the GPP header which have no decoder.
//
// The remaining sections of the string are still decoded.
type UnsupportedSection struct {
	SectionID int
}

func (err *UnsupportedSection) Error() string {
	return "no decoder for section id " + strconv.Itoa(err.SectionID)
}

func (err *UnsupportedSection) Code() int {
	return UnsupportedSectionWarningCode
}

func (err *UnsupportedSection) Severity() Severity {
	return SeverityWarning
}

// Warning is a generic non-fatal error.
type Warning struct {
	Message     string
	WarningCode int
}

func (err *Warning) Error() string {
	return err.Message
}

func (err *Warning) Code() int {
	return err.WarningCode
}

func (err *Warning) Severity() Severity {
	return SeverityWarning
}
