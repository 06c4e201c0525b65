package errortypes

import "github.com/pkg/errors"

// Defines numeric codes for well-known errors.
const (
	UnknownErrorCode             = 999
	InvalidAlphabetByteErrorCode = iota
	ReadFailureErrorCode
	UnknownSegmentVersionErrorCode
	UnknownSegmentTypeErrorCode
	InvalidHeaderErrorCode
	ConsentTooLongErrorCode
	BadInputErrorCode
)

// Defines numeric codes for well-known warnings.
const (
	UnknownWarningCode            = 10999
	UnsupportedSectionWarningCode = iota + 10000
	MissingSectionWarningCode
)

// Coder provides an error or warning code with severity.
type Coder interface {
	Code() int
	Severity() Severity
}

// ReadCode returns the error or warning code of err or of the cause it wraps, or UnknownErrorCode if unavailable.
func ReadCode(err error) int {
	if e, ok := errors.Cause(err).(Coder); ok {
		return e.Code()
	}
	return UnknownErrorCode
}
