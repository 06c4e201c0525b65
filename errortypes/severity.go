package errortypes

import "github.com/pkg/errors"

// Severity represents the severity level of a decoding error.
type Severity int

const (
	// SeverityUnknown represents an unknown severity level.
	SeverityUnknown Severity = iota

	// SeverityFatal represents a decoding error which prevents a section from being returned.
	SeverityFatal

	// SeverityWarning represents a non-fatal decoding error where a section was skipped
	// but the rest of the string was still decoded.
	SeverityWarning
)

func isFatal(err error) bool {
	s, ok := errors.Cause(err).(Coder)
	return !ok || s.Severity() == SeverityFatal
}

// IsWarning returns true if an error, or the cause it wraps, is labeled with a Severity of SeverityWarning
func IsWarning(err error) bool {
	s, ok := errors.Cause(err).(Coder)
	return ok && s.Severity() == SeverityWarning
}

// FatalOnly returns a new error list with only the fatal severity errors.
func FatalOnly(errs []error) []error {
	errsFatal := make([]error, 0, len(errs))

	for _, err := range errs {
		if isFatal(err) {
			errsFatal = append(errsFatal, err)
		}
	}

	return errsFatal
}

// WarningOnly returns a new error list with only the warning severity errors.
func WarningOnly(errs []error) []error {
	errsWarning := make([]error, 0, len(errs))

	for _, err := range errs {
		if IsWarning(err) {
			errsWarning = append(errsWarning, err)
		}
	}

	return errsWarning
}
