package gpp

import (
	"github.com/pkg/errors"

	"github.com/prebid/prebid-gpp/errortypes"
	"github.com/prebid/prebid-gpp/logger"
	"github.com/prebid/prebid-gpp/metrics"
	"github.com/prebid/prebid-gpp/sections"
)

// Result holds everything decoded from one GPP string. Errors holds the sid list warnings followed
// by one entry per section which could not be decoded; the latter wrap the errortypes failure
// reported by the section decoder.
type Result struct {
	SectionIDs []sections.ID
	Sections   map[sections.ID]sections.Section
	Errors     []error
}

// Decoder decodes complete GPP strings and records the outcome of every section.
type Decoder struct {
	maxLength     int
	metricsEngine metrics.MetricsEngine
}

// NewDecoder returns a Decoder rejecting strings longer than maxLength bytes. A non positive
// maxLength disables the check.
func NewDecoder(maxLength int, metricsEngine metrics.MetricsEngine) *Decoder {
	if metricsEngine == nil {
		metricsEngine = &metrics.NilMetricsEngine{}
	}
	return &Decoder{
		maxLength:     maxLength,
		metricsEngine: metricsEngine,
	}
}

// Decode parses s and decodes every section it carries. When sids is given, every section id it
// lists but the header does not adds a warning to the result.
//
// The returned error is only set when the string as a whole is unusable: it is too long or its
// header is invalid. Use errors.Cause to reach the errortypes value.
func (d *Decoder) Decode(s string, sids ...sections.ID) (*Result, error) {
	if d.maxLength > 0 && len(s) > d.maxLength {
		return nil, &errortypes.ConsentTooLong{Length: len(s), Max: d.maxLength}
	}

	g, err := Parse(s)
	if err != nil {
		return nil, errors.Wrap(err, "parse gpp string")
	}

	result := &Result{
		SectionIDs: g.SectionIDs(),
		Sections:   make(map[sections.ID]sections.Section, len(g.sectionIDs)),
		Errors:     CheckSIDList(g, sids),
	}
	for _, id := range result.SectionIDs {
		section, err := g.DecodeSection(id)
		d.metricsEngine.RecordSectionDecode(metrics.SectionLabels{
			Section: id.String(),
			Status:  decodeStatus(err),
		})
		if err != nil {
			logger.Debugf("gpp section %s not decoded: %v", id, err)
			result.Errors = append(result.Errors, errors.Wrapf(err, "section %s", id))
			continue
		}
		result.Sections[id] = section
	}
	return result, nil
}

// Failures returns the errors of sections which could not be decoded.
func (r *Result) Failures() []error {
	return errortypes.FatalOnly(r.Errors)
}

// Warnings returns the sid list warnings and the sections skipped for lack of a decoder.
func (r *Result) Warnings() []error {
	return errortypes.WarningOnly(r.Errors)
}

func decodeStatus(err error) metrics.DecodeStatus {
	switch errors.Cause(err).(type) {
	case nil:
		return metrics.DecodeStatusOK
	case *errortypes.UnsupportedSection:
		return metrics.DecodeStatusUnsupported
	case *errortypes.UnknownSegmentVersion:
		return metrics.DecodeStatusUnknownVersion
	case *errortypes.UnknownSegmentType:
		return metrics.DecodeStatusUnknownSegment
	case *errortypes.ReadFailure:
		return metrics.DecodeStatusReadFailure
	}
	return metrics.DecodeStatusErr
}
