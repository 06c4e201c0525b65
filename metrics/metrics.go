package metrics

// SectionLabels defines the labels recorded for every decoded GPP section.
type SectionLabels struct {
	Section string
	Status  DecodeStatus
}

// DecodeStatus is the outcome of decoding one section.
type DecodeStatus string

const (
	DecodeStatusOK             DecodeStatus = "ok"
	DecodeStatusUnsupported    DecodeStatus = "unsupported"
	DecodeStatusUnknownVersion DecodeStatus = "unknown_version"
	DecodeStatusUnknownSegment DecodeStatus = "unknown_segment"
	DecodeStatusReadFailure    DecodeStatus = "read_failure"
	DecodeStatusErr            DecodeStatus = "err"
)

// DecodeStatuses returns all possible values for DecodeStatus.
func DecodeStatuses() []DecodeStatus {
	return []DecodeStatus{
		DecodeStatusOK,
		DecodeStatusUnsupported,
		DecodeStatusUnknownVersion,
		DecodeStatusUnknownSegment,
		DecodeStatusReadFailure,
		DecodeStatusErr,
	}
}

// RequestStatus is the outcome of one decode request.
type RequestStatus string

const (
	RequestStatusOK       RequestStatus = "ok"
	RequestStatusBadInput RequestStatus = "badinput"
	RequestStatusErr      RequestStatus = "err"
)

// RequestStatuses returns all possible values for RequestStatus.
func RequestStatuses() []RequestStatus {
	return []RequestStatus{
		RequestStatusOK,
		RequestStatusBadInput,
		RequestStatusErr,
	}
}

// MetricsEngine is a generic interface to record metrics into the desired backend.
//
// Implementations must be safe for concurrent use.
type MetricsEngine interface {
	RecordSectionDecode(labels SectionLabels)
	RecordRequest(status RequestStatus)
}
