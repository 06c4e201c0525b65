package metrics

// NilMetricsEngine implements MetricsEngine and records nothing.
// The server code can use this if it doesn't want to export metrics anywhere.
type NilMetricsEngine struct{}

// RecordSectionDecode as a noop
func (me *NilMetricsEngine) RecordSectionDecode(labels SectionLabels) {
}

// RecordRequest as a noop
func (me *NilMetricsEngine) RecordRequest(status RequestStatus) {
}
