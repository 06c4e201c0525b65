package metrics

import (
	"github.com/stretchr/testify/mock"
)

// MetricsEngineMock is mock for the MetricsEngine interface
type MetricsEngineMock struct {
	mock.Mock
}

// RecordSectionDecode mock
func (me *MetricsEngineMock) RecordSectionDecode(labels SectionLabels) {
	me.Called(labels)
}

// RecordRequest mock
func (me *MetricsEngineMock) RecordRequest(status RequestStatus) {
	me.Called(status)
}
