package prometheusmetrics

import (
	"github.com/prebid/prebid-gpp/metrics"
	"github.com/prebid/prebid-gpp/sections"
)

func decodeStatusesAsString() []string {
	values := metrics.DecodeStatuses()
	valuesAsString := make([]string, len(values))
	for i, v := range values {
		valuesAsString[i] = string(v)
	}
	return valuesAsString
}

func requestStatusesAsString() []string {
	values := metrics.RequestStatuses()
	valuesAsString := make([]string, len(values))
	for i, v := range values {
		valuesAsString[i] = string(v)
	}
	return valuesAsString
}

func sectionsAsString() []string {
	values := sections.IDs()
	valuesAsString := make([]string, len(values))
	for i, v := range values {
		valuesAsString[i] = v.String()
	}
	return valuesAsString
}
