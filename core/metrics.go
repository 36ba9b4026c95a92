package core

import (
	"context"
	"maps"
)

type NopMetricsRecorder struct{}

func (NopMetricsRecorder) IncCounter(context.Context, string, int64, map[string]string) {}

func (NopMetricsRecorder) ObserveHistogram(context.Context, string, float64, map[string]string) {}

// FanoutMetricsRecorder forwards every measurement to each recorder in order.
// Each recorder gets its own copy of the tags.
type FanoutMetricsRecorder []MetricsRecorder

func (f FanoutMetricsRecorder) IncCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	for _, recorder := range f {
		if recorder != nil {
			recorder.IncCounter(ctx, name, value, cloneTags(tags))
		}
	}
}

func (f FanoutMetricsRecorder) ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	for _, recorder := range f {
		if recorder != nil {
			recorder.ObserveHistogram(ctx, name, value, cloneTags(tags))
		}
	}
}

func cloneTags(tags map[string]string) map[string]string {
	if len(tags) == 0 {
		return map[string]string{}
	}
	return maps.Clone(tags)
}

var (
	_ MetricsRecorder = NopMetricsRecorder{}
	_ MetricsRecorder = FanoutMetricsRecorder(nil)
)
