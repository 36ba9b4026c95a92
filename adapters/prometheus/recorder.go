package prometheus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-inventory/core"
	"github.com/prometheus/client_golang/prometheus"
)

// LabelNames is the fixed label set of every collector. Tags outside this set
// are dropped; missing tags are exported as empty values.
var LabelNames = []string{"operation", "status", "result_type", "kind"}

// DefaultDurationBuckets covers 0.1ms to roughly 400ms in milliseconds.
var DefaultDurationBuckets = prometheus.ExponentialBuckets(0.1, 2, 13)

type Option func(*Recorder)

// WithNamespace prefixes every exported metric name.
func WithNamespace(namespace string) Option {
	return func(r *Recorder) {
		r.namespace = sanitizeName(namespace)
	}
}

func WithBuckets(buckets []float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.buckets = append([]float64(nil), buckets...)
		}
	}
}

// Recorder implements core.MetricsRecorder on client_golang vectors. Vectors
// are created and registered on first use of a metric name.
type Recorder struct {
	registerer prometheus.Registerer
	namespace  string
	buckets    []float64

	mu         sync.Mutex
	counters   map[string]*prometheus.CounterVec
	histograms map[string]*prometheus.HistogramVec
	lastErr    error
}

func NewRecorder(registerer prometheus.Registerer, opts ...Option) *Recorder {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	r := &Recorder{
		registerer: registerer,
		buckets:    DefaultDurationBuckets,
		counters:   make(map[string]*prometheus.CounterVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Recorder) IncCounter(_ context.Context, name string, value int64, tags map[string]string) {
	if r == nil || value < 0 {
		return
	}
	vec := r.counter(name)
	if vec == nil {
		return
	}
	vec.WithLabelValues(labelValues(tags)...).Add(float64(value))
}

func (r *Recorder) ObserveHistogram(_ context.Context, name string, value float64, tags map[string]string) {
	if r == nil {
		return
	}
	vec := r.histogram(name)
	if vec == nil {
		return
	}
	vec.WithLabelValues(labelValues(tags)...).Observe(value)
}

// Err returns the last registration failure, if any. Metrics that fail to
// register are skipped rather than failing inventory operations.
func (r *Recorder) Err() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastErr
}

// MetricName is the exported name for a recorder metric name.
func (r *Recorder) MetricName(name string) string {
	return r.qualify(name)
}

func (r *Recorder) counter(name string) *prometheus.CounterVec {
	fullName := r.qualify(name)
	if fullName == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if vec, ok := r.counters[fullName]; ok {
		return vec
	}
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: fullName,
		Help: fmt.Sprintf("Inventory counter %s.", name),
	}, LabelNames)
	registered, err := register(r.registerer, vec)
	if err != nil {
		r.lastErr = err
		return nil
	}
	vec, ok := registered.(*prometheus.CounterVec)
	if !ok {
		r.lastErr = fmt.Errorf("prometheus: collector %q is not a counter vector", fullName)
		return nil
	}
	r.counters[fullName] = vec
	return vec
}

func (r *Recorder) histogram(name string) *prometheus.HistogramVec {
	fullName := r.qualify(name)
	if fullName == "" {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if vec, ok := r.histograms[fullName]; ok {
		return vec
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    fullName,
		Help:    fmt.Sprintf("Inventory histogram %s.", name),
		Buckets: r.buckets,
	}, LabelNames)
	registered, err := register(r.registerer, vec)
	if err != nil {
		r.lastErr = err
		return nil
	}
	vec, ok := registered.(*prometheus.HistogramVec)
	if !ok {
		r.lastErr = fmt.Errorf("prometheus: collector %q is not a histogram vector", fullName)
		return nil
	}
	r.histograms[fullName] = vec
	return vec
}

// register reuses a collector already registered under the same descriptor,
// so two recorders sharing a registry export into the same series.
func register(registerer prometheus.Registerer, collector prometheus.Collector) (prometheus.Collector, error) {
	if err := registerer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return already.ExistingCollector, nil
		}
		return nil, err
	}
	return collector, nil
}

func (r *Recorder) qualify(name string) string {
	name = sanitizeName(name)
	if name == "" {
		return ""
	}
	if r != nil && r.namespace != "" {
		return r.namespace + "_" + name
	}
	return name
}

func labelValues(tags map[string]string) []string {
	values := make([]string, len(LabelNames))
	for i, label := range LabelNames {
		values[i] = strings.TrimSpace(tags[label])
	}
	return values
}

// sanitizeName maps dotted recorder names such as inventory.offer.total onto
// the prometheus metric name alphabet.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == ':':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "_")
	if out != "" && out[0] >= '0' && out[0] <= '9' {
		out = "_" + out
	}
	return out
}

var _ core.MetricsRecorder = (*Recorder)(nil)
