package core

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

type logLevel int

const (
	levelInfo logLevel = iota
	levelWarn
	levelError
)

// metricTagKeys are the log fields promoted to metric tags. Everything else
// stays in the log entry only.
var metricTagKeys = []string{"result_type", "kind"}

// observeOperation emits one log entry and the per-operation metrics for a
// finished service call. Slot level outcomes travel in fields; err is only
// set when the call itself failed.
func (s *Service) observeOperation(
	ctx context.Context,
	startedAt time.Time,
	operation string,
	err error,
	fields map[string]any,
) {
	if s == nil {
		return
	}
	operation = normalizeOperation(operation)
	if operation == "" {
		operation = "unknown"
	}
	elapsed := time.Since(startedAt)
	status := "success"
	if err != nil {
		status = "failure"
	}

	entry := cloneFields(fields)
	entry["event_type"] = operation
	entry["status"] = status
	entry["duration_ms"] = elapsed.Milliseconds()
	if err != nil {
		entry["error"] = err.Error()
	}

	tags := map[string]string{"operation": operation, "status": status}
	for _, key := range metricTagKeys {
		if value, ok := entry[key]; ok && value != nil {
			if text := strings.TrimSpace(fmt.Sprint(value)); text != "" {
				tags[key] = text
			}
		}
	}

	name := s.metricPrefix() + operation
	s.recordCounter(ctx, name+".total", 1, tags)
	s.recordHistogram(ctx, name+".duration_ms", float64(elapsed.Microseconds())/1000, tags)
	if rejected, ok := entry["rejected_quantity"].(int); ok && rejected > 0 {
		s.recordCounter(ctx, name+".rejected_quantity", int64(rejected), tags)
	}

	switch {
	case err != nil:
		s.log(ctx, levelError, operation+" failed", entry)
	case entry["result_type"] == ResultError.String():
		s.log(ctx, levelWarn, operation+" hit a contract violation", entry)
	default:
		s.log(ctx, levelInfo, operation+" succeeded", entry)
	}
}

func (s *Service) metricPrefix() string {
	name := normalizeOperation(s.config.ServiceName)
	if name == "" {
		name = "inventory"
	}
	return name + "."
}

func (s *Service) log(ctx context.Context, level logLevel, message string, fields map[string]any) {
	if s == nil || s.logger == nil {
		return
	}
	logger := s.logger
	if ctx != nil {
		logger = logger.WithContext(ctx)
	}
	if fieldsLogger, ok := logger.(FieldsLogger); ok {
		logger = fieldsLogger.WithFields(cloneFields(fields))
	}
	args := flattenFields(fields)
	switch level {
	case levelError:
		logger.Error(message, args...)
	case levelWarn:
		logger.Warn(message, args...)
	default:
		logger.Info(message, args...)
	}
}

func (s *Service) recordCounter(ctx context.Context, name string, value int64, tags map[string]string) {
	if s == nil || s.metricsRecorder == nil {
		return
	}
	s.metricsRecorder.IncCounter(ctx, name, value, cloneTags(tags))
}

func (s *Service) recordHistogram(ctx context.Context, name string, value float64, tags map[string]string) {
	if s == nil || s.metricsRecorder == nil {
		return
	}
	s.metricsRecorder.ObserveHistogram(ctx, name, value, cloneTags(tags))
}

func cloneFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields)+4)
	for key, value := range fields {
		out[key] = value
	}
	return out
}

// flattenFields turns fields into sorted key/value args for loggers without
// WithFields support.
func flattenFields(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	args := make([]any, 0, len(keys)*2)
	for _, key := range keys {
		args = append(args, key, fields[key])
	}
	return args
}

func normalizeOperation(operation string) string {
	operation = strings.ToLower(strings.TrimSpace(operation))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(operation)
}
