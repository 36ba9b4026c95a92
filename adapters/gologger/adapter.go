package gologger

import (
	"github.com/goliatone/go-inventory/core"
	glog "github.com/goliatone/go-logger/glog"
)

// Resolve uses deterministic precedence provider > logger > nop.
func Resolve(name string, provider glog.LoggerProvider, logger glog.Logger) (glog.LoggerProvider, glog.Logger) {
	return glog.Resolve(name, provider, logger)
}

// ServiceOptions resolves the pair once and hands both to the service so the
// service and any builders it creates share one logger.
func ServiceOptions(name string, provider glog.LoggerProvider, logger glog.Logger) []core.Option {
	resolvedProvider, resolvedLogger := Resolve(name, provider, logger)
	return []core.Option{
		core.WithLoggerProvider(resolvedProvider),
		core.WithLogger(resolvedLogger),
	}
}

// BuilderOption binds a named logger to a standalone inventory builder.
func BuilderOption(name string, provider glog.LoggerProvider, logger glog.Logger) core.BuilderOption {
	_, resolved := Resolve(name, provider, logger)
	return core.WithBuilderLogger(resolved)
}
