package core

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	opts "github.com/goliatone/go-options"
)

type ErrorMapper func(err error) *goerrors.Error

type ConfigProvider interface {
	Load(ctx context.Context, defaults Config) (Config, error)
}

type RawConfigLoader interface {
	LoadRaw(ctx context.Context) (map[string]any, error)
}

type OptionsResolver interface {
	Resolve(defaults Config, loaded Config, runtime Config) (Config, error)
}

type serviceBuilder struct {
	runtimeConfig   Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	registry        Registry
}

type Option func(*serviceBuilder)

func WithLogger(logger Logger) Option {
	return func(b *serviceBuilder) {
		b.logger = logger
	}
}

func WithLoggerProvider(provider LoggerProvider) Option {
	return func(b *serviceBuilder) {
		b.loggerProvider = provider
	}
}

func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(b *serviceBuilder) {
		b.metricsRecorder = recorder
	}
}

func WithErrorMapper(mapper ErrorMapper) Option {
	return func(b *serviceBuilder) {
		b.errorMapper = mapper
	}
}

func WithConfigProvider(provider ConfigProvider) Option {
	return func(b *serviceBuilder) {
		b.configProvider = provider
	}
}

func WithOptionsResolver(resolver OptionsResolver) Option {
	return func(b *serviceBuilder) {
		b.optionsResolver = resolver
	}
}

func WithRegistry(registry Registry) Option {
	return func(b *serviceBuilder) {
		b.registry = registry
	}
}

func defaultServiceBuilder(runtime Config) serviceBuilder {
	loggerProvider, logger := glog.Resolve("inventory", nil, nil)
	return serviceBuilder{
		runtimeConfig:   runtime,
		loggerProvider:  loggerProvider,
		logger:          logger,
		metricsRecorder: NopMetricsRecorder{},
		errorMapper:     defaultErrorMapper,
		configProvider:  NewCfgxConfigProvider(nil),
		optionsResolver: GoOptionsResolver{},
		registry:        NewInventoryRegistry(),
	}
}

func defaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}
	return inventoryErrorMapper(err)
}

// StaticConfigLoader serves a fixed raw config map.
type StaticConfigLoader struct {
	Values map[string]any
}

func (l StaticConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	if l.Values == nil {
		return map[string]any{}, nil
	}
	return maps.Clone(l.Values), nil
}

// CfgxConfigProvider decodes the raw map returned by Loader into a Config
// seeded with the caller's defaults. A nil Loader yields the defaults.
type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil || p.Loader == nil {
		return defaults, nil
	}
	raw, err := p.Loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, err
	}
	return buildConfig(raw, defaults)
}

// GoOptionsResolver merges defaults, loaded config and runtime config, in
// that order of increasing priority.
type GoOptionsResolver struct{}

type configLayer struct {
	name     string
	priority int
	values   map[string]any
}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	layers := []configLayer{
		{name: "defaults", priority: 0, values: configToLayerMap(defaults, true)},
		{name: "config", priority: 10, values: configToLayerMap(loaded, false)},
		{name: "runtime", priority: 20, values: configToLayerMap(runtime, false)},
	}
	stackLayers := make([]opts.Layer[map[string]any], 0, len(layers))
	for _, layer := range layers {
		stackLayers = append(stackLayers, opts.NewLayer(
			opts.NewScope(layer.name, layer.priority),
			layer.values,
			opts.WithSnapshotID[map[string]any](layer.name),
		))
	}
	stack, err := opts.NewStack(stackLayers...)
	if err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "inventory config layers rejected").
			WithTextCode(InventoryErrorInternal)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "inventory config merge failed").
			WithTextCode(InventoryErrorInternal).
			WithMetadata(map[string]any{"layers": len(layers)})
	}
	return buildConfig(merged.Value, defaults)
}

func buildConfig(raw map[string]any, defaults Config) (Config, error) {
	return cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
}

// configToLayerMap renders cfg as an options layer. Zero values are left out
// of non-default layers so they do not shadow lower layers.
func configToLayerMap(cfg Config, includeZero bool) map[string]any {
	layer := map[string]any{}
	set := func(key string, present bool, value any) {
		if includeZero || present {
			layer[key] = value
		}
	}
	set("service_name", strings.TrimSpace(cfg.ServiceName) != "", cfg.ServiceName)
	set("resolution", cfg.Resolution.IndexedThreshold != 0,
		map[string]any{"indexed_threshold": cfg.Resolution.IndexedThreshold})
	set("slots", cfg.Slots.StackLimit != 0,
		map[string]any{"stack_limit": cfg.Slots.StackLimit})
	set("observability", cfg.Observability.LogTransactions,
		map[string]any{"log_transactions": cfg.Observability.LogTransactions})
	return layer
}
