package core

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type fixedConfigProvider struct {
	cfg Config
}

func (p *fixedConfigProvider) Load(context.Context, Config) (Config, error) {
	return p.cfg, nil
}

type fixedOptionsResolver struct {
	cfg Config
}

func (r *fixedOptionsResolver) Resolve(Config, Config, Config) (Config, error) {
	return r.cfg, nil
}

type failingLoader struct{}

func (failingLoader) LoadRaw(context.Context) (map[string]any, error) {
	return nil, errors.New("config source unavailable")
}

func TestNewService_WithOverrides(t *testing.T) {
	logger := newCaptureLogger()
	registry := NewInventoryRegistry()
	mapper := func(err error) *goerrors.Error {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "mapped")
	}
	svc, err := NewService(Config{ServiceName: "runtime"},
		WithLogger(logger),
		WithLoggerProvider(stubLoggerProvider{logger: logger}),
		WithErrorMapper(mapper),
		WithRegistry(registry),
		WithConfigProvider(&fixedConfigProvider{cfg: Config{ServiceName: "from-provider"}}),
		WithOptionsResolver(&fixedOptionsResolver{cfg: Config{ServiceName: "resolved"}}),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if svc.Config().ServiceName != "resolved" {
		t.Fatalf("expected resolver output, got %q", svc.Config().ServiceName)
	}
	deps := svc.Dependencies()
	if deps.Registry != Registry(registry) {
		t.Fatalf("expected custom registry")
	}
	mapped := svc.mapError(errors.New("x"))
	var rich *goerrors.Error
	if !goerrors.As(mapped, &rich) || rich.Category != goerrors.CategoryOperation {
		t.Fatalf("expected custom mapper output, got %v", mapped)
	}
}

func TestNewService_ConfigLayeringPrecedence(t *testing.T) {
	provider := NewCfgxConfigProvider(StaticConfigLoader{Values: map[string]any{
		"service_name": "from-config",
		"resolution": map[string]any{
			"indexed_threshold": 4,
		},
		"slots": map[string]any{
			"stack_limit": 16,
		},
	}})

	svc, err := NewService(Config{ServiceName: "from-runtime", Slots: SlotsConfig{StackLimit: 8}}, WithConfigProvider(provider))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cfg := svc.Config()
	if cfg.ServiceName != "from-runtime" {
		t.Fatalf("expected runtime value to override config/default, got %q", cfg.ServiceName)
	}
	if cfg.Resolution.IndexedThreshold != 4 {
		t.Fatalf("expected config layer threshold 4, got %d", cfg.Resolution.IndexedThreshold)
	}
	if cfg.Slots.StackLimit != 8 {
		t.Fatalf("expected runtime stack limit 8, got %d", cfg.Slots.StackLimit)
	}
}

func TestNewService_ConfigLoadErrorIsMapped(t *testing.T) {
	_, err := NewService(Config{}, WithConfigProvider(NewCfgxConfigProvider(failingLoader{})))
	if err == nil {
		t.Fatalf("expected load error")
	}
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.TextCode == "" || rich.Code == 0 {
		t.Fatalf("expected envelope codes, got %+v", rich)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("expected default config to be valid, got %v", err)
	}
	cfg := DefaultConfig()
	cfg.Resolution.IndexedThreshold = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative threshold to be invalid")
	}
	cfg = DefaultConfig()
	cfg.Slots.StackLimit = -2
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected negative stack limit to be invalid")
	}
	cfg = DefaultConfig()
	cfg.ServiceName = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected blank service name to be invalid")
	}
}
