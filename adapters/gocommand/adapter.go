package gocommand

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	invcommand "github.com/goliatone/go-inventory/command"
	"github.com/goliatone/go-inventory/core"
	invquery "github.com/goliatone/go-inventory/query"
)

// ValidateMessageContract enforces Type() plus optional Validate() contract.
func ValidateMessageContract(msg any) error {
	if err := command.ValidateMessage(msg); err != nil {
		return err
	}
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: message must implement Type() string")
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: message type is required")
	}
	return nil
}

type RegistryAdapter struct {
	registry *command.Registry
}

func NewRegistryAdapter(registry *command.Registry) *RegistryAdapter {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &RegistryAdapter{registry: registry}
}

func (a *RegistryAdapter) Registry() *command.Registry {
	if a == nil {
		return nil
	}
	return a.registry
}

func (a *RegistryAdapter) RegisterCommand(cmd any) error {
	if a == nil || a.registry == nil {
		return errRegistryMissing
	}
	return a.registry.RegisterCommand(cmd)
}

// RegisterQuery goes through RegisterCommand; the go-command registry keys
// both on message type.
func (a *RegistryAdapter) RegisterQuery(qry any) error {
	if a == nil || a.registry == nil {
		return errRegistryMissing
	}
	return a.registry.RegisterCommand(qry)
}

func (a *RegistryAdapter) AddResolver(key string, resolver command.Resolver) error {
	if a == nil || a.registry == nil {
		return errRegistryMissing
	}
	return a.registry.AddResolver(strings.TrimSpace(key), resolver)
}

func (a *RegistryAdapter) HasResolver(key string) bool {
	if a == nil || a.registry == nil {
		return false
	}
	return a.registry.HasResolver(strings.TrimSpace(key))
}

func (a *RegistryAdapter) Initialize() error {
	if a == nil || a.registry == nil {
		return errRegistryMissing
	}
	return a.registry.Initialize()
}

var errRegistryMissing = fmt.Errorf("gocommand: registry is not configured")

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

// DispatchOperation dispatches a mutating inventory message and returns the
// operation result its handler stored on the context.
func DispatchOperation[T any](ctx context.Context, msg T) (core.OperationResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	collector := command.NewResult[core.OperationResult]()
	ctx = command.ContextWithResult(ctx, collector)
	if err := commanddispatcher.Dispatch(ctx, msg); err != nil {
		return core.OperationResult{}, err
	}
	result, ok := collector.Load()
	if !ok {
		return core.OperationResult{}, fmt.Errorf("gocommand: no operation result stored for %T", msg)
	}
	return result, nil
}

func RegisterAndSubscribe[T any](
	adapter *RegistryAdapter,
	cmd command.Commander[T],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, errRegistryMissing
	}
	if cmd == nil {
		return nil, fmt.Errorf("gocommand: command is required")
	}
	subscription := commanddispatcher.SubscribeCommand(cmd, runnerOpts...)
	if err := adapter.RegisterCommand(cmd); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

func RegisterAndSubscribeQuery[T any, R any](
	adapter *RegistryAdapter,
	qry command.Querier[T, R],
	runnerOpts ...runner.Option,
) (commanddispatcher.Subscription, error) {
	if adapter == nil || adapter.registry == nil {
		return nil, errRegistryMissing
	}
	if qry == nil {
		return nil, fmt.Errorf("gocommand: query is required")
	}
	subscription := commanddispatcher.SubscribeQuery(qry, runnerOpts...)
	if err := adapter.RegisterQuery(qry); err != nil {
		if subscription != nil {
			subscription.Unsubscribe()
		}
		return nil, err
	}
	return subscription, nil
}

// InventoryService is what the inventory handlers need from a service.
type InventoryService interface {
	invcommand.MutatingService
	invquery.InventoryReader
}

// Subscriptions tracks the dispatcher subscriptions created by
// RegisterInventoryHandlers.
type Subscriptions struct {
	items []commanddispatcher.Subscription
}

func (s *Subscriptions) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *Subscriptions) Unsubscribe() {
	if s == nil {
		return
	}
	for i := len(s.items) - 1; i >= 0; i-- {
		if s.items[i] != nil {
			s.items[i].Unsubscribe()
		}
	}
	s.items = nil
}

func (s *Subscriptions) add(sub commanddispatcher.Subscription, err error) error {
	if err != nil {
		return err
	}
	s.items = append(s.items, sub)
	return nil
}

// RegisterInventoryHandlers registers and subscribes every inventory command
// and query against service. On failure, subscriptions made so far are
// released.
func RegisterInventoryHandlers(
	adapter *RegistryAdapter,
	service InventoryService,
	runnerOpts ...runner.Option,
) (*Subscriptions, error) {
	if service == nil {
		return nil, fmt.Errorf("gocommand: inventory service is required")
	}
	subs := &Subscriptions{}
	steps := []func() error{
		func() error {
			return subs.add(RegisterAndSubscribe[invcommand.OfferMessage](adapter, invcommand.NewOfferCommand(service), runnerOpts...))
		},
		func() error {
			return subs.add(RegisterAndSubscribe[invcommand.SetMessage](adapter, invcommand.NewSetCommand(service), runnerOpts...))
		},
		func() error {
			return subs.add(RegisterAndSubscribe[invcommand.PollMessage](adapter, invcommand.NewPollCommand(service), runnerOpts...))
		},
		func() error {
			return subs.add(RegisterAndSubscribe[invcommand.OfferAllMessage](adapter, invcommand.NewOfferAllCommand(service), runnerOpts...))
		},
		func() error {
			return subs.add(RegisterAndSubscribe[invcommand.ClearMessage](adapter, invcommand.NewClearCommand(service), runnerOpts...))
		},
		func() error {
			return subs.add(RegisterAndSubscribe[invcommand.RevertMessage](adapter, invcommand.NewRevertCommand(service), runnerOpts...))
		},
		func() error {
			return subs.add(RegisterAndSubscribeQuery[invquery.PeekMessage, core.PeekResult](adapter, invquery.NewPeekQuery(service), runnerOpts...))
		},
		func() error {
			return subs.add(RegisterAndSubscribeQuery[invquery.DescribeMessage, core.InventoryDescription](adapter, invquery.NewDescribeQuery(service), runnerOpts...))
		},
		func() error {
			return subs.add(RegisterAndSubscribeQuery[invquery.ResolveMessage, core.IndexResolution](adapter, invquery.NewResolveQuery(service), runnerOpts...))
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			subs.Unsubscribe()
			return nil, err
		}
	}
	return subs, nil
}
