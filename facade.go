package inventory

import (
	"context"
	"fmt"

	invcommand "github.com/goliatone/go-inventory/command"
	"github.com/goliatone/go-inventory/core"
	"github.com/goliatone/go-inventory/layout"
	invquery "github.com/goliatone/go-inventory/query"
	"github.com/google/uuid"
)

type CommandQueryService interface {
	invcommand.MutatingService
	invquery.InventoryReader
}

// LayoutService is implemented by services that can build and register
// inventories from layouts.
type LayoutService interface {
	NewBuilder() *core.InventoryBuilder
	Register(ctx context.Context, req core.RegisterRequest) (uuid.UUID, error)
}

type Commands struct {
	Offer    *invcommand.OfferCommand
	Set      *invcommand.SetCommand
	Poll     *invcommand.PollCommand
	OfferAll *invcommand.OfferAllCommand
	Clear    *invcommand.ClearCommand
	Revert   *invcommand.RevertCommand
}

type Queries struct {
	Peek     *invquery.PeekQuery
	Describe *invquery.DescribeQuery
	Resolve  *invquery.ResolveQuery
}

type Facade struct {
	service  CommandQueryService
	layouts  LayoutService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	layouts LayoutService
}

// WithLayoutService overrides the service used by RegisterLayout. By default
// the command/query service is used when it implements LayoutService.
func WithLayoutService(layouts LayoutService) FacadeOption {
	return func(options *facadeOptions) {
		options.layouts = layouts
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("inventory: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.layouts == nil {
		if layouts, ok := service.(LayoutService); ok {
			cfg.layouts = layouts
		}
	}

	facade := &Facade{service: service, layouts: cfg.layouts}
	facade.commands = Commands{
		Offer:    invcommand.NewOfferCommand(service),
		Set:      invcommand.NewSetCommand(service),
		Poll:     invcommand.NewPollCommand(service),
		OfferAll: invcommand.NewOfferAllCommand(service),
		Clear:    invcommand.NewClearCommand(service),
		Revert:   invcommand.NewRevertCommand(service),
	}
	facade.queries = Queries{
		Peek:     invquery.NewPeekQuery(service),
		Describe: invquery.NewDescribeQuery(service),
		Resolve:  invquery.NewResolveQuery(service),
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

// RegisterLayout builds file with the service's builder settings and
// registers the result. A layout identity becomes the registry id.
func (f *Facade) RegisterLayout(ctx context.Context, file *layout.File) (uuid.UUID, error) {
	if f == nil || f.layouts == nil {
		return uuid.Nil, fmt.Errorf("inventory: layout service is not configured")
	}
	if file == nil {
		return uuid.Nil, fmt.Errorf("inventory: layout is required")
	}
	inv, err := file.Build(f.layouts.NewBuilder)
	if err != nil {
		return uuid.Nil, err
	}
	return f.layouts.Register(ctx, core.RegisterRequest{Inventory: inv})
}
