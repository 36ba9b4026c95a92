package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-inventory/core"
)

type MutatingService interface {
	Offer(ctx context.Context, req core.OfferRequest) (core.OperationResult, error)
	Set(ctx context.Context, req core.SetRequest) (core.OperationResult, error)
	Poll(ctx context.Context, req core.PollRequest) (core.OperationResult, error)
	OfferAll(ctx context.Context, req core.OfferAllRequest) (core.OperationResult, error)
	Clear(ctx context.Context, req core.ClearRequest) (core.OperationResult, error)
	RevertLast(ctx context.Context, req core.RevertRequest) (core.OperationResult, error)
}

type OfferCommand struct {
	service MutatingService
}

func NewOfferCommand(service MutatingService) *OfferCommand {
	return &OfferCommand{service: service}
}

func (c *OfferCommand) Execute(ctx context.Context, msg OfferMessage) error {
	if c == nil || c.service == nil {
		return missingServiceError(TypeOffer)
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return run(ctx, func() (core.OperationResult, error) {
		return c.service.Offer(ctx, msg.Request)
	})
}

type SetCommand struct {
	service MutatingService
}

func NewSetCommand(service MutatingService) *SetCommand {
	return &SetCommand{service: service}
}

func (c *SetCommand) Execute(ctx context.Context, msg SetMessage) error {
	if c == nil || c.service == nil {
		return missingServiceError(TypeSet)
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return run(ctx, func() (core.OperationResult, error) {
		return c.service.Set(ctx, msg.Request)
	})
}

type PollCommand struct {
	service MutatingService
}

func NewPollCommand(service MutatingService) *PollCommand {
	return &PollCommand{service: service}
}

func (c *PollCommand) Execute(ctx context.Context, msg PollMessage) error {
	if c == nil || c.service == nil {
		return missingServiceError(TypePoll)
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return run(ctx, func() (core.OperationResult, error) {
		return c.service.Poll(ctx, msg.Request)
	})
}

type OfferAllCommand struct {
	service MutatingService
}

func NewOfferAllCommand(service MutatingService) *OfferAllCommand {
	return &OfferAllCommand{service: service}
}

func (c *OfferAllCommand) Execute(ctx context.Context, msg OfferAllMessage) error {
	if c == nil || c.service == nil {
		return missingServiceError(TypeOfferAll)
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return run(ctx, func() (core.OperationResult, error) {
		return c.service.OfferAll(ctx, msg.Request)
	})
}

type ClearCommand struct {
	service MutatingService
}

func NewClearCommand(service MutatingService) *ClearCommand {
	return &ClearCommand{service: service}
}

func (c *ClearCommand) Execute(ctx context.Context, msg ClearMessage) error {
	if c == nil || c.service == nil {
		return missingServiceError(TypeClear)
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return run(ctx, func() (core.OperationResult, error) {
		return c.service.Clear(ctx, core.ClearRequest{InventoryID: msg.InventoryID})
	})
}

type RevertCommand struct {
	service MutatingService
}

func NewRevertCommand(service MutatingService) *RevertCommand {
	return &RevertCommand{service: service}
}

func (c *RevertCommand) Execute(ctx context.Context, msg RevertMessage) error {
	if c == nil || c.service == nil {
		return missingServiceError(TypeRevert)
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return run(ctx, func() (core.OperationResult, error) {
		return c.service.RevertLast(ctx, core.RevertRequest{InventoryID: msg.InventoryID})
	})
}

// run stores the operation result on the context collector, if any. Slot
// level outcomes are part of the result, not errors.
func run(ctx context.Context, call func() (core.OperationResult, error)) error {
	out, err := call()
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
