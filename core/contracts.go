package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type RegisteredInventory struct {
	ID        uuid.UUID
	Inventory Inventory
}

type Registry interface {
	Register(id uuid.UUID, inv Inventory) error
	Unregister(id uuid.UUID) bool
	Get(id uuid.UUID) (Inventory, bool)
	List() []RegisteredInventory
}

type RegisterRequest struct {
	// ID is optional; a built inventory's identity is used next, then a new
	// random id.
	ID        uuid.UUID
	Inventory Inventory
}

type OfferRequest struct {
	InventoryID     uuid.UUID
	Index           int
	Item            ItemSnapshot
	RevertOnFailure bool
}

type SetRequest struct {
	InventoryID     uuid.UUID
	Index           int
	Item            ItemSnapshot
	RevertOnFailure bool
}

type PollRequest struct {
	InventoryID uuid.UUID
	Index       int
	// Limit <= 0 polls the whole stack.
	Limit int
}

type OfferAllRequest struct {
	InventoryID     uuid.UUID
	Items           []ItemSnapshot
	RevertOnFailure bool
}

type ClearRequest struct {
	InventoryID uuid.UUID
}

type RevertRequest struct {
	InventoryID uuid.UUID
}

type PeekRequest struct {
	InventoryID uuid.UUID
	Index       int
}

type PeekResult struct {
	InventoryID uuid.UUID
	Index       int
	Item        ItemSnapshot
	Found       bool
}

type DescribeRequest struct {
	InventoryID uuid.UUID
}

// OperationResult wraps the transaction result of a service-level mutation.
type OperationResult struct {
	InventoryID uuid.UUID
	Operation   string
	Result      TransactionResult
	Reverted    bool
}

type InventoryService interface {
	Register(ctx context.Context, req RegisterRequest) (uuid.UUID, error)
	Unregister(ctx context.Context, id uuid.UUID) error
	Offer(ctx context.Context, req OfferRequest) (OperationResult, error)
	Set(ctx context.Context, req SetRequest) (OperationResult, error)
	Poll(ctx context.Context, req PollRequest) (OperationResult, error)
	OfferAll(ctx context.Context, req OfferAllRequest) (OperationResult, error)
	Clear(ctx context.Context, req ClearRequest) (OperationResult, error)
	RevertLast(ctx context.Context, req RevertRequest) (OperationResult, error)
	Peek(ctx context.Context, req PeekRequest) (PeekResult, error)
	Describe(ctx context.Context, req DescribeRequest) (InventoryDescription, error)
}
