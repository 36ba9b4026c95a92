package inventory

import "github.com/goliatone/go-inventory/core"

type Config = core.Config

type Option = core.Option

type Service = core.Service

type ServiceDependencies = core.ServiceDependencies

type ItemSnapshot = core.ItemSnapshot
type Inventory = core.Inventory
type CustomInventory = core.CustomInventory
type InventoryBuilder = core.InventoryBuilder
type TransactionResult = core.TransactionResult
type ResultType = core.ResultType
type Carrier = core.Carrier

type RegisterRequest = core.RegisterRequest
type OfferRequest = core.OfferRequest
type SetRequest = core.SetRequest
type PollRequest = core.PollRequest
type OfferAllRequest = core.OfferAllRequest
type ClearRequest = core.ClearRequest
type RevertRequest = core.RevertRequest
type PeekRequest = core.PeekRequest
type DescribeRequest = core.DescribeRequest
type OperationResult = core.OperationResult

const (
	ResultSuccess = core.ResultSuccess
	ResultFailure = core.ResultFailure
	ResultError   = core.ResultError
	ResultNoSlot  = core.ResultNoSlot
)

var (
	WithLogger          = core.WithLogger
	WithLoggerProvider  = core.WithLoggerProvider
	WithMetricsRecorder = core.WithMetricsRecorder
	WithErrorMapper     = core.WithErrorMapper
	WithConfigProvider  = core.WithConfigProvider
	WithOptionsResolver = core.WithOptionsResolver
	WithRegistry        = core.WithRegistry
)

var Empty = core.Empty

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	return core.NewService(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return core.Setup(cfg, opts...)
}

func NewBuilder(opts ...core.BuilderOption) *InventoryBuilder {
	return core.NewInventoryBuilder(opts...)
}

func NewItem(itemType string, quantity int) ItemSnapshot {
	return core.NewItem(itemType, quantity)
}
