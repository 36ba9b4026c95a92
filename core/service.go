package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

var ErrNothingToRevert = errors.New("core: no transaction recorded for inventory")

// Service addresses registered inventories by id. Every mutation is observed
// through the logger and metrics recorder, and its result is kept so the
// last operation on an inventory can be reverted.
type Service struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	registry        Registry

	mu     sync.Mutex
	ledger map[uuid.UUID]TransactionResult
}

type ServiceDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
	Registry        Registry
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("inventory", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("inventory"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = NewInventoryRegistry()
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	return &Service{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		registry:        builder.registry,
		ledger:          make(map[uuid.UUID]TransactionResult),
	}, nil
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return NewService(cfg, opts...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:          s.logger,
		LoggerProvider:  s.loggerProvider,
		MetricsRecorder: s.metricsRecorder,
		ErrorMapper:     s.errorMapper,
		ConfigProvider:  s.configProvider,
		OptionsResolver: s.optionsResolver,
		Registry:        s.registry,
	}
}

// NewBuilder returns an inventory builder configured from the service config.
func (s *Service) NewBuilder() *InventoryBuilder {
	cfg := s.Config()
	return NewInventoryBuilder(
		WithBuilderLogger(s.logger),
		WithIndexedThreshold(cfg.Resolution.IndexedThreshold),
		WithSlotLimit(cfg.Slots.StackLimit),
	)
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (id uuid.UUID, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		fields["inventory_id"] = id.String()
		s.observeOperation(ctx, startedAt, "register", err, fields)
	}()

	if req.Inventory == nil {
		return uuid.Nil, s.mapError(fmt.Errorf("core: inventory is required"))
	}
	fields["kind"] = inventoryKind(req.Inventory)
	id = req.ID
	if id == uuid.Nil {
		if custom, ok := req.Inventory.(*CustomInventory); ok {
			id, _ = custom.Identity()
		}
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	if err = s.registry.Register(id, req.Inventory); err != nil {
		err = s.mapError(err)
		return uuid.Nil, err
	}
	return id, nil
}

func (s *Service) Unregister(ctx context.Context, id uuid.UUID) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"inventory_id": id.String()}
	defer func() {
		s.observeOperation(ctx, startedAt, "unregister", err, fields)
	}()

	if !s.registry.Unregister(id) {
		err = s.mapError(fmt.Errorf("%w: %s", ErrInventoryNotFound, id))
		return err
	}
	s.mu.Lock()
	delete(s.ledger, id)
	s.mu.Unlock()
	return nil
}

// Inventory returns the registered inventory with the given id.
func (s *Service) Inventory(id uuid.UUID) (Inventory, error) {
	if s == nil || s.registry == nil {
		return nil, s.mapError(fmt.Errorf("core: inventory registry is required"))
	}
	inv, ok := s.registry.Get(id)
	if !ok {
		return nil, s.mapError(fmt.Errorf("%w: %s", ErrInventoryNotFound, id))
	}
	return inv, nil
}

func (s *Service) Offer(ctx context.Context, req OfferRequest) (OperationResult, error) {
	return s.mutate(ctx, "offer", req.InventoryID, req.RevertOnFailure,
		map[string]any{"index": req.Index, "item": req.Item.String()},
		func(inv Inventory) TransactionResult {
			return inv.Offer(req.Index, req.Item)
		},
	)
}

func (s *Service) Set(ctx context.Context, req SetRequest) (OperationResult, error) {
	return s.mutate(ctx, "set", req.InventoryID, req.RevertOnFailure,
		map[string]any{"index": req.Index, "item": req.Item.String()},
		func(inv Inventory) TransactionResult {
			return inv.Set(req.Index, req.Item)
		},
	)
}

func (s *Service) Poll(ctx context.Context, req PollRequest) (OperationResult, error) {
	return s.mutate(ctx, "poll", req.InventoryID, false,
		map[string]any{"index": req.Index, "limit": req.Limit},
		func(inv Inventory) TransactionResult {
			return inv.PollLimit(req.Index, req.Limit)
		},
	)
}

func (s *Service) OfferAll(ctx context.Context, req OfferAllRequest) (OperationResult, error) {
	return s.mutate(ctx, "offer_all", req.InventoryID, req.RevertOnFailure,
		map[string]any{"items": len(req.Items)},
		func(inv Inventory) TransactionResult {
			return inv.OfferAll(req.Items...)
		},
	)
}

func (s *Service) Clear(ctx context.Context, req ClearRequest) (OperationResult, error) {
	return s.mutate(ctx, "clear", req.InventoryID, false, nil,
		func(inv Inventory) TransactionResult {
			return inv.Clear()
		},
	)
}

// RevertLast reverts the last recorded result of an inventory. Results are
// reverted at most once.
func (s *Service) RevertLast(ctx context.Context, req RevertRequest) (out OperationResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"inventory_id": req.InventoryID.String()}
	defer func() {
		s.observeOperation(ctx, startedAt, "revert", err, fields)
	}()

	if _, err = s.Inventory(req.InventoryID); err != nil {
		return OperationResult{}, err
	}
	s.mu.Lock()
	last, ok := s.ledger[req.InventoryID]
	if ok {
		delete(s.ledger, req.InventoryID)
	}
	s.mu.Unlock()
	if !ok {
		err = s.mapError(fmt.Errorf("%w: %s", ErrNothingToRevert, req.InventoryID))
		return OperationResult{}, err
	}
	last.Revert()
	fields["result_type"] = last.Type().String()
	fields["transactions"] = len(last.SlotTransactions())
	return OperationResult{
		InventoryID: req.InventoryID,
		Operation:   "revert",
		Result:      last,
		Reverted:    true,
	}, nil
}

func (s *Service) Peek(ctx context.Context, req PeekRequest) (PeekResult, error) {
	inv, err := s.Inventory(req.InventoryID)
	if err != nil {
		return PeekResult{}, err
	}
	item, found := inv.PeekAt(req.Index)
	return PeekResult{
		InventoryID: req.InventoryID,
		Index:       req.Index,
		Item:        item,
		Found:       found,
	}, nil
}

func (s *Service) Describe(ctx context.Context, req DescribeRequest) (InventoryDescription, error) {
	inv, err := s.Inventory(req.InventoryID)
	if err != nil {
		return InventoryDescription{}, err
	}
	desc := DescribeInventory(inv)
	desc.ID = req.InventoryID
	return desc, nil
}

func (s *Service) mutate(
	ctx context.Context,
	operation string,
	id uuid.UUID,
	revertOnFailure bool,
	fields map[string]any,
	apply func(inv Inventory) TransactionResult,
) (out OperationResult, err error) {
	startedAt := time.Now().UTC()
	fields = cloneFields(fields)
	fields["inventory_id"] = id.String()
	defer func() {
		s.observeOperation(ctx, startedAt, operation, err, fields)
	}()

	inv, err := s.Inventory(id)
	if err != nil {
		return OperationResult{}, err
	}
	result := apply(inv)
	out = OperationResult{
		InventoryID: id,
		Operation:   operation,
		Result:      result,
	}
	if revertOnFailure {
		out.Reverted = result.RevertOnFailure()
	}

	s.mu.Lock()
	if out.Reverted || len(result.SlotTransactions()) == 0 {
		delete(s.ledger, id)
	} else {
		s.ledger[id] = result
	}
	s.mu.Unlock()

	fields["result_type"] = result.Type().String()
	fields["reverted"] = out.Reverted
	rejected := 0
	for _, item := range result.Rejected() {
		rejected += item.Quantity
	}
	fields["rejected_quantity"] = rejected
	if s.config.Observability.LogTransactions {
		fields["transactions"] = len(result.SlotTransactions())
		fields["rejected"] = len(result.Rejected())
		fields["polled"] = len(result.Polled())
	}
	if result.Err() != nil {
		fields["result_error"] = result.Err().Error()
	}
	return out, nil
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return inventoryErrorMapper(err)
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}
