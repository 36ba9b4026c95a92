package core

import (
	"reflect"

	"github.com/google/uuid"

	glog "github.com/goliatone/go-logger/glog"
)

type builderState int

const (
	builderAccumulating builderState = iota
	builderFinalized
	builderConsumed
)

func (s builderState) String() string {
	switch s {
	case builderFinalized:
		return "finalized"
	case builderConsumed:
		return "consumed"
	default:
		return "accumulating"
	}
}

type BuilderOption func(*InventoryBuilder)

func WithBuilderLogger(logger Logger) BuilderOption {
	return func(b *InventoryBuilder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithIndexedThreshold sets the child count above which the finalized
// provider resolves by binary search.
func WithIndexedThreshold(threshold int) BuilderOption {
	return func(b *InventoryBuilder) {
		b.indexedThreshold = threshold
	}
}

// WithSlotLimit caps the quantity of every slot created by Slots and Grid.
func WithSlotLimit(limit int) BuilderOption {
	return func(b *InventoryBuilder) {
		if limit >= 0 {
			b.slotLimit = limit
		}
	}
}

// InventoryBuilder accumulates child containers, finalizes them into one
// compound lens and provider, and builds a CustomInventory.
//
// CompleteStructure is single use. Build consumes the builder; Reset makes it
// reusable. Misuse panics with a *goerrors.Error.
type InventoryBuilder struct {
	logger           Logger
	indexedThreshold int
	slotLimit        int

	state       builderState
	generation  int
	size        int
	lenses      []Lens
	inventories []AdaptedInventory
	lens        *CompoundLens
	provider    *CompoundSlotLensProvider
}

func NewInventoryBuilder(opts ...BuilderOption) *InventoryBuilder {
	b := &InventoryBuilder{
		logger:           glog.Nop(),
		indexedThreshold: DefaultIndexedThreshold,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Size returns the running capacity of the accumulated children.
func (b *InventoryBuilder) Size() int {
	return b.size
}

func (b *InventoryBuilder) Slots(amount int) *InventoryBuilder {
	return b.FilteredSlots(amount, nil)
}

// FilteredSlots appends amount slots accepting only items admitted by filter.
func (b *InventoryBuilder) FilteredSlots(amount int, filter SlotFilter) *InventoryBuilder {
	b.ensureAccumulating("slots")
	if amount < 0 {
		panic(builderInputError("slots", map[string]any{"amount": amount}))
	}
	return b.add(NewSlotArray(amount, b.slotLimit, filter))
}

func (b *InventoryBuilder) Grid(width int, height int) *InventoryBuilder {
	return b.FilteredGrid(width, height, nil)
}

func (b *InventoryBuilder) FilteredGrid(width int, height int, filter SlotFilter) *InventoryBuilder {
	b.ensureAccumulating("grid")
	if width < 0 || height < 0 {
		panic(builderInputError("grid", map[string]any{"width": width, "height": height}))
	}
	return b.add(NewGridInventory(width, height, b.slotLimit, filter))
}

// Inventory appends an existing container as a child. The container is
// referenced, not copied.
func (b *InventoryBuilder) Inventory(existing AdaptedInventory) *InventoryBuilder {
	b.ensureAccumulating("inventory")
	if isNilInventory(existing) {
		panic(builderInputError("inventory", nil))
	}
	return b.add(existing)
}

func (b *InventoryBuilder) add(inv AdaptedInventory) *InventoryBuilder {
	lens := inv.RootLens()
	if lens == nil {
		panic(builderInputError("inventory", map[string]any{"reason": "container has no root lens"}))
	}
	b.lenses = append(b.lenses, lens)
	b.inventories = append(b.inventories, inv)
	b.size += lens.Size()
	return b
}

// CompleteStructure merges the child providers and builds the compound lens
// over them. Calling it twice panics.
func (b *InventoryBuilder) CompleteStructure() *BuilderEnd {
	switch b.state {
	case builderFinalized:
		panic(structureFinalizedError("complete_structure"))
	case builderConsumed:
		panic(builderConsumedError("complete_structure"))
	}
	provider := NewCompoundSlotLensProvider(b.indexedThreshold)
	for _, inv := range b.inventories {
		provider.Add(inv)
	}
	lens := NewCompoundLensBuilder().Add(b.lenses...).Build(provider)
	if err := VerifyLens(lens); err != nil {
		panic(lensInvariantError(err))
	}
	b.lens = lens
	b.provider = provider
	b.state = builderFinalized
	b.logger.Debug("inventory structure completed",
		"capacity", lens.Size(),
		"children", len(b.inventories),
		"indexed", provider.Indexed(),
	)
	return &BuilderEnd{builder: b, generation: b.generation}
}

// Reset clears all accumulated state so the builder can start an unrelated
// build. Options given at construction are kept.
func (b *InventoryBuilder) Reset() *InventoryBuilder {
	b.state = builderAccumulating
	b.generation++
	b.size = 0
	b.lenses = nil
	b.inventories = nil
	b.lens = nil
	b.provider = nil
	return b
}

func (b *InventoryBuilder) ensureAccumulating(operation string) {
	switch b.state {
	case builderFinalized:
		panic(structureFinalizedError(operation))
	case builderConsumed:
		panic(builderConsumedError(operation))
	}
}

// BuilderEnd is the step after CompleteStructure: optional metadata, then
// Build.
type BuilderEnd struct {
	builder     *InventoryBuilder
	generation  int
	identity    uuid.UUID
	hasIdentity bool
	carrier     Carrier
}

func (e *BuilderEnd) Identity(id uuid.UUID) *BuilderEnd {
	e.identity = id
	e.hasIdentity = true
	return e
}

func (e *BuilderEnd) Carrier(carrier Carrier) *BuilderEnd {
	e.carrier = carrier
	return e
}

// Build hands the finalized structure over to a new CustomInventory and
// consumes the builder. A BuilderEnd only builds the structure it was
// returned for; after Reset it panics.
func (e *BuilderEnd) Build() *CustomInventory {
	b := e.builder
	if b.state != builderFinalized || e.generation != b.generation {
		panic(builderConsumedError("build"))
	}
	inv := &CustomInventory{
		lensInventory: lensInventory{lens: b.lens},
		compound:      b.lens,
		provider:      b.provider,
		children:      b.inventories,
		identity:      e.identity,
		hasIdentity:   e.hasIdentity,
		carrier:       e.carrier,
	}
	b.lenses = nil
	b.inventories = nil
	b.lens = nil
	b.provider = nil
	b.size = 0
	b.state = builderConsumed
	return inv
}

// isNilInventory also catches typed nil pointers stored in the interface.
func isNilInventory(inv AdaptedInventory) bool {
	if inv == nil {
		return true
	}
	value := reflect.ValueOf(inv)
	switch value.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface:
		return value.IsNil()
	}
	return false
}
