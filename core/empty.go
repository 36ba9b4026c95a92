package core

// EmptyInventory is the bottom container: no slots, no children. It is the
// identity of Union and the annihilator of Intersect.
type EmptyInventory struct{}

// Empty is the value used wherever composition yields nothing.
var Empty = EmptyInventory{}

var (
	emptyProvider = NewCompoundSlotLensProvider(0)
	emptyLens     = NewCompoundLensBuilder().Build(emptyProvider)
)

func (EmptyInventory) Capacity() int {
	return 0
}

func (EmptyInventory) Slot(int) (Slot, bool) {
	return Slot{}, false
}

func (EmptyInventory) PeekAt(int) (ItemSnapshot, bool) {
	return ItemSnapshot{}, false
}

func (EmptyInventory) Offer(_ int, item ItemSnapshot) TransactionResult {
	return noSlotResult(item)
}

func (EmptyInventory) Set(_ int, item ItemSnapshot) TransactionResult {
	return noSlotResult(item)
}

func (EmptyInventory) Poll(int) TransactionResult {
	return noSlotResult(ItemSnapshot{})
}

func (EmptyInventory) PollLimit(int, int) TransactionResult {
	return noSlotResult(ItemSnapshot{})
}

// OfferAll rejects every non-empty item with a failure result.
func (EmptyInventory) OfferAll(items ...ItemSnapshot) TransactionResult {
	result := NewTransactionResult().Type(ResultSuccess)
	for _, item := range items {
		if item.IsEmpty() {
			continue
		}
		result.Type(ResultFailure).Reject(item)
	}
	return result.Build()
}

func (EmptyInventory) Clear() TransactionResult {
	return NewTransactionResult().Type(ResultSuccess).Build()
}

func (EmptyInventory) Slots() []Slot {
	return nil
}

func (EmptyInventory) Children() []Inventory {
	return nil
}

func (EmptyInventory) TotalQuantity() int {
	return 0
}

func (EmptyInventory) FreeSlots() int {
	return 0
}

func (EmptyInventory) ContainsType(string) bool {
	return false
}

func (EmptyInventory) Union(other Inventory) Inventory {
	if other == nil {
		return Empty
	}
	return other
}

func (EmptyInventory) Intersect(Inventory) Inventory {
	return Empty
}

func (EmptyInventory) RootLens() Lens {
	return emptyLens
}

func (EmptyInventory) SlotProvider() SlotLensProvider {
	return emptyProvider
}
