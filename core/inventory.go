package core

// Inventory is the query and mutation surface shared by every container.
// Indices are flat and validated against [0, Capacity()) before they reach a
// lens; misses produce no_slot results, never panics.
type Inventory interface {
	Capacity() int
	Slot(index int) (Slot, bool)
	PeekAt(index int) (ItemSnapshot, bool)
	Offer(index int, item ItemSnapshot) TransactionResult
	Set(index int, item ItemSnapshot) TransactionResult
	Poll(index int) TransactionResult
	PollLimit(index int, limit int) TransactionResult
	OfferAll(items ...ItemSnapshot) TransactionResult
	Clear() TransactionResult
	Slots() []Slot
	Children() []Inventory
	TotalQuantity() int
	FreeSlots() int
	ContainsType(itemType string) bool
	Union(other Inventory) Inventory
	Intersect(other Inventory) Inventory
}

// InventoryAdapter is implemented by containers that take part in lens
// composition.
type InventoryAdapter interface {
	RootLens() Lens
	SlotProvider() SlotLensProvider
}

// AdaptedInventory is a container usable as a builder child.
type AdaptedInventory interface {
	Inventory
	InventoryAdapter
}

// Carrier is the domain object owning an inventory. Inventories hold a
// non-owning reference to it.
type Carrier interface {
	CarrierID() string
}

// IsEmptyInventory reports whether inv has no addressable slots.
func IsEmptyInventory(inv Inventory) bool {
	return inv == nil || inv.Capacity() == 0
}

// lensInventory implements the Inventory operations over a root lens.
type lensInventory struct {
	lens Lens
}

func (v lensInventory) Capacity() int {
	if v.lens == nil {
		return 0
	}
	return v.lens.Size()
}

func (v lensInventory) Slot(index int) (Slot, bool) {
	if index < 0 || index >= v.Capacity() {
		return Slot{}, false
	}
	lens, ok := v.lens.SlotLens(index)
	if !ok || !lens.Valid() {
		return Slot{}, false
	}
	return Slot{index: index, lens: lens}, true
}

func (v lensInventory) PeekAt(index int) (ItemSnapshot, bool) {
	slot, ok := v.Slot(index)
	if !ok {
		return ItemSnapshot{}, false
	}
	return slot.Peek(), true
}

func (v lensInventory) Offer(index int, item ItemSnapshot) TransactionResult {
	slot, ok := v.Slot(index)
	if !ok {
		return noSlotResult(item)
	}
	return slot.Offer(item)
}

func (v lensInventory) Set(index int, item ItemSnapshot) TransactionResult {
	slot, ok := v.Slot(index)
	if !ok {
		return noSlotResult(item)
	}
	return slot.Set(item)
}

func (v lensInventory) Poll(index int) TransactionResult {
	return v.PollLimit(index, 0)
}

func (v lensInventory) PollLimit(index int, limit int) TransactionResult {
	slot, ok := v.Slot(index)
	if !ok {
		return noSlotResult(ItemSnapshot{})
	}
	return slot.PollLimit(limit)
}

func (v lensInventory) OfferAll(items ...ItemSnapshot) TransactionResult {
	return offerAll(v.Slots(), items)
}

func (v lensInventory) Clear() TransactionResult {
	result := NewTransactionResult().Type(ResultSuccess)
	for _, slot := range v.Slots() {
		current := slot.Peek()
		if current.IsEmpty() {
			continue
		}
		slot.restore(ItemSnapshot{})
		result.Poll(current).Transaction(SlotTransaction{Slot: slot, Original: current})
	}
	return result.Build()
}

func (v lensInventory) Slots() []Slot {
	capacity := v.Capacity()
	slots := make([]Slot, 0, capacity)
	for index := 0; index < capacity; index++ {
		if slot, ok := v.Slot(index); ok {
			slots = append(slots, slot)
		}
	}
	return slots
}

func (v lensInventory) TotalQuantity() int {
	total := 0
	for _, slot := range v.Slots() {
		if item := slot.Peek(); !item.IsEmpty() {
			total += item.Quantity
		}
	}
	return total
}

func (v lensInventory) FreeSlots() int {
	free := 0
	for _, slot := range v.Slots() {
		if slot.Peek().IsEmpty() {
			free++
		}
	}
	return free
}

func (v lensInventory) ContainsType(itemType string) bool {
	for _, slot := range v.Slots() {
		if item := slot.Peek(); !item.IsEmpty() && item.ItemType == itemType {
			return true
		}
	}
	return false
}

func (v lensInventory) RootLens() Lens {
	return v.lens
}

func noSlotResult(item ItemSnapshot) TransactionResult {
	return NewTransactionResult().Type(ResultNoSlot).Reject(item).Build()
}

// offerAll spreads items over slots: compatible partial stacks first, then
// empty slots, both in index order.
func offerAll(slots []Slot, items []ItemSnapshot) TransactionResult {
	result := NewTransactionResult().Type(ResultSuccess)
	rejected := false
	for _, item := range items {
		if err := item.Validate(); err != nil {
			result.Error(contractViolation(err, map[string]any{"item": item.String()})).Reject(item)
			continue
		}
		if item.IsEmpty() {
			continue
		}
		remaining := item
		for _, slot := range slots {
			if remaining.IsEmpty() {
				break
			}
			if current := slot.Peek(); current.IsEmpty() || !current.StacksWith(remaining) {
				continue
			}
			remaining = slot.absorb(remaining, result)
		}
		for _, slot := range slots {
			if remaining.IsEmpty() {
				break
			}
			if !slot.Peek().IsEmpty() {
				continue
			}
			remaining = slot.absorb(remaining, result)
		}
		if !remaining.IsEmpty() {
			rejected = true
			result.Reject(remaining)
		}
	}
	if rejected && result.resultType != ResultError {
		result.Type(ResultFailure)
	}
	return result.Build()
}
