package core

// SlotArray is a flat run of slots backed by its own storage. It is the
// container behind InventoryBuilder.Slots.
type SlotArray struct {
	lensInventory
	fabric   *slotFabric
	provider *FabricSlotLensProvider
}

// NewSlotArray creates capacity empty slots. limit caps the quantity of every
// slot (0 keeps the item stack limit) and filter, when set, restricts the
// items the slots accept.
func NewSlotArray(capacity int, limit int, filter SlotFilter) *SlotArray {
	fabric := newSlotFabric(capacity, limit, filter)
	provider := NewFabricSlotLensProvider(fabric)
	return &SlotArray{
		lensInventory: lensInventory{lens: NewIndexedLens(0, fabric.Capacity(), provider)},
		fabric:        fabric,
		provider:      provider,
	}
}

func (a *SlotArray) Fabric() Fabric {
	return a.fabric
}

func (a *SlotArray) SlotProvider() SlotLensProvider {
	return a.provider
}

func (a *SlotArray) Children() []Inventory {
	return nil
}

func (a *SlotArray) Union(other Inventory) Inventory {
	return unionInventories(a, other)
}

func (a *SlotArray) Intersect(other Inventory) Inventory {
	return intersectInventories(a, other)
}
