package core

// SlotListAdapter is an inventory view over an explicit list of slots owned
// by other containers. It is the product of Union and Intersect.
type SlotListAdapter struct {
	lensInventory
	provider *slotListProvider
}

func NewSlotListAdapter(slots []Slot) *SlotListAdapter {
	lenses := make([]SlotLens, 0, len(slots))
	for _, slot := range slots {
		lenses = append(lenses, slot.lens)
	}
	provider := &slotListProvider{lenses: lenses}
	return &SlotListAdapter{
		lensInventory: lensInventory{lens: NewIndexedLens(0, len(lenses), provider)},
		provider:      provider,
	}
}

func (a *SlotListAdapter) SlotProvider() SlotLensProvider {
	return a.provider
}

func (a *SlotListAdapter) Children() []Inventory {
	return nil
}

func (a *SlotListAdapter) Union(other Inventory) Inventory {
	return unionInventories(a, other)
}

func (a *SlotListAdapter) Intersect(other Inventory) Inventory {
	return intersectInventories(a, other)
}

type slotListProvider struct {
	lenses []SlotLens
}

func (p *slotListProvider) Size() int {
	return len(p.lenses)
}

func (p *slotListProvider) SlotLens(index int) (SlotLens, bool) {
	if index < 0 || index >= len(p.lenses) {
		return SlotLens{}, false
	}
	return p.lenses[index], true
}

// slotKey identifies an underlying slot independently of the flat index it
// was reached through.
type slotKey struct {
	fabric Fabric
	index  int
}

func keyOf(slot Slot) slotKey {
	return slotKey{fabric: slot.lens.Fabric, index: slot.lens.Index}
}

// unionInventories keeps the slots of left in order and appends the slots of
// right not already present.
func unionInventories(left Inventory, right Inventory) Inventory {
	if IsEmptyInventory(right) {
		if IsEmptyInventory(left) {
			return Empty
		}
		return left
	}
	if IsEmptyInventory(left) {
		return right
	}
	seen := map[slotKey]struct{}{}
	merged := make([]Slot, 0, left.Capacity()+right.Capacity())
	for _, inv := range []Inventory{left, right} {
		for _, slot := range inv.Slots() {
			key := keyOf(slot)
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, slot)
		}
	}
	return NewSlotListAdapter(merged)
}

// intersectInventories keeps the slots of left that right also addresses.
func intersectInventories(left Inventory, right Inventory) Inventory {
	if IsEmptyInventory(left) || IsEmptyInventory(right) {
		return Empty
	}
	present := map[slotKey]struct{}{}
	for _, slot := range right.Slots() {
		present[keyOf(slot)] = struct{}{}
	}
	kept := make([]Slot, 0, min(left.Capacity(), right.Capacity()))
	for _, slot := range left.Slots() {
		key := keyOf(slot)
		if _, ok := present[key]; !ok {
			continue
		}
		delete(present, key)
		kept = append(kept, slot)
	}
	if len(kept) == 0 {
		return Empty
	}
	return NewSlotListAdapter(kept)
}
