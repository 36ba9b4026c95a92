package core

// Fabric is the raw slot storage a concrete container exposes to the lens
// framework. Implementations must be comparable (pointer types), since slot
// identity is derived from the fabric value and the index.
type Fabric interface {
	Capacity() int
	Get(index int) ItemSnapshot
	Put(index int, item ItemSnapshot)
}

// SlotRules is implemented by fabrics that restrict what a slot accepts.
type SlotRules interface {
	// SlotLimit returns the maximum quantity for the slot; 0 means the item
	// stack limit applies.
	SlotLimit(index int) int
	Accepts(index int, item ItemSnapshot) bool
}

// SlotFilter decides whether an item may be placed into a slot.
type SlotFilter func(item ItemSnapshot) bool

// AcceptTypes returns a filter admitting only the given item types.
func AcceptTypes(itemTypes ...string) SlotFilter {
	allowed := make(map[string]struct{}, len(itemTypes))
	for _, itemType := range itemTypes {
		allowed[itemType] = struct{}{}
	}
	return func(item ItemSnapshot) bool {
		_, ok := allowed[item.ItemType]
		return ok
	}
}

// RejectAll is the filter of output-only slots.
func RejectAll(ItemSnapshot) bool { return false }

type slotFabric struct {
	slots  []ItemSnapshot
	limit  int
	filter SlotFilter
}

func newSlotFabric(capacity int, limit int, filter SlotFilter) *slotFabric {
	if capacity < 0 {
		capacity = 0
	}
	return &slotFabric{
		slots:  make([]ItemSnapshot, capacity),
		limit:  limit,
		filter: filter,
	}
}

func (f *slotFabric) Capacity() int {
	return len(f.slots)
}

func (f *slotFabric) Get(index int) ItemSnapshot {
	if index < 0 || index >= len(f.slots) {
		return ItemSnapshot{}
	}
	return f.slots[index]
}

func (f *slotFabric) Put(index int, item ItemSnapshot) {
	if index < 0 || index >= len(f.slots) {
		return
	}
	if item.IsEmpty() {
		item = ItemSnapshot{}
	}
	f.slots[index] = item
}

func (f *slotFabric) SlotLimit(int) int {
	return f.limit
}

func (f *slotFabric) Accepts(_ int, item ItemSnapshot) bool {
	if f.filter == nil {
		return true
	}
	return f.filter(item)
}
