package core

import "github.com/google/uuid"

const (
	KindCustom   = "custom"
	KindSlots    = "slots"
	KindGrid     = "grid"
	KindSlotList = "slot_list"
	KindEmpty    = "empty"
	KindAdapter  = "adapter"
)

// InventoryDescription is a read-only summary of an inventory tree.
type InventoryDescription struct {
	ID            uuid.UUID              `json:"id,omitempty" yaml:"id,omitempty"`
	Kind          string                 `json:"kind" yaml:"kind"`
	Capacity      int                    `json:"capacity" yaml:"capacity"`
	FreeSlots     int                    `json:"free_slots" yaml:"free_slots"`
	TotalQuantity int                    `json:"total_quantity" yaml:"total_quantity"`
	Width         int                    `json:"width,omitempty" yaml:"width,omitempty"`
	Height        int                    `json:"height,omitempty" yaml:"height,omitempty"`
	Carrier       string                 `json:"carrier,omitempty" yaml:"carrier,omitempty"`
	Children      []InventoryDescription `json:"children,omitempty" yaml:"children,omitempty"`
}

func DescribeInventory(inv Inventory) InventoryDescription {
	if inv == nil {
		inv = Empty
	}
	desc := InventoryDescription{
		Kind:          inventoryKind(inv),
		Capacity:      inv.Capacity(),
		FreeSlots:     inv.FreeSlots(),
		TotalQuantity: inv.TotalQuantity(),
	}
	switch typed := inv.(type) {
	case *CustomInventory:
		if id, ok := typed.Identity(); ok {
			desc.ID = id
		}
		if carrier := typed.Carrier(); carrier != nil {
			desc.Carrier = carrier.CarrierID()
		}
	case *GridInventory:
		desc.Width = typed.Width()
		desc.Height = typed.Height()
	}
	for _, child := range inv.Children() {
		desc.Children = append(desc.Children, DescribeInventory(child))
	}
	return desc
}

func inventoryKind(inv Inventory) string {
	switch inv.(type) {
	case *CustomInventory:
		return KindCustom
	case *SlotArray:
		return KindSlots
	case *GridInventory:
		return KindGrid
	case *SlotListAdapter:
		return KindSlotList
	case EmptyInventory:
		return KindEmpty
	default:
		return KindAdapter
	}
}

// IndexResolution describes where a flat index lands in an inventory tree.
// Path holds the child positions walked from the root.
type IndexResolution struct {
	Index int          `json:"index" yaml:"index"`
	Path  []int        `json:"path" yaml:"path"`
	Local int          `json:"local" yaml:"local"`
	Kind  string       `json:"kind" yaml:"kind"`
	Grid  bool         `json:"grid" yaml:"grid"`
	X     int          `json:"x" yaml:"x"`
	Y     int          `json:"y" yaml:"y"`
	Item  ItemSnapshot `json:"item" yaml:"item"`
}

func ResolveIndex(inv Inventory, index int) (IndexResolution, bool) {
	if inv == nil || index < 0 || index >= inv.Capacity() {
		return IndexResolution{}, false
	}
	out := IndexResolution{Index: index, Path: []int{}}
	if item, ok := inv.PeekAt(index); ok {
		out.Item = item
	}
	current, local := inv, index
	for {
		custom, ok := current.(*CustomInventory)
		if !ok {
			break
		}
		position, childLocal, found := custom.compound.ChildAt(local)
		if !found || position >= len(custom.children) {
			return IndexResolution{}, false
		}
		out.Path = append(out.Path, position)
		current, local = custom.children[position], childLocal
	}
	out.Local = local
	out.Kind = inventoryKind(current)
	if grid, ok := current.(*GridInventory); ok {
		out.Grid = true
		out.X, out.Y, _ = grid.Grid().Position(local)
	}
	return out, true
}
