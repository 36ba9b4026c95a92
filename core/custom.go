package core

import "github.com/google/uuid"

// CustomInventory is the composite produced by InventoryBuilder. It keeps
// non-owning references to its children; direct mutation of a child is
// visible through the composite.
type CustomInventory struct {
	lensInventory
	compound    *CompoundLens
	provider    SlotLensProvider
	children    []AdaptedInventory
	identity    uuid.UUID
	hasIdentity bool
	carrier     Carrier
}

func (c *CustomInventory) Identity() (uuid.UUID, bool) {
	return c.identity, c.hasIdentity
}

func (c *CustomInventory) Carrier() Carrier {
	return c.carrier
}

func (c *CustomInventory) Lens() *CompoundLens {
	return c.compound
}

func (c *CustomInventory) SlotProvider() SlotLensProvider {
	return c.provider
}

func (c *CustomInventory) Children() []Inventory {
	children := make([]Inventory, 0, len(c.children))
	for _, child := range c.children {
		children = append(children, child)
	}
	return children
}

// ChildAt returns the child container owning the flat index and the index
// local to that child.
func (c *CustomInventory) ChildAt(index int) (Inventory, int, bool) {
	position, local, ok := c.compound.ChildAt(index)
	if !ok || position >= len(c.children) {
		return nil, 0, false
	}
	return c.children[position], local, true
}

func (c *CustomInventory) Union(other Inventory) Inventory {
	return unionInventories(c, other)
}

func (c *CustomInventory) Intersect(other Inventory) Inventory {
	return intersectInventories(c, other)
}
