package core

// GridLens maps a width*height rectangle of its provider's index space. Flat
// offset k is the cell (k % width, k / width); rows are its children.
type GridLens struct {
	base     int
	width    int
	height   int
	provider SlotLensProvider
	rows     []Lens
}

// NewGridLens creates a grid lens. A zero width or height yields an empty
// lens that never resolves.
func NewGridLens(base int, width int, height int, provider SlotLensProvider) *GridLens {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	rows := make([]Lens, 0, height)
	for y := 0; y < height; y++ {
		rows = append(rows, NewIndexedLens(base+y*width, width, provider))
	}
	return &GridLens{
		base:     base,
		width:    width,
		height:   height,
		provider: provider,
		rows:     rows,
	}
}

func (l *GridLens) Base() int {
	return l.base
}

func (l *GridLens) Size() int {
	return l.width * l.height
}

func (l *GridLens) Children() []Lens {
	return append([]Lens(nil), l.rows...)
}

func (l *GridLens) Provider() SlotLensProvider {
	return l.provider
}

func (l *GridLens) SlotLens(index int) (SlotLens, bool) {
	return resolveLens(l.base, l.Size(), l.provider, index)
}

func (l *GridLens) Width() int {
	return l.width
}

func (l *GridLens) Height() int {
	return l.height
}

// Position converts a flat offset into grid coordinates.
func (l *GridLens) Position(offset int) (x int, y int, ok bool) {
	if offset < 0 || offset >= l.Size() {
		return 0, 0, false
	}
	return offset % l.width, offset / l.width, true
}

// Offset converts grid coordinates into a flat offset.
func (l *GridLens) Offset(x int, y int) (int, bool) {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return 0, false
	}
	return y*l.width + x, true
}

func (l *GridLens) SlotAt(x int, y int) (SlotLens, bool) {
	offset, ok := l.Offset(x, y)
	if !ok {
		return SlotLens{}, false
	}
	return l.SlotLens(offset)
}

func (l *GridLens) Row(y int) (Lens, bool) {
	if y < 0 || y >= l.height {
		return nil, false
	}
	return l.rows[y], true
}

func (l *GridLens) Column(x int) (Lens, bool) {
	if x < 0 || x >= l.width {
		return nil, false
	}
	return &columnLens{grid: l, x: x}, true
}

// columnLens walks one grid column with a stride of the grid width.
type columnLens struct {
	grid *GridLens
	x    int
}

func (l *columnLens) Base() int {
	return l.grid.base + l.x
}

func (l *columnLens) Size() int {
	return l.grid.height
}

func (l *columnLens) Children() []Lens {
	return nil
}

func (l *columnLens) Provider() SlotLensProvider {
	return l.grid.provider
}

func (l *columnLens) SlotLens(index int) (SlotLens, bool) {
	if index < 0 || index >= l.grid.height {
		return SlotLens{}, false
	}
	return l.grid.SlotAt(l.x, index)
}

// GridInventory is a rectangular container backed by its own storage.
type GridInventory struct {
	lensInventory
	grid     *GridLens
	fabric   *slotFabric
	provider *FabricSlotLensProvider
}

func NewGridInventory(width int, height int, limit int, filter SlotFilter) *GridInventory {
	if width <= 0 || height <= 0 {
		width, height = 0, 0
	}
	fabric := newSlotFabric(width*height, limit, filter)
	provider := NewFabricSlotLensProvider(fabric)
	grid := NewGridLens(0, width, height, provider)
	return &GridInventory{
		lensInventory: lensInventory{lens: grid},
		grid:          grid,
		fabric:        fabric,
		provider:      provider,
	}
}

func (g *GridInventory) Width() int {
	return g.grid.Width()
}

func (g *GridInventory) Height() int {
	return g.grid.Height()
}

func (g *GridInventory) Grid() *GridLens {
	return g.grid
}

func (g *GridInventory) SlotAt(x int, y int) (Slot, bool) {
	offset, ok := g.grid.Offset(x, y)
	if !ok {
		return Slot{}, false
	}
	return g.Slot(offset)
}

func (g *GridInventory) Fabric() Fabric {
	return g.fabric
}

func (g *GridInventory) SlotProvider() SlotLensProvider {
	return g.provider
}

func (g *GridInventory) Children() []Inventory {
	return nil
}

func (g *GridInventory) Union(other Inventory) Inventory {
	return unionInventories(g, other)
}

func (g *GridInventory) Intersect(other Inventory) Inventory {
	return intersectInventories(g, other)
}
