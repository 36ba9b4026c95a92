package core

import (
	"errors"
	"fmt"
)

var ErrLensInvariant = errors.New("core: lens invariant violated")

// SlotLens is the terminal mapping of a flat index onto exactly one slot of a
// fabric.
type SlotLens struct {
	Fabric Fabric
	Index  int
}

func (l SlotLens) Valid() bool {
	return l.Fabric != nil && l.Index >= 0 && l.Index < l.Fabric.Capacity()
}

func (l SlotLens) Peek() ItemSnapshot {
	if !l.Valid() {
		return ItemSnapshot{}
	}
	return l.Fabric.Get(l.Index)
}

func (l SlotLens) Put(item ItemSnapshot) {
	if !l.Valid() {
		return
	}
	l.Fabric.Put(l.Index, item)
}

// Limit returns the effective quantity limit of the slot for item.
func (l SlotLens) Limit(item ItemSnapshot) int {
	limit := item.StackLimit()
	if rules, ok := l.Fabric.(SlotRules); ok {
		if slotLimit := rules.SlotLimit(l.Index); slotLimit > 0 && slotLimit < limit {
			limit = slotLimit
		}
	}
	return limit
}

func (l SlotLens) Accepts(item ItemSnapshot) bool {
	if rules, ok := l.Fabric.(SlotRules); ok {
		return rules.Accepts(l.Index, item)
	}
	return true
}

// SlotLensProvider resolves a flat index to the slot lens that owns it.
type SlotLensProvider interface {
	Size() int
	SlotLens(index int) (SlotLens, bool)
}

// FabricSlotLensProvider maps index i to slot i of a single fabric.
type FabricSlotLensProvider struct {
	fabric Fabric
}

func NewFabricSlotLensProvider(fabric Fabric) *FabricSlotLensProvider {
	return &FabricSlotLensProvider{fabric: fabric}
}

func (p *FabricSlotLensProvider) Size() int {
	if p == nil || p.fabric == nil {
		return 0
	}
	return p.fabric.Capacity()
}

func (p *FabricSlotLensProvider) SlotLens(index int) (SlotLens, bool) {
	if index < 0 || index >= p.Size() {
		return SlotLens{}, false
	}
	return SlotLens{Fabric: p.fabric, Index: index}, true
}

// Lens owns the range [Base, Base+Size) of its provider's index space. A
// lens either terminates in a single slot or maps sub-ranges to children.
// SlotLens takes an index relative to the lens, in [0, Size).
type Lens interface {
	Base() int
	Size() int
	Children() []Lens
	Provider() SlotLensProvider
	SlotLens(index int) (SlotLens, bool)
}

func resolveLens(base int, size int, provider SlotLensProvider, index int) (SlotLens, bool) {
	if provider == nil || index < 0 || index >= size {
		return SlotLens{}, false
	}
	return provider.SlotLens(base + index)
}

// SlotNodeLens is a leaf lens wrapping one slot.
type SlotNodeLens struct {
	base     int
	provider SlotLensProvider
}

func NewSlotNodeLens(base int, provider SlotLensProvider) *SlotNodeLens {
	return &SlotNodeLens{base: base, provider: provider}
}

func (l *SlotNodeLens) Base() int {
	return l.base
}

func (l *SlotNodeLens) Size() int {
	return 1
}

func (l *SlotNodeLens) Children() []Lens {
	return nil
}

func (l *SlotNodeLens) Provider() SlotLensProvider {
	return l.provider
}

func (l *SlotNodeLens) SlotLens(index int) (SlotLens, bool) {
	return resolveLens(l.base, 1, l.provider, index)
}

// IndexedLens is a flat run of size slots starting at base; each slot is a
// child node.
type IndexedLens struct {
	base     int
	size     int
	provider SlotLensProvider
	children []Lens
}

func NewIndexedLens(base int, size int, provider SlotLensProvider) *IndexedLens {
	if size < 0 {
		size = 0
	}
	children := make([]Lens, 0, size)
	for offset := 0; offset < size; offset++ {
		children = append(children, NewSlotNodeLens(base+offset, provider))
	}
	return &IndexedLens{
		base:     base,
		size:     size,
		provider: provider,
		children: children,
	}
}

func (l *IndexedLens) Base() int {
	return l.base
}

func (l *IndexedLens) Size() int {
	return l.size
}

func (l *IndexedLens) Children() []Lens {
	return l.children
}

func (l *IndexedLens) Provider() SlotLensProvider {
	return l.provider
}

func (l *IndexedLens) SlotLens(index int) (SlotLens, bool) {
	return resolveLens(l.base, l.size, l.provider, index)
}

// lensSlotLensProvider exposes a lens as a provider over [0, lens.Size()).
type lensSlotLensProvider struct {
	lens Lens
}

func (p lensSlotLensProvider) Size() int {
	if p.lens == nil {
		return 0
	}
	return p.lens.Size()
}

func (p lensSlotLensProvider) SlotLens(index int) (SlotLens, bool) {
	if p.lens == nil {
		return SlotLens{}, false
	}
	return p.lens.SlotLens(index)
}

// VerifyLens checks that every composite node of the tree is exactly the sum
// of its children and that every index of the root resolves to a valid slot.
func VerifyLens(lens Lens) error {
	if lens == nil {
		return fmt.Errorf("%w: nil lens", ErrLensInvariant)
	}
	if err := verifyLensSizes(lens, "root"); err != nil {
		return err
	}
	for index := 0; index < lens.Size(); index++ {
		slot, ok := lens.SlotLens(index)
		if !ok || !slot.Valid() {
			return fmt.Errorf("%w: index %d does not resolve", ErrLensInvariant, index)
		}
	}
	return nil
}

func verifyLensSizes(lens Lens, path string) error {
	children := lens.Children()
	if len(children) == 0 {
		if lens.Size() > 1 {
			if _, ok := lens.(*SlotNodeLens); ok {
				return fmt.Errorf("%w: %s: slot node with size %d", ErrLensInvariant, path, lens.Size())
			}
		}
		return nil
	}
	total := 0
	for position, child := range children {
		if child == nil {
			return fmt.Errorf("%w: %s: nil child at %d", ErrLensInvariant, path, position)
		}
		total += child.Size()
		if err := verifyLensSizes(child, fmt.Sprintf("%s/%d", path, position)); err != nil {
			return err
		}
	}
	if total != lens.Size() {
		return fmt.Errorf("%w: %s: size %d, children sum %d", ErrLensInvariant, path, lens.Size(), total)
	}
	return nil
}
