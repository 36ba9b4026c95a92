package core

import "sort"

// DefaultIndexedThreshold is the number of children above which a compound
// provider resolves by binary search instead of a linear scan.
const DefaultIndexedThreshold = 16

type providerEntry struct {
	offset   int
	size     int
	provider SlotLensProvider
}

func (e providerEntry) contains(index int) bool {
	return index >= e.offset && index < e.offset+e.size
}

// CompoundSlotLensProvider merges the providers of several containers by
// offset. Entries are appended in registration order and never change after
// the composite is finalized.
type CompoundSlotLensProvider struct {
	entries          []providerEntry
	size             int
	indexedThreshold int
}

// NewCompoundSlotLensProvider creates an empty provider. A threshold <= 0
// always scans linearly.
func NewCompoundSlotLensProvider(indexedThreshold int) *CompoundSlotLensProvider {
	return &CompoundSlotLensProvider{indexedThreshold: indexedThreshold}
}

// Add appends the provider of adapter at the current end of the index space.
func (p *CompoundSlotLensProvider) Add(adapter InventoryAdapter) *CompoundSlotLensProvider {
	if adapter == nil {
		return p
	}
	return p.AddProvider(adapter.SlotProvider())
}

func (p *CompoundSlotLensProvider) AddProvider(provider SlotLensProvider) *CompoundSlotLensProvider {
	if provider == nil {
		return p
	}
	size := provider.Size()
	p.entries = append(p.entries, providerEntry{
		offset:   p.size,
		size:     size,
		provider: provider,
	})
	p.size += size
	return p
}

func (p *CompoundSlotLensProvider) Size() int {
	if p == nil {
		return 0
	}
	return p.size
}

func (p *CompoundSlotLensProvider) Len() int {
	if p == nil {
		return 0
	}
	return len(p.entries)
}

func (p *CompoundSlotLensProvider) Indexed() bool {
	return p.indexedThreshold > 0 && len(p.entries) > p.indexedThreshold
}

func (p *CompoundSlotLensProvider) SlotLens(index int) (SlotLens, bool) {
	if p == nil || index < 0 || index >= p.size {
		return SlotLens{}, false
	}
	entry, ok := p.locate(index)
	if !ok {
		return SlotLens{}, false
	}
	return entry.provider.SlotLens(index - entry.offset)
}

func (p *CompoundSlotLensProvider) locate(index int) (providerEntry, bool) {
	if p.Indexed() {
		position := sort.Search(len(p.entries), func(i int) bool {
			return p.entries[i].offset+p.entries[i].size > index
		})
		if position < len(p.entries) && p.entries[position].contains(index) {
			return p.entries[position], true
		}
		return providerEntry{}, false
	}
	for _, entry := range p.entries {
		if entry.contains(index) {
			return entry, true
		}
	}
	return providerEntry{}, false
}

// CompoundLens composes an ordered list of child lenses. Child n starts at
// the running total of the sizes of children 0..n-1.
type CompoundLens struct {
	base     int
	size     int
	children []Lens
	offsets  []int
	provider SlotLensProvider
}

type CompoundLensBuilder struct {
	lenses []Lens
}

func NewCompoundLensBuilder() *CompoundLensBuilder {
	return &CompoundLensBuilder{}
}

func (b *CompoundLensBuilder) Add(lenses ...Lens) *CompoundLensBuilder {
	for _, lens := range lenses {
		if lens == nil {
			continue
		}
		b.lenses = append(b.lenses, lens)
	}
	return b
}

// Build finalizes the compound over provider. With a nil provider the
// compound resolves through its children's own lenses.
func (b *CompoundLensBuilder) Build(provider SlotLensProvider) *CompoundLens {
	children := append([]Lens(nil), b.lenses...)
	offsets := make([]int, len(children))
	size := 0
	for position, child := range children {
		offsets[position] = size
		size += child.Size()
	}
	if provider == nil {
		compound := NewCompoundSlotLensProvider(DefaultIndexedThreshold)
		for _, child := range children {
			compound.AddProvider(lensSlotLensProvider{lens: child})
		}
		provider = compound
	}
	return &CompoundLens{
		size:     size,
		children: children,
		offsets:  offsets,
		provider: provider,
	}
}

func (l *CompoundLens) Base() int {
	return l.base
}

func (l *CompoundLens) Size() int {
	return l.size
}

func (l *CompoundLens) Children() []Lens {
	return append([]Lens(nil), l.children...)
}

func (l *CompoundLens) Provider() SlotLensProvider {
	return l.provider
}

func (l *CompoundLens) SlotLens(index int) (SlotLens, bool) {
	return resolveLens(l.base, l.size, l.provider, index)
}

// ChildOffset returns the flat offset at which child position starts.
func (l *CompoundLens) ChildOffset(position int) (int, bool) {
	if position < 0 || position >= len(l.offsets) {
		return 0, false
	}
	return l.offsets[position], true
}

// ChildAt returns the child owning index together with the index relative to
// that child.
func (l *CompoundLens) ChildAt(index int) (position int, local int, ok bool) {
	if index < 0 || index >= l.size {
		return 0, 0, false
	}
	for i, child := range l.children {
		offset := l.offsets[i]
		if index >= offset && index < offset+child.Size() {
			return i, index - offset, true
		}
	}
	return 0, 0, false
}
