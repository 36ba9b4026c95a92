package layout

import (
	"strconv"

	"github.com/goliatone/go-inventory/core"
	"github.com/google/uuid"
)

// Builder creates the inventory builders used for each composite level.
type Builder func() *core.InventoryBuilder

// Build assembles the layout into a custom inventory. newBuilder may be nil;
// a service's NewBuilder keeps the service's threshold and logger. A non-zero
// stack_limit overrides the limit of the builders newBuilder returns.
func (f *File) Build(newBuilder Builder) (*core.CustomInventory, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if newBuilder == nil {
		newBuilder = func() *core.InventoryBuilder {
			return core.NewInventoryBuilder()
		}
	}
	if limit := f.StackLimit; limit > 0 {
		base := newBuilder
		newBuilder = func() *core.InventoryBuilder {
			builder := base()
			core.WithSlotLimit(limit)(builder)
			return builder
		}
	}
	end := buildLevel(newBuilder, f.Children).CompleteStructure()
	if f.Identity != "" {
		end.Identity(uuid.MustParse(f.Identity))
	}
	if f.Carrier != "" {
		end.Carrier(Carrier(f.Carrier))
	}
	return end.Build(), nil
}

func buildLevel(newBuilder Builder, nodes []Node) *core.InventoryBuilder {
	builder := newBuilder()
	for _, node := range nodes {
		switch {
		case node.Grid != nil:
			builder.FilteredGrid(node.Grid.Width, node.Grid.Height, node.filter())
		case len(node.Children) > 0:
			builder.Inventory(buildLevel(newBuilder, node.Children).CompleteStructure().Build())
		default:
			builder.FilteredSlots(node.Slots, node.filter())
		}
	}
	return builder
}

// Names maps each top level child position to its layout name.
func (f *File) Names() []string {
	names := make([]string, len(f.Children))
	for i, child := range f.Children {
		names[i] = child.Name
	}
	return names
}

// PathNames turns a resolution path into layout names, falling back to the
// position for unnamed nodes.
func (f *File) PathNames(path []int) []string {
	out := make([]string, 0, len(path))
	nodes := f.Children
	for _, position := range path {
		if position < 0 || position >= len(nodes) {
			break
		}
		name := nodes[position].Name
		if name == "" {
			name = "#" + strconv.Itoa(position)
		}
		out = append(out, name)
		nodes = nodes[position].Children
	}
	return out
}
