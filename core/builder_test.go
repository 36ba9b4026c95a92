package core

import (
	"testing"

	"github.com/google/uuid"
)

func TestInventoryBuilder_SlotsCapacityAndNoSlot(t *testing.T) {
	inv := NewInventoryBuilder().Slots(9).CompleteStructure().Build()

	if inv.Capacity() != 9 {
		t.Fatalf("expected capacity 9, got %d", inv.Capacity())
	}
	if _, ok := inv.Slot(9); ok {
		t.Fatalf("expected slot 9 not to resolve")
	}
	result := inv.Offer(9, NewItem("stone", 1))
	if result.Type() != ResultNoSlot {
		t.Fatalf("expected no_slot, got %q", result.Type())
	}
	if got := inv.Poll(-1).Type(); got != ResultNoSlot {
		t.Fatalf("expected no_slot for negative index, got %q", got)
	}
}

func TestInventoryBuilder_GridResolvesCell(t *testing.T) {
	inv := NewInventoryBuilder().Grid(3, 3).CompleteStructure().Build()
	if inv.Capacity() != 9 {
		t.Fatalf("expected capacity 9, got %d", inv.Capacity())
	}

	resolution, ok := ResolveIndex(inv, 4)
	if !ok {
		t.Fatalf("expected index 4 to resolve")
	}
	if !resolution.Grid || resolution.X != 1 || resolution.Y != 1 {
		t.Fatalf("expected grid cell (1,1), got %+v", resolution)
	}

	grid, ok := inv.Children()[0].(*GridInventory)
	if !ok {
		t.Fatalf("expected grid child, got %T", inv.Children()[0])
	}
	cell, _ := grid.SlotAt(1, 1)
	slot := mustSlot(t, inv, 4)
	if !slot.Same(cell) {
		t.Fatalf("expected flat index 4 to address grid cell (1,1)")
	}
}

func TestInventoryBuilder_CapacityIsSumOfChildren(t *testing.T) {
	existing := NewSlotArray(5, 0, nil)
	inv := NewInventoryBuilder().
		Slots(2).
		Grid(2, 3).
		Inventory(existing).
		Inventory(Empty).
		Slots(0).
		CompleteStructure().
		Build()

	sum := 0
	for _, child := range inv.Children() {
		sum += child.Capacity()
	}
	if inv.Capacity() != sum || sum != 13 {
		t.Fatalf("expected capacity 13 equal to children sum, got %d and %d", inv.Capacity(), sum)
	}
	if err := VerifyLens(inv.RootLens()); err != nil {
		t.Fatalf("expected valid lens, got %v", err)
	}
}

func TestInventoryBuilder_EveryIndexResolvesToOneSlot(t *testing.T) {
	inv := NewInventoryBuilder().Slots(3).Grid(2, 2).Slots(1).CompleteStructure().Build()

	seen := map[slotKey]int{}
	for index := 0; index < inv.Capacity(); index++ {
		key := keyOf(mustSlot(t, inv, index))
		if previous, ok := seen[key]; ok {
			t.Fatalf("expected unique slot per index, %d aliases %d", index, previous)
		}
		seen[key] = index
	}
	for _, index := range []int{-1, inv.Capacity(), inv.Capacity() + 10} {
		if _, ok := inv.Slot(index); ok {
			t.Fatalf("expected index %d to be rejected", index)
		}
	}
}

func TestInventoryBuilder_IndexedAndScannedResolutionAgree(t *testing.T) {
	build := func(threshold int) *CustomInventory {
		b := NewInventoryBuilder(WithIndexedThreshold(threshold))
		for i := 0; i < 20; i++ {
			b.Slots(i%3 + 1)
		}
		return b.CompleteStructure().Build()
	}
	scanned := build(0)
	indexed := build(4)
	if !indexed.SlotProvider().(*CompoundSlotLensProvider).Indexed() {
		t.Fatalf("expected indexed provider")
	}
	if scanned.SlotProvider().(*CompoundSlotLensProvider).Indexed() {
		t.Fatalf("expected scanning provider")
	}
	for index := 0; index < scanned.Capacity(); index++ {
		a, _, _ := scanned.ChildAt(index)
		b, _, _ := indexed.ChildAt(index)
		sa := mustSlot(t, scanned, index)
		sb := mustSlot(t, indexed, index)
		if sa.Lens().Index != sb.Lens().Index || a.Capacity() != b.Capacity() {
			t.Fatalf("expected identical resolution at %d", index)
		}
	}
}

func TestInventoryBuilder_ResetLeavesNoResidue(t *testing.T) {
	id := uuid.New()
	builder := NewInventoryBuilder()
	first := builder.Slots(4).Grid(2, 2).CompleteStructure().Identity(id).Carrier(testCarrier{id: "chest"}).Build()
	if first.Capacity() != 8 {
		t.Fatalf("expected first capacity 8, got %d", first.Capacity())
	}

	reused := builder.Reset().Slots(3).CompleteStructure().Build()
	fresh := NewInventoryBuilder().Slots(3).CompleteStructure().Build()

	if reused.Capacity() != fresh.Capacity() {
		t.Fatalf("expected capacity %d, got %d", fresh.Capacity(), reused.Capacity())
	}
	if len(reused.Children()) != len(fresh.Children()) {
		t.Fatalf("expected %d children, got %d", len(fresh.Children()), len(reused.Children()))
	}
	if _, ok := reused.Identity(); ok {
		t.Fatalf("expected no identity after reset")
	}
	if reused.Carrier() != nil {
		t.Fatalf("expected no carrier after reset")
	}
	if DescribeInventory(reused).Kind != DescribeInventory(fresh).Kind {
		t.Fatalf("expected identical description")
	}
	if got, _ := first.Identity(); got != id {
		t.Fatalf("expected first inventory to keep identity")
	}
	if first.Capacity() != 8 {
		t.Fatalf("expected first inventory to be unaffected by reset, got %d", first.Capacity())
	}
}

func TestInventoryBuilder_StaleEndCannotBuildAfterReset(t *testing.T) {
	oldID := uuid.New()
	builder := NewInventoryBuilder()
	stale := builder.Slots(1).CompleteStructure().Identity(oldID)
	stale.Build()

	builder.Reset().Slots(5)
	current := builder.CompleteStructure()
	expectPanicCode(t, InventoryErrorBuilderConsumed, func() {
		stale.Build()
	})

	inv := current.Build()
	if inv.Capacity() != 5 {
		t.Fatalf("expected capacity 5, got %d", inv.Capacity())
	}
	if _, ok := inv.Identity(); ok {
		t.Fatalf("expected stale identity not to leak into the new build")
	}
}

func TestInventoryBuilder_ResetBeforeBuildInvalidatesEnd(t *testing.T) {
	builder := NewInventoryBuilder()
	pending := builder.Slots(2).CompleteStructure()
	builder.Reset().Slots(3).CompleteStructure()

	expectPanicCode(t, InventoryErrorBuilderConsumed, func() {
		pending.Build()
	})
}

func TestInventoryBuilder_TypedNilInventoryPanicsBadInput(t *testing.T) {
	expectPanicCode(t, InventoryErrorBadInput, func() {
		NewInventoryBuilder().Inventory((*SlotArray)(nil))
	})
	expectPanicCode(t, InventoryErrorBadInput, func() {
		NewInventoryBuilder().Inventory(nil)
	})
}

func TestInventoryBuilder_CompleteStructureTwicePanics(t *testing.T) {
	builder := NewInventoryBuilder().Slots(1)
	builder.CompleteStructure()
	expectPanicCode(t, InventoryErrorStructureFinalized, func() {
		builder.CompleteStructure()
	})
}

func TestInventoryBuilder_AccumulateAfterFinalizePanics(t *testing.T) {
	builder := NewInventoryBuilder().Slots(1)
	builder.CompleteStructure()
	expectPanicCode(t, InventoryErrorStructureFinalized, func() {
		builder.Slots(2)
	})
}

func TestInventoryBuilder_BuildConsumesBuilder(t *testing.T) {
	builder := NewInventoryBuilder().Slots(1)
	end := builder.CompleteStructure()
	end.Build()

	expectPanicCode(t, InventoryErrorBuilderConsumed, func() {
		end.Build()
	})
	expectPanicCode(t, InventoryErrorBuilderConsumed, func() {
		builder.Grid(1, 1)
	})
	if builder.Size() != 0 {
		t.Fatalf("expected consumed builder to hold nothing, got size %d", builder.Size())
	}
}

func TestInventoryBuilder_InvalidInputPanics(t *testing.T) {
	expectPanicCode(t, InventoryErrorBadInput, func() {
		NewInventoryBuilder().Slots(-1)
	})
	expectPanicCode(t, InventoryErrorBadInput, func() {
		NewInventoryBuilder().Grid(2, -1)
	})
	expectPanicCode(t, InventoryErrorBadInput, func() {
		NewInventoryBuilder().Inventory(nil)
	})
}

func TestInventoryBuilder_EmptyBuildBehavesAsEmpty(t *testing.T) {
	inv := NewInventoryBuilder().CompleteStructure().Build()
	if inv.Capacity() != 0 {
		t.Fatalf("expected capacity 0, got %d", inv.Capacity())
	}
	if got := inv.Offer(0, NewItem("stone", 1)).Type(); got != ResultNoSlot {
		t.Fatalf("expected no_slot, got %q", got)
	}
	if got := inv.Union(Empty); got != Inventory(Empty) {
		t.Fatalf("expected union of empties to be Empty, got %T", got)
	}
}

func TestInventoryBuilder_ChildMutationVisibleThroughComposite(t *testing.T) {
	chest := NewSlotArray(2, 0, nil)
	inv := NewInventoryBuilder().Slots(1).Inventory(chest).CompleteStructure().Build()

	chest.Set(1, NewItem("gold", 7))
	item, ok := inv.PeekAt(2)
	if !ok || item != NewItem("gold", 7) {
		t.Fatalf("expected gold x7 at index 2, got %v", item)
	}

	inv.Poll(2)
	if item, _ := chest.PeekAt(1); !item.IsEmpty() {
		t.Fatalf("expected composite poll to reach the child, got %v", item)
	}
}

func TestInventoryBuilder_NestedCompositesAndLogging(t *testing.T) {
	logger := newCaptureLogger()
	inner := NewInventoryBuilder(WithBuilderLogger(logger)).Slots(2).Grid(2, 1).CompleteStructure().Build()
	outer := NewInventoryBuilder(WithBuilderLogger(logger)).Slots(1).Inventory(inner).CompleteStructure().Build()

	if outer.Capacity() != 5 {
		t.Fatalf("expected capacity 5, got %d", outer.Capacity())
	}
	resolution, ok := ResolveIndex(outer, 4)
	if !ok {
		t.Fatalf("expected index 4 to resolve")
	}
	if len(resolution.Path) != 2 || resolution.Path[0] != 1 || resolution.Path[1] != 1 {
		t.Fatalf("expected path [1 1], got %v", resolution.Path)
	}
	if !resolution.Grid || resolution.X != 1 || resolution.Y != 0 {
		t.Fatalf("expected grid cell (1,0), got %+v", resolution)
	}

	records := logger.snapshot()
	if len(records) != 2 {
		t.Fatalf("expected 2 finalization logs, got %d", len(records))
	}
	if records[1].level != "debug" || records[1].fields["capacity"] != 5 {
		t.Fatalf("expected debug log with capacity 5, got %+v", records[1])
	}
}

func TestInventoryBuilder_SlotLimitOption(t *testing.T) {
	inv := NewInventoryBuilder(WithSlotLimit(4)).Slots(1).CompleteStructure().Build()
	result := inv.Offer(0, NewItem("stone", 6))
	if result.Type() != ResultFailure {
		t.Fatalf("expected failure, got %q", result.Type())
	}
	if item, _ := inv.PeekAt(0); item.Quantity != 4 {
		t.Fatalf("expected 4 stored, got %v", item)
	}
}
