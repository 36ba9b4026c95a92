package core

import "testing"

func TestGridLens_PositionAndOffset(t *testing.T) {
	grid := NewGridInventory(4, 3, 0, nil).Grid()

	x, y, ok := grid.Position(6)
	if !ok || x != 2 || y != 1 {
		t.Fatalf("expected (2,1), got (%d,%d,%v)", x, y, ok)
	}
	offset, ok := grid.Offset(3, 2)
	if !ok || offset != 11 {
		t.Fatalf("expected offset 11, got %d", offset)
	}
	if _, _, ok := grid.Position(12); ok {
		t.Fatalf("expected out of range position")
	}
	if _, ok := grid.Offset(4, 0); ok {
		t.Fatalf("expected out of range offset")
	}
	if len(grid.Children()) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(grid.Children()))
	}
	if err := VerifyLens(grid); err != nil {
		t.Fatalf("expected valid grid lens, got %v", err)
	}
}

func TestGridLens_RowAndColumn(t *testing.T) {
	inv := NewGridInventory(3, 2, 0, nil)
	inv.Set(4, NewItem("stone", 1))

	row, ok := inv.Grid().Row(1)
	if !ok || row.Size() != 3 {
		t.Fatalf("expected row of 3")
	}
	lens, _ := row.SlotLens(1)
	if lens.Peek() != NewItem("stone", 1) {
		t.Fatalf("expected row 1 cell 1 to hold stone, got %v", lens.Peek())
	}

	column, ok := inv.Grid().Column(1)
	if !ok || column.Size() != 2 {
		t.Fatalf("expected column of 2")
	}
	lens, _ = column.SlotLens(1)
	if lens.Peek() != NewItem("stone", 1) {
		t.Fatalf("expected column 1 cell 1 to hold stone, got %v", lens.Peek())
	}
	if _, ok := column.SlotLens(2); ok {
		t.Fatalf("expected column to stop at height")
	}
}

func TestGridInventory_ZeroSizeBehavesAsEmpty(t *testing.T) {
	inv := NewGridInventory(0, 5, 0, nil)
	if inv.Capacity() != 0 || inv.Width() != 0 || inv.Height() != 0 {
		t.Fatalf("expected zero sized grid")
	}
	if got := inv.Offer(0, NewItem("stone", 1)).Type(); got != ResultNoSlot {
		t.Fatalf("expected no_slot, got %q", got)
	}
	if _, ok := inv.SlotAt(0, 0); ok {
		t.Fatalf("expected no cell")
	}
}
