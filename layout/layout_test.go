package layout

import (
	"path/filepath"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-inventory/core"
)

func loadPlayer(t *testing.T) *File {
	t.Helper()
	file, err := LoadFile(filepath.Join("testdata", "player.yaml"))
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	return file
}

func TestLoadFileParsesNestedLayout(t *testing.T) {
	file := loadPlayer(t)

	if file.Name != "player" || file.Carrier != "steve" {
		t.Fatalf("unexpected header %+v", file)
	}
	if len(file.Children) != 4 {
		t.Fatalf("expected 4 top level children, got %d", len(file.Children))
	}
	if file.Capacity() != 41 {
		t.Fatalf("expected capacity 41, got %d", file.Capacity())
	}
	if got := file.Names(); got[1] != "main" || got[3] != "backpack" {
		t.Fatalf("unexpected names %v", got)
	}
}

func TestBuildProducesMatchingInventory(t *testing.T) {
	file := loadPlayer(t)

	inv, err := file.Build(nil)
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}
	if inv.Capacity() != file.Capacity() {
		t.Fatalf("expected capacity %d, got %d", file.Capacity(), inv.Capacity())
	}
	if len(inv.Children()) != 4 {
		t.Fatalf("expected 4 children, got %d", len(inv.Children()))
	}
	id, ok := inv.Identity()
	if !ok || id.String() != file.Identity {
		t.Fatalf("expected identity %s, got %s", file.Identity, id)
	}
	if inv.Carrier() == nil || inv.Carrier().CarrierID() != "steve" {
		t.Fatalf("expected carrier steve")
	}

	if result := inv.Offer(36, core.NewItem("ore", 1)); result.Type() != core.ResultFailure {
		t.Fatalf("expected fuel slot to refuse ore, got %q", result.Type())
	}
	if result := inv.Offer(36, core.NewItem("coal", 8)); result.Type() != core.ResultSuccess {
		t.Fatalf("expected fuel slot to accept coal, got %q", result.Type())
	}
	if result := inv.Offer(9, core.NewItem("ore", 65)); result.Type() != core.ResultFailure {
		t.Fatalf("expected stack limit 64 to reject the remainder, got %q", result.Type())
	}
}

func TestResolutionPathMapsToLayoutNames(t *testing.T) {
	file := loadPlayer(t)
	inv, err := file.Build(nil)
	if err != nil {
		t.Fatalf("build layout: %v", err)
	}

	resolution, ok := core.ResolveIndex(inv, 40)
	if !ok {
		t.Fatalf("expected index 40 to resolve")
	}
	names := file.PathNames(resolution.Path)
	if len(names) != 2 || names[0] != "backpack" || names[1] != "pouch" {
		t.Fatalf("expected backpack/pouch, got %v", names)
	}
	if !resolution.Grid || resolution.X != 0 || resolution.Y != 1 {
		t.Fatalf("expected pouch cell (0,1), got %+v", resolution)
	}

	resolution, _ = core.ResolveIndex(inv, 37)
	if names := file.PathNames(resolution.Path); len(names) != 2 || names[1] != "#0" {
		t.Fatalf("expected unnamed child to fall back to its position, got %v", names)
	}
}

func TestBuildUsesServiceBuilder(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Slots.StackLimit = 4
	svc, err := core.NewService(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	file, err := Parse([]byte("name: chest\nchildren:\n  - slots: 2\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	inv, err := file.Build(svc.NewBuilder)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	result := inv.Offer(0, core.NewItem("ore", 6))
	if result.Type() != core.ResultFailure || len(result.Rejected()) != 1 || result.Rejected()[0].Quantity != 2 {
		t.Fatalf("expected service stack limit 4 to reject 2 ore, got %q %+v", result.Type(), result.Rejected())
	}
}

func TestBuildLayoutStackLimitOverridesServiceBuilder(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.Slots.StackLimit = 4
	svc, err := core.NewService(cfg)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	file, err := Parse([]byte("name: crate\nstack_limit: 10\nchildren:\n  - slots: 1\n  - grid: {width: 1, height: 1}\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	inv, err := file.Build(svc.NewBuilder)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, index := range []int{0, 1} {
		result := inv.Offer(index, core.NewItem("ore", 12))
		if result.Type() != core.ResultFailure || len(result.Rejected()) != 1 || result.Rejected()[0].Quantity != 2 {
			t.Fatalf("expected layout stack limit 10 at index %d, got %q %+v", index, result.Type(), result.Rejected())
		}
	}
}

func TestParseRejectsInvalidLayouts(t *testing.T) {
	raw := []byte(`
identity: not-a-uuid
children:
  - slots: 2
    grid: {width: 1, height: 1}
  - {}
  - children:
      - slots: -1
    accepts: [coal]
`)
	_, err := Parse(raw)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var typed *goerrors.Error
	if !goerrors.As(err, &typed) || typed.TextCode != LayoutErrorInvalid {
		t.Fatalf("expected %s envelope, got %v", LayoutErrorInvalid, err)
	}
	fields := typed.ValidationMap()
	for _, key := range []string{"name", "identity", "children[0]", "children[1]", "children[2]", "children[2].children[0].slots"} {
		if _, ok := fields[key]; !ok {
			t.Fatalf("expected validation error for %q, got %v", key, fields)
		}
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("name: chest\nchildren:\n  - slot: 2\n"))
	if err == nil {
		t.Fatalf("expected unknown field to fail decoding")
	}
	var typed *goerrors.Error
	if !goerrors.As(err, &typed) || typed.Category != goerrors.CategoryBadInput {
		t.Fatalf("expected bad input envelope, got %v", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	var typed *goerrors.Error
	if !goerrors.As(err, &typed) || typed.TextCode != LayoutErrorRead {
		t.Fatalf("expected %s, got %v", LayoutErrorRead, err)
	}
}

func TestOutputNodesRejectEverything(t *testing.T) {
	file, err := Parse([]byte("name: furnace\nchildren:\n  - name: result\n    slots: 1\n    output: true\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	inv, err := file.Build(nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if result := inv.Offer(0, core.NewItem("ingot", 1)); result.Type() != core.ResultFailure {
		t.Fatalf("expected output slot to refuse offers, got %q", result.Type())
	}
}
