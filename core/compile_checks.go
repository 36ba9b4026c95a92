package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ Registry         = (*InventoryRegistry)(nil)
	_ InventoryService = (*Service)(nil)

	_ AdaptedInventory = (*SlotArray)(nil)
	_ AdaptedInventory = (*GridInventory)(nil)
	_ AdaptedInventory = (*SlotListAdapter)(nil)
	_ AdaptedInventory = (*CustomInventory)(nil)
	_ AdaptedInventory = EmptyInventory{}

	_ Lens = (*SlotNodeLens)(nil)
	_ Lens = (*IndexedLens)(nil)
	_ Lens = (*CompoundLens)(nil)
	_ Lens = (*GridLens)(nil)
	_ Lens = (*columnLens)(nil)

	_ SlotLensProvider = (*FabricSlotLensProvider)(nil)
	_ SlotLensProvider = (*CompoundSlotLensProvider)(nil)

	_ Fabric    = (*slotFabric)(nil)
	_ SlotRules = (*slotFabric)(nil)

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
