package core

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type InventoryRegistry struct {
	mu          sync.RWMutex
	inventories map[uuid.UUID]Inventory
}

func NewInventoryRegistry() *InventoryRegistry {
	return &InventoryRegistry{inventories: make(map[uuid.UUID]Inventory)}
}

func (r *InventoryRegistry) Register(id uuid.UUID, inv Inventory) error {
	if inv == nil {
		return fmt.Errorf("core: inventory is required")
	}
	if id == uuid.Nil {
		return fmt.Errorf("core: inventory id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.inventories[id]; exists {
		return fmt.Errorf("%w: %s", ErrInventoryAlreadyRegistered, id)
	}
	r.inventories[id] = inv
	return nil
}

func (r *InventoryRegistry) Unregister(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.inventories[id]; !exists {
		return false
	}
	delete(r.inventories, id)
	return true
}

func (r *InventoryRegistry) Get(id uuid.UUID) (Inventory, bool) {
	if id == uuid.Nil {
		return nil, false
	}
	r.mu.RLock()
	inv, ok := r.inventories[id]
	r.mu.RUnlock()
	return inv, ok
}

// List returns the registered inventories ordered by id.
func (r *InventoryRegistry) List() []RegisteredInventory {
	r.mu.RLock()
	out := make([]RegisteredInventory, 0, len(r.inventories))
	for id, inv := range r.inventories {
		out = append(out, RegisteredInventory{ID: id, Inventory: inv})
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
