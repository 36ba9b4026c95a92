package query

import (
	"github.com/goliatone/go-inventory/core"
	"github.com/google/uuid"
)

const (
	TypePeek     = "inventory.query.slot.peek"
	TypeDescribe = "inventory.query.describe"
	TypeResolve  = "inventory.query.resolve"
)

type PeekMessage struct {
	Request core.PeekRequest
}

func (PeekMessage) Type() string { return TypePeek }

func (m PeekMessage) Validate() error {
	return validateInventoryID(m.Request.InventoryID)
}

type DescribeMessage struct {
	InventoryID uuid.UUID
}

func (DescribeMessage) Type() string { return TypeDescribe }

func (m DescribeMessage) Validate() error {
	return validateInventoryID(m.InventoryID)
}

type ResolveMessage struct {
	InventoryID uuid.UUID
	Index       int
}

func (ResolveMessage) Type() string { return TypeResolve }

func (m ResolveMessage) Validate() error {
	if err := validateInventoryID(m.InventoryID); err != nil {
		return err
	}
	if m.Index < 0 {
		return invalidFieldError("index", m.Index, "index must not be negative")
	}
	return nil
}

func validateInventoryID(id uuid.UUID) error {
	if id == uuid.Nil {
		return invalidFieldError("inventory_id", id.String(), "inventory id is required")
	}
	return nil
}
