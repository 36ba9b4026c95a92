package command

import (
	"github.com/goliatone/go-inventory/core"
	"github.com/google/uuid"
)

const (
	TypeOffer    = "inventory.command.slot.offer"
	TypeSet      = "inventory.command.slot.set"
	TypePoll     = "inventory.command.slot.poll"
	TypeOfferAll = "inventory.command.offer_all"
	TypeClear    = "inventory.command.clear"
	TypeRevert   = "inventory.command.revert_last"
)

type OfferMessage struct {
	Request core.OfferRequest
}

func (OfferMessage) Type() string { return TypeOffer }

func (m OfferMessage) Validate() error {
	if err := validateInventoryID(m.Request.InventoryID); err != nil {
		return err
	}
	return validateItem("item", m.Request.Item)
}

type SetMessage struct {
	Request core.SetRequest
}

func (SetMessage) Type() string { return TypeSet }

func (m SetMessage) Validate() error {
	if err := validateInventoryID(m.Request.InventoryID); err != nil {
		return err
	}
	return validateItem("item", m.Request.Item)
}

type PollMessage struct {
	Request core.PollRequest
}

func (PollMessage) Type() string { return TypePoll }

func (m PollMessage) Validate() error {
	if err := validateInventoryID(m.Request.InventoryID); err != nil {
		return err
	}
	if m.Request.Limit < 0 {
		return invalidFieldError("limit", m.Request.Limit, "limit must not be negative")
	}
	return nil
}

type OfferAllMessage struct {
	Request core.OfferAllRequest
}

func (OfferAllMessage) Type() string { return TypeOfferAll }

func (m OfferAllMessage) Validate() error {
	if err := validateInventoryID(m.Request.InventoryID); err != nil {
		return err
	}
	if len(m.Request.Items) == 0 {
		return invalidFieldError("items", len(m.Request.Items), "at least one item is required")
	}
	for _, item := range m.Request.Items {
		if err := validateItem("items", item); err != nil {
			return err
		}
	}
	return nil
}

type ClearMessage struct {
	InventoryID uuid.UUID
}

func (ClearMessage) Type() string { return TypeClear }

func (m ClearMessage) Validate() error {
	return validateInventoryID(m.InventoryID)
}

type RevertMessage struct {
	InventoryID uuid.UUID
}

func (RevertMessage) Type() string { return TypeRevert }

func (m RevertMessage) Validate() error {
	return validateInventoryID(m.InventoryID)
}

func validateInventoryID(id uuid.UUID) error {
	if id == uuid.Nil {
		return invalidFieldError("inventory_id", id.String(), "inventory id is required")
	}
	return nil
}

func validateItem(field string, item core.ItemSnapshot) error {
	if err := item.Validate(); err != nil {
		return invalidFieldError(field, item.String(), err.Error())
	}
	return nil
}
