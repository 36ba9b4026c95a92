package core

import (
	"errors"
	"fmt"
	"strings"
)

// DefaultMaxStack is the stack limit used when an item does not declare one.
const DefaultMaxStack = 64

var ErrInvalidItem = errors.New("core: invalid item snapshot")

// ItemSnapshot is an immutable view of the contents of one slot. The zero
// value is the empty snapshot.
type ItemSnapshot struct {
	ItemType string
	Quantity int
	MaxStack int
}

func NewItem(itemType string, quantity int) ItemSnapshot {
	return ItemSnapshot{ItemType: strings.TrimSpace(itemType), Quantity: quantity}
}

func (s ItemSnapshot) IsEmpty() bool {
	return strings.TrimSpace(s.ItemType) == "" || s.Quantity <= 0
}

func (s ItemSnapshot) Validate() error {
	if s.Quantity < 0 {
		return fmt.Errorf("%w: negative quantity %d", ErrInvalidItem, s.Quantity)
	}
	if s.MaxStack < 0 {
		return fmt.Errorf("%w: negative max stack %d", ErrInvalidItem, s.MaxStack)
	}
	if s.Quantity > 0 && strings.TrimSpace(s.ItemType) == "" {
		return fmt.Errorf("%w: quantity %d without item type", ErrInvalidItem, s.Quantity)
	}
	return nil
}

func (s ItemSnapshot) StackLimit() int {
	if s.MaxStack > 0 {
		return s.MaxStack
	}
	return DefaultMaxStack
}

// WithQuantity returns a copy holding quantity items; a non-positive quantity
// yields the empty snapshot.
func (s ItemSnapshot) WithQuantity(quantity int) ItemSnapshot {
	if quantity <= 0 {
		return ItemSnapshot{}
	}
	s.Quantity = quantity
	return s
}

// StacksWith reports whether both snapshots can share a slot.
func (s ItemSnapshot) StacksWith(other ItemSnapshot) bool {
	if s.IsEmpty() || other.IsEmpty() {
		return false
	}
	return s.ItemType == other.ItemType && s.StackLimit() == other.StackLimit()
}

func (s ItemSnapshot) String() string {
	if s.IsEmpty() {
		return "empty"
	}
	return fmt.Sprintf("%s x%d", s.ItemType, s.Quantity)
}
