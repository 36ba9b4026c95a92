package core

import "fmt"

// Slot is a reference to one addressable slot of an inventory. It carries
// the flat index it was resolved from and the slot lens it resolved to.
type Slot struct {
	index int
	lens  SlotLens
}

func (s Slot) Index() int {
	return s.index
}

func (s Slot) Lens() SlotLens {
	return s.lens
}

func (s Slot) Peek() ItemSnapshot {
	return s.lens.Peek()
}

// Same reports whether both references address the same underlying slot.
func (s Slot) Same(other Slot) bool {
	return s.lens.Fabric == other.lens.Fabric && s.lens.Index == other.lens.Index
}

func (s Slot) String() string {
	return fmt.Sprintf("slot[%d]", s.index)
}

func (s Slot) restore(item ItemSnapshot) {
	s.lens.Put(item)
}

// Offer stacks item onto the slot. A remainder that does not fit is rejected
// and turns the result into a failure; the partial insert stays recorded so
// it can be reverted.
func (s Slot) Offer(item ItemSnapshot) TransactionResult {
	if err := item.Validate(); err != nil {
		return invalidItemResult(s, item, err)
	}
	if item.IsEmpty() {
		return NewTransactionResult().Type(ResultSuccess).Build()
	}
	current := s.Peek()
	if !s.lens.Accepts(item) || (!current.IsEmpty() && !current.StacksWith(item)) {
		return NewTransactionResult().Type(ResultFailure).Reject(item).Build()
	}
	result := NewTransactionResult().Type(ResultSuccess)
	remaining := s.absorb(item, result)
	if !remaining.IsEmpty() {
		result.Type(ResultFailure).Reject(remaining)
	}
	return result.Build()
}

// Set replaces the slot content. Quantity above the slot limit is rejected.
func (s Slot) Set(item ItemSnapshot) TransactionResult {
	if err := item.Validate(); err != nil {
		return invalidItemResult(s, item, err)
	}
	current := s.Peek()
	if item.IsEmpty() {
		s.restore(ItemSnapshot{})
		return NewTransactionResult().
			Type(ResultSuccess).
			Transaction(SlotTransaction{Slot: s, Original: current}).
			Build()
	}
	if !s.lens.Accepts(item) {
		return NewTransactionResult().Type(ResultFailure).Reject(item).Build()
	}
	limit := s.lens.Limit(item)
	stored := item.WithQuantity(min(item.Quantity, limit))
	s.restore(stored)
	result := NewTransactionResult().
		Type(ResultSuccess).
		Transaction(SlotTransaction{Slot: s, Original: current, Final: stored})
	if item.Quantity > limit {
		result.Type(ResultFailure).Reject(item.WithQuantity(item.Quantity - limit))
	}
	return result.Build()
}

func (s Slot) Poll() TransactionResult {
	return s.PollLimit(0)
}

// PollLimit removes up to limit items from the slot; limit <= 0 removes the
// whole stack.
func (s Slot) PollLimit(limit int) TransactionResult {
	current := s.Peek()
	if current.IsEmpty() {
		return NewTransactionResult().Type(ResultFailure).Build()
	}
	taken := current.Quantity
	if limit > 0 && limit < taken {
		taken = limit
	}
	remaining := current.WithQuantity(current.Quantity - taken)
	s.restore(remaining)
	return NewTransactionResult().
		Type(ResultSuccess).
		Poll(current.WithQuantity(taken)).
		Transaction(SlotTransaction{Slot: s, Original: current, Final: remaining}).
		Build()
}

// absorb moves as much of item as fits into the slot, records the
// transaction on result and returns what is left.
func (s Slot) absorb(item ItemSnapshot, result *TransactionResultBuilder) ItemSnapshot {
	if !s.lens.Accepts(item) {
		return item
	}
	current := s.Peek()
	if !current.IsEmpty() && !current.StacksWith(item) {
		return item
	}
	limit := s.lens.Limit(item)
	space := limit - current.Quantity
	if current.IsEmpty() {
		space = limit
	}
	if space <= 0 {
		return item
	}
	moved := min(space, item.Quantity)
	final := item.WithQuantity(current.Quantity + moved)
	if current.IsEmpty() {
		final = item.WithQuantity(moved)
	}
	s.restore(final)
	result.Transaction(SlotTransaction{Slot: s, Original: current, Final: final})
	return item.WithQuantity(item.Quantity - moved)
}

func invalidItemResult(slot Slot, item ItemSnapshot, err error) TransactionResult {
	return NewTransactionResult().
		Error(contractViolation(err, map[string]any{
			"index": slot.index,
			"item":  item.String(),
		})).
		Reject(item).
		Build()
}
