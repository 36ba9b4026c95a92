package core

import (
	"errors"
	"iter"
)

type ResultType string

const (
	ResultSuccess ResultType = "success"
	ResultFailure ResultType = "failure"
	ResultError   ResultType = "error"
	ResultNoSlot  ResultType = "no_slot"
)

func (t ResultType) Valid() bool {
	switch t {
	case ResultSuccess, ResultFailure, ResultError, ResultNoSlot:
		return true
	default:
		return false
	}
}

// precedence orders result types when merging: error > failure > no_slot > success.
func (t ResultType) precedence() int {
	switch t {
	case ResultError:
		return 3
	case ResultFailure:
		return 2
	case ResultNoSlot:
		return 1
	default:
		return 0
	}
}

func (t ResultType) String() string {
	return string(t)
}

// SlotTransaction records the content of one slot before and after a change.
type SlotTransaction struct {
	Slot     Slot
	Original ItemSnapshot
	Final    ItemSnapshot
}

func (t SlotTransaction) Revert() {
	t.Slot.restore(t.Original)
}

// TransactionResult is the immutable outcome of a mutating slot operation.
// The zero value carries no type and is never produced by an operation.
type TransactionResult struct {
	resultType   ResultType
	rejected     []ItemSnapshot
	transactions []SlotTransaction
	polled       []ItemSnapshot
	err          error
}

func (r TransactionResult) Type() ResultType {
	return r.resultType
}

func (r TransactionResult) IsSuccess() bool {
	return r.resultType == ResultSuccess
}

func (r TransactionResult) Rejected() []ItemSnapshot {
	return append([]ItemSnapshot(nil), r.rejected...)
}

func (r TransactionResult) SlotTransactions() []SlotTransaction {
	return append([]SlotTransaction(nil), r.transactions...)
}

func (r TransactionResult) Polled() []ItemSnapshot {
	return append([]ItemSnapshot(nil), r.polled...)
}

// Err returns the cause attached to an error result.
func (r TransactionResult) Err() error {
	return r.err
}

// And merges two results. The merged type is the higher of both by
// precedence; rejected, transaction and polled lists are concatenated with
// the receiver first.
func (r TransactionResult) And(other TransactionResult) TransactionResult {
	merged := TransactionResult{
		resultType:   r.resultType,
		rejected:     concat(r.rejected, other.rejected),
		transactions: concat(r.transactions, other.transactions),
		polled:       concat(r.polled, other.polled),
		err:          errors.Join(r.err, other.err),
	}
	if other.resultType.precedence() > merged.resultType.precedence() || merged.resultType == "" {
		merged.resultType = other.resultType
	}
	return merged
}

// Revert restores every transacted slot to its original snapshot, undoing
// transactions from last to first.
func (r TransactionResult) Revert() {
	for index := len(r.transactions) - 1; index >= 0; index-- {
		r.transactions[index].Revert()
	}
}

// RevertOnFailure reverts only failure results and reports whether it did.
// Error results are left to the caller.
func (r TransactionResult) RevertOnFailure() bool {
	if r.resultType != ResultFailure {
		return false
	}
	r.Revert()
	return true
}

func concat[T any](left []T, right []T) []T {
	if len(left)+len(right) == 0 {
		return nil
	}
	out := make([]T, 0, len(left)+len(right))
	out = append(out, left...)
	return append(out, right...)
}

// TransactionResultBuilder accumulates a result. Build panics when no type
// was set.
type TransactionResultBuilder struct {
	resultType   ResultType
	rejected     []ItemSnapshot
	transactions []SlotTransaction
	polled       []ItemSnapshot
	err          error
}

func NewTransactionResult() *TransactionResultBuilder {
	return &TransactionResultBuilder{}
}

func (b *TransactionResultBuilder) Type(resultType ResultType) *TransactionResultBuilder {
	b.resultType = resultType
	return b
}

// Reject records items the operation did not accept. Empty items are skipped.
func (b *TransactionResultBuilder) Reject(items ...ItemSnapshot) *TransactionResultBuilder {
	for _, item := range items {
		if item.IsEmpty() {
			continue
		}
		b.rejected = append(b.rejected, item)
	}
	return b
}

func (b *TransactionResultBuilder) RejectSeq(items iter.Seq[ItemSnapshot]) *TransactionResultBuilder {
	if items == nil {
		return b
	}
	for item := range items {
		b.Reject(item)
	}
	return b
}

// Transaction appends slot transactions in call order.
func (b *TransactionResultBuilder) Transaction(transactions ...SlotTransaction) *TransactionResultBuilder {
	b.transactions = append(b.transactions, transactions...)
	return b
}

func (b *TransactionResultBuilder) Poll(items ...ItemSnapshot) *TransactionResultBuilder {
	for _, item := range items {
		if item.IsEmpty() {
			continue
		}
		b.polled = append(b.polled, item)
	}
	return b
}

// Error marks the result as an error result caused by err.
func (b *TransactionResultBuilder) Error(err error) *TransactionResultBuilder {
	b.resultType = ResultError
	b.err = err
	return b
}

func (b *TransactionResultBuilder) Build() TransactionResult {
	if !b.resultType.Valid() {
		panic(incompleteResultError(b.resultType))
	}
	return TransactionResult{
		resultType:   b.resultType,
		rejected:     append([]ItemSnapshot(nil), b.rejected...),
		transactions: append([]SlotTransaction(nil), b.transactions...),
		polled:       append([]ItemSnapshot(nil), b.polled...),
		err:          b.err,
	}
}
