package query

import (
	"context"
	"fmt"

	"github.com/goliatone/go-inventory/core"
	"github.com/google/uuid"
)

type InventoryReader interface {
	Peek(ctx context.Context, req core.PeekRequest) (core.PeekResult, error)
	Describe(ctx context.Context, req core.DescribeRequest) (core.InventoryDescription, error)
	Inventory(id uuid.UUID) (core.Inventory, error)
}

type PeekQuery struct {
	reader InventoryReader
}

func NewPeekQuery(reader InventoryReader) *PeekQuery {
	return &PeekQuery{reader: reader}
}

func (q *PeekQuery) Query(ctx context.Context, msg PeekMessage) (core.PeekResult, error) {
	if q == nil || q.reader == nil {
		return core.PeekResult{}, missingReaderError(TypePeek)
	}
	if err := msg.Validate(); err != nil {
		return core.PeekResult{}, err
	}
	return q.reader.Peek(ctx, msg.Request)
}

type DescribeQuery struct {
	reader InventoryReader
}

func NewDescribeQuery(reader InventoryReader) *DescribeQuery {
	return &DescribeQuery{reader: reader}
}

func (q *DescribeQuery) Query(ctx context.Context, msg DescribeMessage) (core.InventoryDescription, error) {
	if q == nil || q.reader == nil {
		return core.InventoryDescription{}, missingReaderError(TypeDescribe)
	}
	if err := msg.Validate(); err != nil {
		return core.InventoryDescription{}, err
	}
	return q.reader.Describe(ctx, core.DescribeRequest{InventoryID: msg.InventoryID})
}

type ResolveQuery struct {
	reader InventoryReader
}

func NewResolveQuery(reader InventoryReader) *ResolveQuery {
	return &ResolveQuery{reader: reader}
}

func (q *ResolveQuery) Query(_ context.Context, msg ResolveMessage) (core.IndexResolution, error) {
	if q == nil || q.reader == nil {
		return core.IndexResolution{}, missingReaderError(TypeResolve)
	}
	if err := msg.Validate(); err != nil {
		return core.IndexResolution{}, err
	}
	inv, err := q.reader.Inventory(msg.InventoryID)
	if err != nil {
		return core.IndexResolution{}, err
	}
	resolution, ok := core.ResolveIndex(inv, msg.Index)
	if !ok {
		return core.IndexResolution{}, invalidFieldError("index", msg.Index, fmt.Sprintf("index outside capacity %d", inv.Capacity()))
	}
	return resolution, nil
}
