package query

import (
	"context"
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-inventory/core"
	"github.com/google/uuid"
)

type stubInventoryReader struct {
	peekFn      func(context.Context, core.PeekRequest) (core.PeekResult, error)
	describeFn  func(context.Context, core.DescribeRequest) (core.InventoryDescription, error)
	inventoryFn func(uuid.UUID) (core.Inventory, error)
}

func (s stubInventoryReader) Peek(ctx context.Context, req core.PeekRequest) (core.PeekResult, error) {
	if s.peekFn == nil {
		return core.PeekResult{}, nil
	}
	return s.peekFn(ctx, req)
}

func (s stubInventoryReader) Describe(ctx context.Context, req core.DescribeRequest) (core.InventoryDescription, error) {
	if s.describeFn == nil {
		return core.InventoryDescription{}, nil
	}
	return s.describeFn(ctx, req)
}

func (s stubInventoryReader) Inventory(id uuid.UUID) (core.Inventory, error) {
	if s.inventoryFn == nil {
		return core.Empty, nil
	}
	return s.inventoryFn(id)
}

func TestPeekQuery_Delegates(t *testing.T) {
	id := uuid.New()
	reader := stubInventoryReader{
		peekFn: func(_ context.Context, req core.PeekRequest) (core.PeekResult, error) {
			if req.InventoryID != id || req.Index != 3 {
				t.Fatalf("unexpected peek request %+v", req)
			}
			return core.PeekResult{Index: 3, Item: core.NewItem("stone", 2), Found: true}, nil
		},
	}
	out, err := NewPeekQuery(reader).Query(context.Background(), PeekMessage{Request: core.PeekRequest{InventoryID: id, Index: 3}})
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if !out.Found || out.Item.Quantity != 2 {
		t.Fatalf("unexpected peek result %+v", out)
	}
}

func TestDescribeQuery_PropagatesReaderError(t *testing.T) {
	sentinel := errors.New("boom")
	reader := stubInventoryReader{
		describeFn: func(context.Context, core.DescribeRequest) (core.InventoryDescription, error) {
			return core.InventoryDescription{}, sentinel
		},
	}
	_, err := NewDescribeQuery(reader).Query(context.Background(), DescribeMessage{InventoryID: uuid.New()})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected reader error, got %v", err)
	}
}

func TestResolveQuery_ResolvesGridCell(t *testing.T) {
	inv := core.NewInventoryBuilder().Slots(2).Grid(3, 2).CompleteStructure().Build()
	reader := stubInventoryReader{
		inventoryFn: func(uuid.UUID) (core.Inventory, error) {
			return inv, nil
		},
	}
	out, err := NewResolveQuery(reader).Query(context.Background(), ResolveMessage{InventoryID: uuid.New(), Index: 6})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !out.Grid || out.X != 1 || out.Y != 1 || out.Local != 4 {
		t.Fatalf("expected grid cell (1,1), got %+v", out)
	}

	_, err = NewResolveQuery(reader).Query(context.Background(), ResolveMessage{InventoryID: uuid.New(), Index: 8})
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.Code != http.StatusBadRequest {
		t.Fatalf("expected bad request for out of range index, got %v", err)
	}
}

func TestQueries_ValidateAndDependencies(t *testing.T) {
	err := (PeekMessage{}).Validate()
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != core.InventoryErrorBadInput {
		t.Fatalf("expected bad input validation error, got %v", err)
	}

	var q *DescribeQuery
	_, err = q.Query(context.Background(), DescribeMessage{InventoryID: uuid.New()})
	if !goerrors.As(err, &rich) || rich.Category != goerrors.CategoryInternal {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
