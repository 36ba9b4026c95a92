package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-inventory/core"
)

var (
	_ gocmd.Querier[PeekMessage, core.PeekResult]               = (*PeekQuery)(nil)
	_ gocmd.Querier[DescribeMessage, core.InventoryDescription] = (*DescribeQuery)(nil)
	_ gocmd.Querier[ResolveMessage, core.IndexResolution]       = (*ResolveQuery)(nil)

	_ InventoryReader = (*core.Service)(nil)
)
