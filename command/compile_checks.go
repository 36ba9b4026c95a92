package command

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-inventory/core"
)

var (
	_ gocmd.Commander[OfferMessage]    = (*OfferCommand)(nil)
	_ gocmd.Commander[SetMessage]      = (*SetCommand)(nil)
	_ gocmd.Commander[PollMessage]     = (*PollCommand)(nil)
	_ gocmd.Commander[OfferAllMessage] = (*OfferAllCommand)(nil)
	_ gocmd.Commander[ClearMessage]    = (*ClearCommand)(nil)
	_ gocmd.Commander[RevertMessage]   = (*RevertCommand)(nil)

	_ MutatingService = (*core.Service)(nil)
)
