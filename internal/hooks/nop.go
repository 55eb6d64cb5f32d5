// Package hooks provides default engine hooks.
package hooks

import (
	"context"

	"github.com/hakkd/job-assigner/types"
)

// NewNop returns hooks whose callbacks do nothing, so callers never nil-check.
func NewNop() types.Hooks {
	return types.Hooks{
		OnRoundCompleted: func(context.Context, int64, []types.Assignment) error { return nil },
		OnReset:          func(context.Context) error { return nil },
	}
}

// Fill replaces nil callbacks in h with no-ops.
func Fill(h *types.Hooks) types.Hooks {
	nop := NewNop()
	if h == nil {
		return nop
	}

	out := *h
	if out.OnRoundCompleted == nil {
		out.OnRoundCompleted = nop.OnRoundCompleted
	}
	if out.OnReset == nil {
		out.OnReset = nop.OnReset
	}

	return out
}
