package client

import (
	"context"

	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

// ReadOnlyRPC is the transport capability the observation client delegates to. It is the only
// place network I/O happens.
//
// Implementations must:
//   - bind every returned payload to exactly one slot, failing with types.SlotInconsistency when
//     that cannot be guaranteed
//   - fail with types.SlotInconsistency when the observed slot is below cfg.MinContextSlot
//   - fail with types.MissingAccount for accounts that do not exist, never returning empty bytes
type ReadOnlyRPC interface {
	GetMultipleAccountsSlotConsistent(ctx context.Context, accountIDs []string, cfg types.ClientConfig) (types.SlotConsistentRead, error)
}

// ReadOnlyRPCFunc adapts a function to ReadOnlyRPC, e.g. for replaying recorded observations.
type ReadOnlyRPCFunc func(ctx context.Context, accountIDs []string, cfg types.ClientConfig) (types.SlotConsistentRead, error)

var _ ReadOnlyRPC = ReadOnlyRPCFunc(nil)

func (f ReadOnlyRPCFunc) GetMultipleAccountsSlotConsistent(ctx context.Context, accountIDs []string, cfg types.ClientConfig) (types.SlotConsistentRead, error) {
	return f(ctx, accountIDs, cfg)
}
