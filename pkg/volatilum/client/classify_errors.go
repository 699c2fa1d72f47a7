package client

import (
	"context"
	"regexp"

	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"github.com/pkg/errors"

	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

// Solana JSON-RPC server error codes
// https://github.com/anza-xyz/agave/blob/master/rpc-client-api/src/custom_error.rs
const (
	ErrCodeNodeUnhealthy               = -32005
	ErrCodeKeyExcludedFromSecondaryIdx = -32010
	ErrCodeMinContextSlotNotReached    = -32016
	ErrCodeInvalidParams               = -32602
)

// Solana RPC error patterns for nodes or proxies which do not forward the numeric code.
var (
	ErrMinContextSlotNotReached = regexp.MustCompile(`Minimum context slot has not been reached`)
	ErrTooManyInputs            = regexp.MustCompile(`Too many inputs provided; max \d+`)
	ErrInvalidParam             = regexp.MustCompile(`Invalid param: .+`)
	ErrNodeUnhealthy            = regexp.MustCompile(`Node is (behind|unhealthy)`)
)

// errCodes maps JSON-RPC error codes to the kind they surface as
var errCodes = map[int]types.ErrorKind{
	ErrCodeMinContextSlotNotReached:    types.SlotInconsistency,
	ErrCodeInvalidParams:               types.InvalidInput,
	ErrCodeKeyExcludedFromSecondaryIdx: types.InvalidInput,
	ErrCodeNodeUnhealthy:               types.TransportError,
}

// errPatterns maps regex patterns to the kind they surface as
var errPatterns = map[*regexp.Regexp]types.ErrorKind{
	ErrMinContextSlotNotReached: types.SlotInconsistency,
	ErrTooManyInputs:            types.InvalidInput,
	ErrInvalidParam:             types.InvalidInput,
	ErrNodeUnhealthy:            types.TransportError,
}

// ClassifyReadError maps a transport error onto the closed error taxonomy. Errors already
// carrying a kind are returned unchanged; anything unrecognised is a TransportError.
func ClassifyReadError(err error) error {
	if err == nil {
		return nil
	}

	var typed *types.Error
	if errors.As(err, &typed) {
		return err
	}

	var rpcErr *jsonrpc.RPCError
	if errors.As(err, &rpcErr) {
		if kind, ok := errCodes[rpcErr.Code]; ok {
			return types.WrapError(kind, err, "RPC read failed")
		}
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return types.WrapError(types.TransportError, err, "RPC read aborted")
	}

	errMsg := err.Error()
	for pattern, kind := range errPatterns {
		if pattern.MatchString(errMsg) {
			return types.WrapError(kind, err, "RPC read failed")
		}
	}
	return types.WrapError(types.TransportError, err, "RPC read failed")
}
