package client

import (
	"context"
	"fmt"
	"sort"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/volatilum/volatilum-go/pkg/volatilum/config"
	"github.com/volatilum/volatilum-go/pkg/volatilum/logger"
	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

// RPCReader implements ReadOnlyRPC on top of the Solana getMultipleAccounts JSON-RPC method.
type RPCReader struct {
	rpc  *rpc.Client
	cfg  config.Config
	lggr logger.Logger
}

var _ ReadOnlyRPC = (*RPCReader)(nil)

func NewRPCReader(endpoint string, cfg config.Config, lggr logger.Logger) *RPCReader {
	return &RPCReader{
		rpc:  rpc.New(endpoint),
		cfg:  cfg,
		lggr: lggr,
	}
}

type chunkResult struct {
	slot     types.Slot
	accounts map[string][]byte
	missing  []string
}

// GetMultipleAccountsSlotConsistent reads accountIDs and binds them to one context slot.
// Batches larger than the per-request key limit are split across concurrent requests; if those
// requests are answered at different slots the read fails with SlotInconsistency.
func (r *RPCReader) GetMultipleAccountsSlotConsistent(ctx context.Context, accountIDs []string, cfg types.ClientConfig) (types.SlotConsistentRead, error) {
	keys, err := parseAccountIDs(accountIDs)
	if err != nil {
		return types.SlotConsistentRead{}, err
	}

	chunks := chunkKeys(keys, r.cfg.MaxAccountsPerRequest())
	results := make([]chunkResult, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i := range chunks {
		i := i
		g.Go(func() error {
			res, err := r.getChunk(gctx, chunks[i], cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.SlotConsistentRead{}, err
	}

	slot := results[0].slot
	accounts := make(map[string][]byte, len(keys))
	var missing error
	for i, res := range results {
		if res.slot != slot {
			r.lggr.Warnf("getMultipleAccounts: request %d answered at slot %d, request 0 at slot %d", i, res.slot, slot)
			return types.SlotConsistentRead{}, types.NewError(types.SlotInconsistency,
				fmt.Sprintf("accounts observed across slots %d and %d", slot, res.slot))
		}
		for _, k := range res.missing {
			missing = multierr.Append(missing, fmt.Errorf("missing account data for %s", k))
		}
		for k, v := range res.accounts {
			accounts[k] = v
		}
	}
	if missing != nil {
		n := len(multierr.Errors(missing))
		return types.SlotConsistentRead{}, types.WrapError(types.MissingAccount, missing,
			fmt.Sprintf("%d of %d accounts missing", n, len(keys)))
	}

	r.lggr.Debugf("getMultipleAccounts: %d accounts in %d requests at slot %d", len(keys), len(chunks), slot)
	return types.SlotConsistentRead{Slot: slot, Accounts: types.NewAccountBytes(accounts)}, nil
}

func (r *RPCReader) getChunk(ctx context.Context, keys []solana.PublicKey, cfg types.ClientConfig) (chunkResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.RequestTimeout())
	defer cancel()

	opts := &rpc.GetMultipleAccountsOpts{
		Encoding:   solana.EncodingBase64,
		Commitment: r.cfg.Commitment(),
	}
	if cfg.MinContextSlot != nil {
		minSlot := uint64(*cfg.MinContextSlot)
		opts.MinContextSlot = &minSlot
	}

	out, err := r.rpc.GetMultipleAccountsWithOpts(ctx, keys, opts)
	if err != nil {
		return chunkResult{}, ClassifyReadError(errors.Wrap(err, "error in GetMultipleAccounts"))
	}
	if out == nil || out.Value == nil {
		return chunkResult{}, types.NewError(types.TransportError, "nil pointer in GetMultipleAccounts")
	}
	if len(out.Value) != len(keys) {
		return chunkResult{}, types.NewError(types.TransportError,
			fmt.Sprintf("GetMultipleAccounts returned %d accounts for %d keys", len(out.Value), len(keys)))
	}

	slot := types.Slot(out.Context.Slot)
	if err := cfg.CheckSlot(slot); err != nil {
		return chunkResult{}, err
	}

	res := chunkResult{slot: slot, accounts: make(map[string][]byte, len(keys))}
	for i, acc := range out.Value {
		key := keys[i].String()
		if acc == nil {
			res.missing = append(res.missing, key)
			continue
		}
		if acc.Data == nil {
			return chunkResult{}, types.NewError(types.MalformedAccountData, fmt.Sprintf("no data returned for %s", key))
		}
		res.accounts[key] = acc.Data.GetBinary()
	}
	return res, nil
}

// parseAccountIDs decodes and de-duplicates base58 identifiers into a sorted key list.
func parseAccountIDs(accountIDs []string) ([]solana.PublicKey, error) {
	if len(accountIDs) == 0 {
		return nil, types.NewError(types.InvalidInput, "accountIDs must be non-empty")
	}
	seen := make(map[solana.PublicKey]struct{}, len(accountIDs))
	keys := make([]solana.PublicKey, 0, len(accountIDs))
	for _, id := range accountIDs {
		key, err := solana.PublicKeyFromBase58(id)
		if err != nil {
			return nil, types.WrapError(types.InvalidInput, err, fmt.Sprintf("invalid account id %q", id))
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys, nil
}

func chunkKeys(keys []solana.PublicKey, size int) [][]solana.PublicKey {
	if size <= 0 {
		size = config.MaxAccountsPerRequestLimit
	}
	chunks := make([][]solana.PublicKey, 0, (len(keys)+size-1)/size)
	for start := 0; start < len(keys); start += size {
		end := start + size
		if end > len(keys) {
			end = len(keys)
		}
		chunks = append(chunks, keys[start:end])
	}
	return chunks
}
