package client

import (
	"context"

	"github.com/volatilum/volatilum-go/pkg/volatilum/logger"
	"github.com/volatilum/volatilum-go/pkg/volatilum/monitor"
	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

// Intent names the reason a caller observes a set of accounts. All intents share one read
// mechanism; the name is kept for call-site documentation, logs and metrics.
type Intent string

const (
	IntentLiquidityTopology Intent = "liquidity_topology"
	IntentExecutionSignals  Intent = "execution_signals"
	IntentYieldCurve        Intent = "yield_curve"
	IntentRiskConstraints   Intent = "risk_constraints"
)

// Client is the read-only observation client. It validates caller input and delegates to its
// ReadOnlyRPC. It never signs or sends transactions and never interprets account bytes.
//
// A Client holds no mutable state and is safe for concurrent use.
type Client struct {
	rpc  ReadOnlyRPC
	cfg  types.ClientConfig
	lggr logger.Logger
}

func NewClient(rpc ReadOnlyRPC, cfg types.ClientConfig, lggr logger.Logger) *Client {
	return &Client{
		rpc:  rpc,
		cfg:  cfg.Clone(),
		lggr: lggr,
	}
}

// Config returns a copy of the client's observation policy.
func (c *Client) Config() types.ClientConfig {
	return c.cfg.Clone()
}

// GetLiquidityTopology observes liquidity topology accounts (global config, registries).
func (c *Client) GetLiquidityTopology(ctx context.Context, programID string, accountIDs []string) (types.SlotConsistentRead, error) {
	return c.observe(ctx, IntentLiquidityTopology, programID, accountIDs)
}

// ObserveExecutionSignals observes execution signal accounts.
func (c *Client) ObserveExecutionSignals(ctx context.Context, programID string, accountIDs []string) (types.SlotConsistentRead, error) {
	return c.observe(ctx, IntentExecutionSignals, programID, accountIDs)
}

// DeriveYieldCurve observes the accounts describing yield mechanics. Only bytes are returned;
// no rates or projections are computed.
func (c *Client) DeriveYieldCurve(ctx context.Context, programID string, accountIDs []string) (types.SlotConsistentRead, error) {
	return c.observe(ctx, IntentYieldCurve, programID, accountIDs)
}

// GetRiskConstraints observes on-chain risk constraint accounts.
func (c *Client) GetRiskConstraints(ctx context.Context, programID string, accountIDs []string) (types.SlotConsistentRead, error) {
	return c.observe(ctx, IntentRiskConstraints, programID, accountIDs)
}

// Observe dispatches to the named intent method.
func (c *Client) Observe(ctx context.Context, intent Intent, programID string, accountIDs []string) (types.SlotConsistentRead, error) {
	switch intent {
	case IntentLiquidityTopology:
		return c.GetLiquidityTopology(ctx, programID, accountIDs)
	case IntentExecutionSignals:
		return c.ObserveExecutionSignals(ctx, programID, accountIDs)
	case IntentYieldCurve:
		return c.DeriveYieldCurve(ctx, programID, accountIDs)
	case IntentRiskConstraints:
		return c.GetRiskConstraints(ctx, programID, accountIDs)
	default:
		return types.SlotConsistentRead{}, types.NewError(types.InvalidInput, "unknown intent "+string(intent))
	}
}

func (c *Client) observe(ctx context.Context, intent Intent, programID string, accountIDs []string) (read types.SlotConsistentRead, err error) {
	defer func() { monitor.RecordObservation(string(intent), read.Slot, err) }()

	if err = validate(programID, accountIDs); err != nil {
		return types.SlotConsistentRead{}, err
	}

	read, err = c.rpc.GetMultipleAccountsSlotConsistent(ctx, accountIDs, c.cfg.Clone())
	if err != nil {
		c.lggr.Debugf("%s: observation of %d accounts for program %s failed: %v", intent, len(accountIDs), programID, err)
		return read, err
	}

	// the port owns min slot enforcement, this only catches ports that break the contract
	if err = c.cfg.CheckSlot(read.Slot); err != nil {
		c.lggr.Errorf("%s: transport returned slot %d below configured minimum: %v", intent, read.Slot, err)
		return types.SlotConsistentRead{}, err
	}

	c.lggr.Debugf("%s: observed %d accounts for program %s at slot %d", intent, read.Accounts.Len(), programID, read.Slot)
	return read, nil
}

func validate(programID string, accountIDs []string) error {
	if programID == "" {
		return types.NewError(types.InvalidInput, "programID is required")
	}
	if len(accountIDs) == 0 {
		return types.NewError(types.InvalidInput, "accountIDs must be non-empty")
	}
	return nil
}
