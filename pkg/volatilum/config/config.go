package config

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go/rpc"
	"gopkg.in/guregu/null.v4"

	"github.com/volatilum/volatilum-go/pkg/volatilum/logger"
	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

// MaxAccountsPerRequestLimit is the getMultipleAccounts key limit enforced by Solana RPC nodes.
const MaxAccountsPerRequestLimit = 100

// Global observation defaults.
var defaultConfigSet = configSet{
	Commitment:            rpc.CommitmentConfirmed,
	RequestTimeout:        10 * time.Second, // per getMultipleAccounts call
	MaxAccountsPerRequest: MaxAccountsPerRequestLimit,
	MinContextSlot:        nil,
}

type Config interface {
	Commitment() rpc.CommitmentType
	RequestTimeout() time.Duration
	MaxAccountsPerRequest() int
	MinContextSlot() *types.Slot

	// ClientConfig derives the immutable policy handed to the observation client.
	ClientConfig() types.ClientConfig

	// Update sets new RPC config values.
	Update(RPCCfg)
}

type configSet struct {
	Commitment            rpc.CommitmentType
	RequestTimeout        time.Duration
	MaxAccountsPerRequest int
	MinContextSlot        *types.Slot
}

// RPCCfg holds optional overrides of the defaults. Unset fields fall back to defaultConfigSet.
type RPCCfg struct {
	Commitment            null.String `json:"commitment"`
	RequestTimeout        null.String `json:"requestTimeout"` // time.ParseDuration format
	MaxAccountsPerRequest null.Int    `json:"maxAccountsPerRequest"`
	MinContextSlot        null.Int    `json:"minContextSlot"`
}

func (c *RPCCfg) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}

	return json.Unmarshal(b, c)
}

func (c RPCCfg) Value() (driver.Value, error) {
	return json.Marshal(c)
}

var _ Config = (*config)(nil)

type config struct {
	defaults configSet
	rpc      RPCCfg
	rpcMu    sync.RWMutex
	lggr     logger.Logger
}

// NewConfig returns a Config with defaults overridden by cfg.
func NewConfig(cfg RPCCfg, lggr logger.Logger) *config {
	return &config{
		defaults: defaultConfigSet,
		rpc:      cfg,
		lggr:     lggr,
	}
}

func NewDefault(lggr logger.Logger) *config {
	return NewConfig(RPCCfg{}, lggr)
}

func (c *config) Update(cfg RPCCfg) {
	c.rpcMu.Lock()
	c.rpc = cfg
	c.rpcMu.Unlock()
}

func (c *config) Commitment() rpc.CommitmentType {
	c.rpcMu.RLock()
	ch := c.rpc.Commitment
	c.rpcMu.RUnlock()
	if ch.Valid {
		str := ch.String
		var commitment rpc.CommitmentType
		switch str {
		case "processed":
			commitment = rpc.CommitmentProcessed
		case "confirmed":
			commitment = rpc.CommitmentConfirmed
		case "finalized":
			commitment = rpc.CommitmentFinalized
		default:
			c.lggr.Warnf(invalidFallbackMsg, "Commitment", str, c.defaults.Commitment, nil)
			commitment = c.defaults.Commitment
		}
		return commitment
	}
	return c.defaults.Commitment
}

func (c *config) RequestTimeout() time.Duration {
	c.rpcMu.RLock()
	ch := c.rpc.RequestTimeout
	c.rpcMu.RUnlock()
	if ch.Valid {
		d, err := time.ParseDuration(ch.String)
		if err == nil && d > 0 {
			return d
		}
		c.lggr.Warnf(invalidFallbackMsg, "RequestTimeout", ch.String, c.defaults.RequestTimeout, err)
	}
	return c.defaults.RequestTimeout
}

func (c *config) MaxAccountsPerRequest() int {
	c.rpcMu.RLock()
	ch := c.rpc.MaxAccountsPerRequest
	c.rpcMu.RUnlock()
	if ch.Valid {
		if ch.Int64 > 0 && ch.Int64 <= MaxAccountsPerRequestLimit {
			return int(ch.Int64)
		}
		c.lggr.Warnf(invalidFallbackMsg, "MaxAccountsPerRequest", ch.Int64, c.defaults.MaxAccountsPerRequest, nil)
	}
	return c.defaults.MaxAccountsPerRequest
}

func (c *config) MinContextSlot() *types.Slot {
	c.rpcMu.RLock()
	ch := c.rpc.MinContextSlot
	c.rpcMu.RUnlock()
	if ch.Valid {
		if ch.Int64 >= 0 {
			s := types.Slot(ch.Int64)
			return &s
		}
		c.lggr.Warnf(invalidFallbackMsg, "MinContextSlot", ch.Int64, "unset", nil)
	}
	return c.defaults.MinContextSlot
}

func (c *config) ClientConfig() types.ClientConfig {
	return types.ClientConfig{MinContextSlot: c.MinContextSlot()}
}

const invalidFallbackMsg = `Invalid value provided for %s, "%v" - falling back to default "%v": %v`
