package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/volatilum/volatilum-go/pkg/volatilum/client"
	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

func TestLoadViper(t *testing.T) {
	path := filepath.Join(t.TempDir(), "volatilum.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
endpoint = "http://127.0.0.1:8899"
commitment = "finalized"
request_timeout = "2s"
max_accounts_per_request = 50
min_context_slot = 1000
`), 0o600))

	v, err := loadViper(path)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:8899", v.GetString("endpoint"))

	c := rpcCfgFrom(v)
	assert.Equal(t, "finalized", c.Commitment.String)
	assert.Equal(t, "2s", c.RequestTimeout.String)
	assert.Equal(t, int64(50), c.MaxAccountsPerRequest.Int64)
	assert.Equal(t, int64(1000), c.MinContextSlot.Int64)

	_, err = loadViper(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestLoadViper_Defaults(t *testing.T) {
	v, err := loadViper("")
	require.NoError(t, err)
	assert.NotEmpty(t, v.GetString("endpoint"))

	c := rpcCfgFrom(v)
	assert.False(t, c.Commitment.Valid)
	assert.False(t, c.MinContextSlot.Valid)
}

func TestRenderRead(t *testing.T) {
	read := types.SlotConsistentRead{
		Slot:     42,
		Accounts: types.NewAccountBytes(map[string][]byte{"Acc2": {0xbe, 0xef}, "Acc1": {0x01}}),
	}
	out := renderRead(client.IntentRiskConstraints, "ProgABC", read)
	assert.Contains(t, out, "risk_constraints (program ProgABC)")
	assert.Contains(t, out, "Slot: 42")
	assert.Contains(t, out, "Accounts[len=2]")
	assert.Contains(t, out, "Data: beef")
	assert.Less(t, strings.Index(out, "Acc1"), strings.Index(out, "Acc2"))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 1, exitCode(errors.New("plain")))
	assert.Equal(t, 10, exitCode(types.NewError(types.InvalidInput, "")))
	assert.Equal(t, 13, exitCode(types.NewError(types.MissingAccount, "")))
}
