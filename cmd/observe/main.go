package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/treeout"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/guregu/null.v4"

	"github.com/volatilum/volatilum-go/pkg/volatilum/client"
	"github.com/volatilum/volatilum-go/pkg/volatilum/config"
	"github.com/volatilum/volatilum-go/pkg/volatilum/logger"
	"github.com/volatilum/volatilum-go/pkg/volatilum/types"
)

var intents = map[string]client.Intent{
	"topology":  client.IntentLiquidityTopology,
	"execution": client.IntentExecutionSignals,
	"yield":     client.IntentYieldCurve,
	"risk":      client.IntentRiskConstraints,
}

func main() {
	configFile := flag.String("config", "", "path to a TOML/YAML/JSON config file")
	intentName := flag.String("intent", "topology", "observation intent: topology|execution|yield|risk")
	programID := flag.String("program", "", "base58 program id")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	level := zapcore.InfoLevel
	if *debug {
		level = zapcore.DebugLevel
	}
	lggr, err := logger.New(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	v, err := loadViper(*configFile)
	if err != nil {
		lggr.Fatalf("failed to read config: %v", err)
	}

	intent, ok := intents[*intentName]
	if !ok {
		lggr.Fatalf("unknown intent %q", *intentName)
	}

	cfg := config.NewConfig(rpcCfgFrom(v), lggr)
	reader := client.NewRPCReader(v.GetString("endpoint"), cfg, lggr)
	c := client.NewClient(reader, cfg.ClientConfig(), lggr)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	read, err := c.Observe(ctx, intent, *programID, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(exitCode(err))
	}
	fmt.Print(renderRead(intent, *programID, read))
}

// loadViper reads settings from an optional config file and VOLATILUM_* environment variables.
func loadViper(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("endpoint", rpc.LocalNet_RPC)
	v.SetEnvPrefix("volatilum")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func rpcCfgFrom(v *viper.Viper) config.RPCCfg {
	var c config.RPCCfg
	if v.IsSet("commitment") {
		c.Commitment = null.StringFrom(v.GetString("commitment"))
	}
	if v.IsSet("request_timeout") {
		c.RequestTimeout = null.StringFrom(v.GetString("request_timeout"))
	}
	if v.IsSet("max_accounts_per_request") {
		c.MaxAccountsPerRequest = null.IntFrom(v.GetInt64("max_accounts_per_request"))
	}
	if v.IsSet("min_context_slot") {
		c.MinContextSlot = null.IntFrom(v.GetInt64("min_context_slot"))
	}
	return c
}

func renderRead(intent client.Intent, programID string, read types.SlotConsistentRead) string {
	tree := treeout.New(fmt.Sprintf("%s (program %s)", intent, programID))
	tree.Child(fmt.Sprintf("Slot: %d", read.Slot))
	tree.Child(fmt.Sprintf("Accounts[len=%d]", read.Accounts.Len())).ParentFunc(func(accounts treeout.Branches) {
		read.Accounts.Each(func(id string, data []byte) {
			accounts.Child(id).ParentFunc(func(account treeout.Branches) {
				account.Child(fmt.Sprintf("Len: %d", len(data)))
				account.Child("Data: " + hex.EncodeToString(data))
			})
		})
	})
	return tree.String()
}

// exitCode is 10 + the error kind so scripts can branch on the failure category.
func exitCode(err error) int {
	if kind, ok := types.KindOf(err); ok {
		return 10 + int(kind)
	}
	return 1
}
