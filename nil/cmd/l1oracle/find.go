package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/db"
	"github.com/NilFoundation/l1oracle/nil/internal/felt"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle"
	"github.com/jonboulle/clockwork"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

type findConfig struct {
	L2TxHash string
	DbPath   string

	Feeder  *l1oracle.FeederClientConfig
	L1      *l1oracle.RpcClientConfig
	Session *l1oracle.Config
}

func newFindCommand() (*cobra.Command, error) {
	cfg := &findConfig{
		Feeder:  l1oracle.DefaultFeederClientConfig(),
		L1:      l1oracle.DefaultRpcClientConfig(),
		Session: l1oracle.DefaultConfig(),
	}

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Find the L1 message behind an L1_HANDLER transaction and capture its block",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigSections(viper.GetViper(), cmd,
				configSection{key: "session", dst: cfg.Session},
				configSection{key: "l1", dst: cfg.L1},
				configSection{key: "feeder", dst: cfg.Feeder},
			); err != nil {
				return err
			}
			return runFind(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.Feeder.Endpoint, "feeder-url", "", "base URL of the L2 feeder gateway")
	flags.StringVar(&cfg.L1.Endpoint, "l1-endpoint", "", "URL for ETH L1 client")
	flags.DurationVar(&cfg.L1.Timeout, "l1-timeout", cfg.L1.Timeout, "timeout for connecting to the L1 node")
	flags.StringVar(&cfg.L1.BridgeContractAddress, "bridge-addr", "", "address of the L1 messaging contract")
	flags.StringVar(&cfg.L2TxHash, "l2-tx-hash", "", "hash of the L1_HANDLER transaction")
	flags.DurationVar(&cfg.Session.Window, "window", cfg.Session.Window, "initial L1 search window")
	flags.DurationVar(&cfg.Session.MaxWindow, "max-window", cfg.Session.MaxWindow, "upper bound of the widened search window")
	flags.Uint32Var(&cfg.Session.RetryLimit, "retry-limit", cfg.Session.RetryLimit, "number of search attempts")
	flags.StringVar(&cfg.DbPath, "db-path", "", "fixture database to store the captured block in")

	if err := viper.BindPFlags(flags); err != nil {
		return nil, err
	}
	return cmd, nil
}

func runFind(ctx context.Context, cfg *findConfig) error {
	logger := logging.NewLogger("l1oracle")

	hash, err := felt.FromHex(cfg.L2TxHash)
	if err != nil {
		return err
	}

	feeder, err := l1oracle.NewFeederClient(cfg.Feeder, logger)
	if err != nil {
		return err
	}

	var (
		tx          *l1oracle.L2HandlerTx
		l2Timestamp uint64
		l1Client    *l1oracle.RpcClient
	)
	eg, gCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		tx, l2Timestamp, err = feeder.GetHandlerTx(gCtx, hash)
		return err
	})
	eg.Go(func() error {
		var err error
		l1Client, err = l1oracle.DialL1Client(gCtx, cfg.L1, logger)
		return err
	})
	err = eg.Wait()
	if l1Client != nil {
		defer l1Client.Close()
	}
	if err != nil {
		return err
	}
	if !tx.IsL1Handler() {
		return fmt.Errorf("transaction %s has type %s", hash, tx.Type)
	}

	session, err := l1oracle.New(cfg.Session, l1Client, clockwork.NewRealClock(), logger)
	if err != nil {
		return err
	}

	started := time.Now()
	if err := session.AwaitTx(ctx, tx, l2Timestamp); err != nil {
		return err
	}
	captured := session.Head()
	logger.Info().
		Stringer(logging.FieldTransactionHash, hash).
		Uint64(logging.FieldBlockNumber, captured.BlockNumber).
		Dur(logging.FieldDuration, time.Since(started)).
		Msg("captured L1 block")

	if cfg.DbPath != "" {
		if err := storeFixture(ctx, cfg.DbPath, hash, captured, logger); err != nil {
			return err
		}
	}

	return printJSON(captured)
}

func storeFixture(ctx context.Context, path string, hash felt.Felt, data *l1oracle.L1TxData, logger logging.Logger) error {
	database, err := db.NewBadgerDb(path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	storage, err := l1oracle.NewFixtureStorage(database, clockwork.NewRealClock(), logger)
	if err != nil {
		return err
	}
	return storage.Put(ctx, hash, data)
}

func printJSON(v any) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, string(data))
	return err
}
