package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/db"
	"github.com/NilFoundation/l1oracle/nil/internal/felt"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type replayConfig struct {
	L2TxHash string
	DbPath   string
	Session  *l1oracle.Config
}

func newReplayCommand() (*cobra.Command, error) {
	cfg := &replayConfig{
		Session: l1oracle.DefaultConfig(),
	}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Serve a captured L1 block through one mock RPC call cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfigSections(viper.GetViper(), cmd,
				configSection{key: "session", dst: cfg.Session},
			); err != nil {
				return err
			}
			return runReplay(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&cfg.DbPath, "db-path", "", "fixture database")
	flags.StringVar(&cfg.L2TxHash, "l2-tx-hash", "", "hash of the captured L1_HANDLER transaction")
	flags.BoolVar(&cfg.Session.AdvanceOnCycle, "advance-on-cycle", false, "pop the snapshot after a full call cycle")

	if err := viper.BindPFlags(flags); err != nil {
		return nil, err
	}
	return cmd, nil
}

func runReplay(ctx context.Context, cfg *replayConfig) error {
	logger := logging.NewLogger("l1oracle")

	if cfg.DbPath == "" {
		return errors.New("--db-path is required")
	}
	hash, err := felt.FromHex(cfg.L2TxHash)
	if err != nil {
		return err
	}

	database, err := db.NewBadgerDb(cfg.DbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	storage, err := l1oracle.NewFixtureStorage(database, clockwork.NewRealClock(), logger)
	if err != nil {
		return err
	}
	data, err := storage.Get(ctx, hash)
	if err != nil {
		return err
	}

	session, err := l1oracle.New(cfg.Session, nil, clockwork.NewRealClock(), logger)
	if err != nil {
		return err
	}
	session.Enqueue(data)

	_, err = fmt.Fprint(os.Stdout, replayCycle(session, data.BlockNumber))
	return err
}

// replayCycle answers one full call cycle the way a sequencer polls L1.
func replayCycle(session *l1oracle.Session, blockNumber uint64) string {
	number := hexutil.EncodeUint64(blockNumber)
	calls := []struct {
		method string
		call   func() l1oracle.Response
	}{
		{"eth_blockNumber", session.GetBlockNumber},
		{"eth_getBlockByNumber", func() l1oracle.Response { return session.GetBlockByNumber(blockNumber) }},
		{"eth_getLogs", func() l1oracle.Response {
			return session.GetLogs(l1oracle.LogFilter{FromBlock: number, ToBlock: number})
		}},
		// header of the same block
		{"eth_getBlockByNumber", func() l1oracle.Response { return session.GetBlockByNumber(blockNumber) }},
	}

	var out outputBuilder
	for _, c := range calls {
		out.WriteLine(CyanStr("%-22s", c.method), c.call().String())
	}
	out.WriteLine(GreenStr("served %d calls from L1 block %d, %d snapshot(s) queued", len(calls), blockNumber, session.Len()))
	return out.String()
}
