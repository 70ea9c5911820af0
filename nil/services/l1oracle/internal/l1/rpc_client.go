package l1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/NilFoundation/l1oracle/nil/common"
	"github.com/NilFoundation/l1oracle/nil/common/logging"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	lru "github.com/hashicorp/golang-lru/v2"
)

type RpcClientConfig struct {
	Endpoint              string        `mapstructure:"endpoint" yaml:"endpoint"`
	BridgeContractAddress string        `mapstructure:"bridgeContractAddress" yaml:"bridgeContractAddress"`
	Timeout               time.Duration `mapstructure:"timeout" yaml:"timeout"`

	// number of block timestamps kept in memory for timestamp -> block lookups
	BlockCacheSize int `mapstructure:"blockCacheSize" yaml:"blockCacheSize"`
}

func DefaultRpcClientConfig() *RpcClientConfig {
	return &RpcClientConfig{
		Timeout:        10 * time.Second,
		BlockCacheSize: 4096,
	}
}

func (cfg *RpcClientConfig) Validate() error {
	if cfg.Endpoint == "" {
		return errors.New("empty L1 endpoint")
	}
	if !ethcommon.IsHexAddress(cfg.BridgeContractAddress) {
		return fmt.Errorf("invalid L1 bridge contract address %q", cfg.BridgeContractAddress)
	}
	if cfg.Timeout <= 0 {
		return errors.New("L1 timeout must be positive")
	}
	if cfg.BlockCacheSize <= 0 {
		return errors.New("L1 block cache size must be positive")
	}
	return nil
}

// RpcClient serves Client over an Ethereum JSON-RPC endpoint.
type RpcClient struct {
	rpc    *rpc.Client
	eth    *ethclient.Client
	bridge ethcommon.Address

	blockTimes *lru.Cache[uint64, uint64]

	logger logging.Logger
}

var _ Client = (*RpcClient)(nil)

func NewRpcClient(rpcClient *rpc.Client, config *RpcClientConfig, logger logging.Logger) (*RpcClient, error) {
	blockTimes, err := lru.New[uint64, uint64](config.BlockCacheSize)
	if err != nil {
		return nil, err
	}

	c := &RpcClient{
		rpc:        rpcClient,
		eth:        ethclient.NewClient(rpcClient),
		bridge:     ethcommon.HexToAddress(config.BridgeContractAddress),
		blockTimes: blockTimes,
	}
	c.logger = logger.With().Str(logging.FieldComponent, c.Name()).Logger()
	return c, nil
}

func DialRpcClient(ctx context.Context, config *RpcClientConfig, logger logging.Logger) (*RpcClient, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, config.Timeout)
	defer cancel()
	rpcClient, err := rpc.DialContext(ctx, config.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("connecting to ETH RPC node: %w", err)
	}
	return NewRpcClient(rpcClient, config, logger)
}

func (c *RpcClient) Name() string {
	return "l1-rpc-client"
}

func (c *RpcClient) Close() {
	c.rpc.Close()
}

type blockHead struct {
	Number    hexutil.Uint64 `json:"number"`
	Timestamp hexutil.Uint64 `json:"timestamp"`
}

func (c *RpcClient) blockTimestamp(ctx context.Context, number uint64) (uint64, error) {
	if ts, ok := c.blockTimes.Get(number); ok {
		return ts, nil
	}

	var head *blockHead
	if err := c.rpc.CallContext(ctx, &head, "eth_getBlockByNumber", hexutil.EncodeUint64(number), false); err != nil {
		return 0, err
	}
	if head == nil {
		return 0, fmt.Errorf("%w: %d", ErrBlockNotFound, number)
	}

	ts := uint64(head.Timestamp)
	c.blockTimes.Add(number, ts)
	return ts, nil
}

func (c *RpcClient) LatestBlockNumberByTimestamp(ctx context.Context, ts uint64) (uint64, error) {
	latest, err := c.eth.BlockNumber(ctx)
	if err != nil {
		return 0, err
	}

	latestTs, err := c.blockTimestamp(ctx, latest)
	if err != nil {
		return 0, err
	}
	if latestTs <= ts {
		return latest, nil
	}

	// index of the first block produced after ts
	idx, err := common.SearchWithError(int(latest)+1, func(i int) (bool, error) {
		blockTs, err := c.blockTimestamp(ctx, uint64(i))
		if err != nil {
			return false, err
		}
		return blockTs > ts, nil
	})
	if err != nil {
		return 0, err
	}
	if idx == 0 {
		return 0, fmt.Errorf("%w: no block at or before timestamp %d", ErrBlockNotFound, ts)
	}

	number := uint64(idx - 1)
	c.logger.Trace().
		Uint64(logging.FieldBlockTimestamp, ts).
		Uint64(logging.FieldBlockNumber, number).
		Msg("resolved timestamp to block")
	return number, nil
}

func (c *RpcClient) GetBlockByNumber(ctx context.Context, number uint64) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.rpc.CallContext(ctx, &raw, "eth_getBlockByNumber", hexutil.EncodeUint64(number), false); err != nil {
		return nil, err
	}
	if isNullResult(raw) {
		return nil, fmt.Errorf("%w: %d", ErrBlockNotFound, number)
	}
	return raw, nil
}

type logFilter struct {
	FromBlock string              `json:"fromBlock"`
	ToBlock   string              `json:"toBlock"`
	Address   []ethcommon.Address `json:"address"`
	Topics    [][]ethcommon.Hash  `json:"topics"`
}

func (c *RpcClient) GetLogs(ctx context.Context, from, to uint64) ([]*RawLog, error) {
	filter := logFilter{
		FromBlock: hexutil.EncodeUint64(from),
		ToBlock:   hexutil.EncodeUint64(to),
		Address:   []ethcommon.Address{c.bridge},
		Topics:    [][]ethcommon.Hash{{LogMessageToL2Topic()}},
	}

	var logs []*RawLog
	if err := c.rpc.CallContext(ctx, &logs, "eth_getLogs", filter); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Uint64(logging.FieldBlockRangeFrom, from).
		Uint64(logging.FieldBlockRangeTo, to).
		Int(logging.FieldLogCount, len(logs)).
		Msg("fetched bridge logs")
	return logs, nil
}

func isNullResult(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
