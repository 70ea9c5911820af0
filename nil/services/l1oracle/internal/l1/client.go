package l1

import (
	"context"
	"encoding/json"
)

// Client is the subset of L1 JSON-RPC the oracle relies on.
// Absence of data is reported with ErrBlockNotFound.
type Client interface {
	// LatestBlockNumberByTimestamp returns the highest block with timestamp <= ts.
	LatestBlockNumberByTimestamp(ctx context.Context, ts uint64) (uint64, error)

	// GetBlockByNumber returns the block JSON object as served by eth_getBlockByNumber.
	GetBlockByNumber(ctx context.Context, number uint64) (json.RawMessage, error)

	// GetLogs returns bridge LogMessageToL2 logs in the inclusive block range.
	GetLogs(ctx context.Context, from, to uint64) ([]*RawLog, error)
}
