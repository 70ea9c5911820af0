package oracle

import (
	"context"
	"errors"
	"time"

	"github.com/NilFoundation/l1oracle/nil/common/check"
	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/finder"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l1"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l2"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// CallsPerCycle is the number of L1 RPC calls a sequencer makes to ingest one bridge message.
const CallsPerCycle = 4

const (
	methodBlockNumber      = "eth_blockNumber"
	methodGetBlockByNumber = "eth_getBlockByNumber"
	methodGetLogs          = "eth_getLogs"
)

type Config struct {
	// Window is the search window used by SetNewTx
	Window time.Duration

	// AdvanceOnCycle pops the queue head once a call cycle completes.
	// When false the head is served forever, matching the sequencer test harness.
	AdvanceOnCycle bool
}

func DefaultConfig() *Config {
	return &Config{
		Window: finder.DefaultWindow,
	}
}

// Oracle serves recorded L1 state to a sequencer as JSON-RPC responses.
//
// Snapshots are queued by SetNewTx or Enqueue and answered from the head.
// Every answered call advances a counter that wraps after CallsPerCycle calls.
// The Oracle is not safe for concurrent use.
type Oracle struct {
	config  Config
	client  l1.Client
	finder  *finder.Finder
	metrics Metrics

	queue []*l1.TxData
	calls int

	logger logging.Logger
}

func New(config *Config, client l1.Client, blockFinder *finder.Finder, metrics Metrics, logger logging.Logger) *Oracle {
	o := &Oracle{
		config:  *config,
		client:  client,
		finder:  blockFinder,
		metrics: metrics,
	}
	o.logger = logger.With().Str(logging.FieldComponent, o.Name()).Logger()
	return o
}

func (o *Oracle) Name() string {
	return "mock-oracle"
}

// SetNewTx locates the L1 block carrying the message behind tx using the configured window
// and queues a snapshot of it. Returns false and leaves the queue unchanged on a miss.
func (o *Oracle) SetNewTx(ctx context.Context, tx *l2.HandlerTx, l2Timestamp uint64) bool {
	return o.SetNewTxWithWindow(ctx, tx, l2Timestamp, o.config.Window)
}

func (o *Oracle) SetNewTxWithWindow(ctx context.Context, tx *l2.HandlerTx, l2Timestamp uint64, window time.Duration) bool {
	number, found := o.finder.FindL1Block(ctx, tx, l2Timestamp, window)
	if !found {
		return false
	}

	data, err := o.capture(ctx, number)
	if err != nil {
		o.logger.Warn().Err(err).Uint64(logging.FieldBlockNumber, number).Msg("failed to capture L1 block")
		return false
	}

	o.Enqueue(data)
	return true
}

// capture snapshots block and bridge logs. The finder has just seen a matching log in this block,
// so a missing block or an empty log list means the L1 source contradicts itself.
func (o *Oracle) capture(ctx context.Context, number uint64) (*l1.TxData, error) {
	block, err := o.client.GetBlockByNumber(ctx, number)
	check.PanicIfNotf(!errors.Is(err, l1.ErrBlockNotFound), "L1 block %d holding the message is gone: %v", number, err)
	if err != nil {
		return nil, err
	}
	check.PanicIfNotf(len(block) > 0 && string(block) != "null", "L1 block %d holding the message is null", number)

	logs, err := o.client.GetLogs(ctx, number, number)
	if err != nil {
		return nil, err
	}
	check.PanicIfNotf(len(logs) > 0, "no bridge logs in L1 block %d holding the message", number)

	logsData, err := jsonCodec.Marshal(logs)
	if err != nil {
		return nil, err
	}

	return &l1.TxData{
		BlockNumber: number,
		BlockData:   block,
		Logs:        logsData,
	}, nil
}

// Enqueue appends an already captured snapshot.
func (o *Oracle) Enqueue(data *l1.TxData) {
	check.PanicIfNotf(data != nil, "nil L1 snapshot")

	o.queue = append(o.queue, data)

	ctx := context.Background()
	o.metrics.AddEnqueued(ctx)
	o.metrics.SetQueueLength(ctx, len(o.queue))

	o.logger.Debug().
		Uint64(logging.FieldBlockNumber, data.BlockNumber).
		Int(logging.FieldQueueLength, len(o.queue)).
		Msg("queued L1 snapshot")
}

func (o *Oracle) GetBlockNumber() Response {
	return o.answer(methodBlockNumber, func(head *l1.TxData) any {
		return hexutil.EncodeUint64(head.BlockNumber)
	}, nil)
}

func (o *Oracle) GetBlockByNumber(number uint64) Response {
	o.logger.Trace().Uint64(logging.FieldBlockNumber, number).Msg("block requested")
	return o.answer(methodGetBlockByNumber, func(head *l1.TxData) any {
		return head.BlockData
	}, nil)
}

func (o *Oracle) GetLogs(filter LogFilter) Response {
	o.logger.Trace().Any(logging.FieldRpcParams, filter).Msg("logs requested")
	return o.answer(methodGetLogs, func(head *l1.TxData) any {
		return head.Logs
	}, emptyLogs)
}

// answer computes the result from the current head and only then moves the call counter,
// so the call completing a cycle still sees the head it belongs to.
func (o *Oracle) answer(method string, fromHead func(head *l1.TxData) any, empty any) Response {
	ctx := context.Background()

	o.calls++
	o.metrics.AddCall(ctx, method)

	result := empty
	if head := o.Head(); head != nil {
		result = fromHead(head)
	}

	o.logger.Trace().
		Str(logging.FieldRpcMethod, method).
		Int(logging.FieldCallCount, o.calls).
		Int(logging.FieldQueueLength, len(o.queue)).
		Msg("answered")

	if o.calls >= CallsPerCycle {
		o.calls = 0
		o.metrics.AddCompletedCycle(ctx)

		if o.config.AdvanceOnCycle && len(o.queue) > 0 {
			o.queue[0] = nil
			o.queue = o.queue[1:]
			o.metrics.SetQueueLength(ctx, len(o.queue))
		}
	}

	return newResponse(result)
}

func (o *Oracle) Len() int {
	return len(o.queue)
}

func (o *Oracle) Head() *l1.TxData {
	if len(o.queue) == 0 {
		return nil
	}
	return o.queue[0]
}

func (o *Oracle) CallCount() int {
	return o.calls
}
