package finder

import (
	"context"
	"errors"
	"time"

	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l1"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l2"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/matcher"
)

// DefaultWindow bounds how far back from the L2 block timestamp the L1 message is searched.
const DefaultWindow = 5 * time.Minute

// Finder locates the L1 block holding the message behind an L1_HANDLER transaction.
type Finder struct {
	client l1.Client
	logger logging.Logger
}

func New(client l1.Client, logger logging.Logger) *Finder {
	f := &Finder{client: client}
	f.logger = logger.With().Str(logging.FieldComponent, f.Name()).Logger()
	return f
}

func (f *Finder) Name() string {
	return "l1-block-finder"
}

// FindL1Block scans the L1 blocks produced within window before l2Timestamp and returns
// the number of the first block whose bridge log matches tx.
// Any L1 failure is reported as a miss, the window is never widened here.
func (f *Finder) FindL1Block(ctx context.Context, tx *l2.HandlerTx, l2Timestamp uint64, window time.Duration) (uint64, bool) {
	if window <= 0 {
		window = DefaultWindow
	}

	logger := f.logger.With().
		Uint64(logging.FieldL2Timestamp, l2Timestamp).
		Dur(logging.FieldWindow, window).
		Logger()
	if tx != nil {
		logger = logger.With().Stringer(logging.FieldTransactionHash, tx.TransactionHash).Logger()
	}

	startTs := uint64(0)
	if windowSec := windowSeconds(window); l2Timestamp > windowSec {
		startTs = l2Timestamp - windowSec
	}

	start, err := f.client.LatestBlockNumberByTimestamp(ctx, startTs)
	if err != nil {
		logger.Warn().Err(err).Uint64(logging.FieldBlockTimestamp, startTs).Msg("failed to resolve window start")
		return 0, false
	}
	end, err := f.client.LatestBlockNumberByTimestamp(ctx, l2Timestamp)
	if err != nil {
		logger.Warn().Err(err).Uint64(logging.FieldBlockTimestamp, l2Timestamp).Msg("failed to resolve window end")
		return 0, false
	}

	logger = logger.With().
		Uint64(logging.FieldBlockRangeFrom, start).
		Uint64(logging.FieldBlockRangeTo, end).
		Logger()

	logs, err := f.client.GetLogs(ctx, start, end)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to fetch bridge logs")
		return 0, false
	}

	for _, log := range logs {
		event, err := l1.Decode(log)
		switch {
		case errors.Is(err, l1.ErrUnsupportedEvent):
			logger.Trace().Err(err).Msg("skipping foreign log")
			continue
		case err != nil:
			logger.Debug().Err(err).Msg("skipping undecodable log")
			continue
		}

		if matcher.Matches(event, tx) {
			logger.Debug().
				Uint64(logging.FieldBlockNumber, event.BlockNumber).
				Stringer(logging.FieldTransactionNonce, event.Nonce).
				Stringer(logging.FieldL1TxHash, event.L1TxHash).
				Stringer(logging.FieldFeeEth, event.FeeEth()).
				Msg("found L1 message")
			return event.BlockNumber, true
		}
	}

	logger.Debug().Int(logging.FieldLogCount, len(logs)).Msg("no matching L1 message in window")
	return 0, false
}

// windowSeconds rounds a positive window up to whole seconds, L1 timestamps having no finer resolution.
func windowSeconds(window time.Duration) uint64 {
	if window <= 0 {
		return 0
	}
	return uint64((window + time.Second - 1) / time.Second)
}
