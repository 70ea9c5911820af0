package l1oracle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/NilFoundation/l1oracle/nil/common"
	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/telemetry"
	"github.com/NilFoundation/l1oracle/nil/internal/telemetry/telattr"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/finder"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/metrics"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/oracle"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

var (
	ErrL1MessageNotFound = errors.New("L1 message not found")
	ErrNoL1Client        = errors.New("session has no L1 client")
)

// Session owns one mock oracle and drives it for a single sequencer under test.
// It is not safe for concurrent use.
type Session struct {
	id       uuid.UUID
	config   Config
	client   L1Client
	oracle   *oracle.Oracle
	clock    clockwork.Clock
	measurer *telemetry.Measurer
	logger   logging.Logger
}

// New creates a session searching L1 through client.
// A nil client gives a replay-only session fed through Enqueue.
func New(config *Config, client L1Client, clock clockwork.Clock, logger logging.Logger) (*Session, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	oracleMetrics, err := oracle.NewMetrics()
	if err != nil {
		return nil, err
	}
	measurer, err := telemetry.NewMeasurer(
		telemetry.NewMeter(metrics.Namespace),
		metrics.Namespace+".session.await",
		clock,
		telattr.Component("session"),
	)
	if err != nil {
		return nil, err
	}

	id := uuid.New()
	logger = logger.With().
		Str(logging.FieldComponent, "l1oracle-session").
		Stringer(logging.FieldSessionId, id).
		Logger()

	oracleConfig := &oracle.Config{
		Window:         config.Window,
		AdvanceOnCycle: config.AdvanceOnCycle,
	}
	return &Session{
		id:       id,
		config:   *config,
		client:   client,
		oracle:   oracle.New(oracleConfig, client, finder.New(client, logger), oracleMetrics, logger),
		clock:    clock,
		measurer: measurer,
		logger:   logger,
	}, nil
}

// SetNewTx makes a single search with the configured window.
func (s *Session) SetNewTx(ctx context.Context, tx *L2HandlerTx, l2Timestamp uint64) bool {
	if s.client == nil {
		return false
	}
	return s.oracle.SetNewTx(ctx, tx, l2Timestamp)
}

// AwaitTx repeats the search until the message is found, widening the window on every attempt.
// Returns ErrL1MessageNotFound once the retry limit is exhausted.
func (s *Session) AwaitTx(ctx context.Context, tx *L2HandlerTx, l2Timestamp uint64) error {
	if s.client == nil {
		return ErrNoL1Client
	}

	runner := common.NewRetryRunner(
		common.RetryConfig{
			ShouldRetry: common.ComposeRetryPolicies(
				common.LimitRetries(s.config.RetryLimit),
				common.RetryOnlyIf(ErrL1MessageNotFound),
			),
			NextDelay: common.DelayExponential(s.config.RetryBaseDelay, s.config.RetryMaxDelay),
			Clock:     s.clock,
		},
		s.logger,
	)

	s.measurer.Restart()
	err := runner.Do(ctx, func(ctx context.Context, attempt uint32) error {
		window := s.windowFor(attempt)
		s.logger.Debug().
			Uint32(logging.FieldAttempt, attempt).
			Dur(logging.FieldWindow, window).
			Uint64(logging.FieldL2Timestamp, l2Timestamp).
			Msg("searching L1 message")

		if s.oracle.SetNewTxWithWindow(ctx, tx, l2Timestamp, window) {
			return nil
		}
		return fmt.Errorf("%w: attempt %d, window %s", ErrL1MessageNotFound, attempt, window)
	})
	elapsed := s.measurer.Measure(ctx, telattr.Found(err == nil))

	if err != nil {
		s.logger.Warn().Err(err).Dur(logging.FieldDuration, elapsed).Msg("L1 message was not found")
		return err
	}
	s.logger.Info().
		Dur(logging.FieldDuration, elapsed).
		Uint64(logging.FieldBlockNumber, s.oracle.Head().BlockNumber).
		Msg("L1 message captured")
	return nil
}

func (s *Session) windowFor(attempt uint32) time.Duration {
	window := s.config.Window
	for i := uint32(1); i < attempt && window < s.config.MaxWindow; i++ {
		window *= 2
	}
	return min(window, s.config.MaxWindow)
}

// ID tells apart sessions driven side by side; it is attached to every log record of the session.
func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) Enqueue(data *L1TxData) {
	s.oracle.Enqueue(data)
}

func (s *Session) GetBlockNumber() Response {
	return s.oracle.GetBlockNumber()
}

func (s *Session) GetBlockByNumber(number uint64) Response {
	return s.oracle.GetBlockByNumber(number)
}

func (s *Session) GetLogs(filter LogFilter) Response {
	return s.oracle.GetLogs(filter)
}

func (s *Session) Len() int {
	return s.oracle.Len()
}

func (s *Session) Head() *L1TxData {
	return s.oracle.Head()
}

func (s *Session) CallCount() int {
	return s.oracle.CallCount()
}
