package fixtures

import (
	"context"
	"errors"
	"fmt"

	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/db"
	"github.com/NilFoundation/l1oracle/nil/internal/felt"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l1"
	"github.com/jonboulle/clockwork"
)

// captured L1 snapshots keyed by the 32-byte big-endian L2 transaction hash
const fixturesTable db.TableName = "L1Fixtures"

// Storage keeps L1 snapshots captured for L2 transactions so they can be replayed without an L1 node.
type Storage struct {
	*baseStorage
	writer  *jsonDbWriter[*l1.TxData]
	metrics TableMetrics
}

func NewStorage(database db.DB, clock clockwork.Clock, metrics TableMetrics, logger logging.Logger) *Storage {
	logger = logger.With().Str(logging.FieldComponent, "fixtures").Logger()
	base := newBaseStorage(database, clock, logger)
	return &Storage{
		baseStorage: base,
		writer:      newJSONWriter[*l1.TxData](fixturesTable, base, false),
		metrics:     metrics,
	}
}

func fixtureKey(l2TxHash felt.Felt) []byte {
	key := l2TxHash.Bytes32()
	return key[:]
}

// Put stores the snapshot; an existing fixture for the same hash is never overwritten.
func (s *Storage) Put(ctx context.Context, l2TxHash felt.Felt, data *l1.TxData) error {
	if data == nil {
		return fmt.Errorf("%w: nil snapshot for %s", ErrSerializationFailed, l2TxHash)
	}

	key := fixtureKey(l2TxHash)
	err := s.retryRunner.Do(ctx, func(ctx context.Context, _ uint32) error {
		return s.writer.putTx(ctx, key, data)
	})
	if err != nil {
		return err
	}

	s.metrics.RecordInserts(ctx, 1)
	s.logger.Debug().
		Stringer(logging.FieldTransactionHash, l2TxHash).
		Uint64(logging.FieldBlockNumber, data.BlockNumber).
		Msg("fixture stored")
	return nil
}

func (s *Storage) Get(ctx context.Context, l2TxHash felt.Felt) (*l1.TxData, error) {
	var data *l1.TxData
	err := s.retryRunner.Do(ctx, func(ctx context.Context, _ uint32) error {
		tx, err := s.database.CreateRoTx(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		stored, err := readJSON[*l1.TxData](tx, fixturesTable, fixtureKey(l2TxHash))
		if errors.Is(err, db.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrFixtureNotFound, l2TxHash)
		}
		if err != nil {
			return err
		}
		data = *stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReads(ctx, 1)
	return data, nil
}

// Iterate visits every stored fixture in key order. Iteration stops at the first error returned by fn.
func (s *Storage) Iterate(ctx context.Context, fn func(l2TxHash felt.Felt, data *l1.TxData) error) error {
	tx, err := s.database.CreateRoTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	iter, err := tx.Range(fixturesTable, nil, nil)
	if err != nil {
		return err
	}
	defer iter.Close()

	count := 0
	for iter.HasNext() {
		if err := ctx.Err(); err != nil {
			return err
		}

		key, value, err := iter.Next()
		if err != nil {
			return err
		}
		stored, err := decodeJSON[*l1.TxData](value)
		if err != nil {
			return err
		}
		count++
		if err := fn(felt.FromBytes(key), *stored); err != nil {
			return err
		}
	}

	s.metrics.RecordReads(ctx, count)
	return nil
}
