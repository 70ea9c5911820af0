package fixtures

import (
	"fmt"
	"time"

	"github.com/NilFoundation/l1oracle/nil/common"
	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/db"
	"github.com/jonboulle/clockwork"
)

type baseStorage struct {
	database    db.DB
	retryRunner common.RetryRunner
	logger      logging.Logger
}

func newBaseStorage(database db.DB, clock clockwork.Clock, logger logging.Logger) *baseStorage {
	return &baseStorage{
		database: database,
		retryRunner: common.NewRetryRunner(
			common.RetryConfig{
				ShouldRetry: common.ComposeRetryPolicies(
					common.LimitRetries(10),
					common.DoNotRetryIf(ErrKeyExists, ErrFixtureNotFound, ErrSerializationFailed),
				),
				NextDelay: common.DelayJitter(20*time.Millisecond, 100*time.Millisecond, logger),
				Clock:     clock,
			},
			logger,
		),
		logger: logger,
	}
}

func (*baseStorage) commit(tx db.RwTx) error {
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
