package l1oracle

import (
	"context"

	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/db"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/fixtures"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l1"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l2"
	"github.com/jonboulle/clockwork"
)

func DefaultRpcClientConfig() *RpcClientConfig {
	return l1.DefaultRpcClientConfig()
}

func DialL1Client(ctx context.Context, config *RpcClientConfig, logger logging.Logger) (*RpcClient, error) {
	return l1.DialRpcClient(ctx, config, logger)
}

func DefaultFeederClientConfig() *FeederClientConfig {
	return l2.DefaultFeederClientConfig()
}

func NewFeederClient(config *FeederClientConfig, logger logging.Logger) (*FeederClient, error) {
	return l2.NewFeederClient(config, logger)
}

func NewFixtureStorage(database db.DB, clock clockwork.Clock, logger logging.Logger) (*FixtureStorage, error) {
	metrics, err := fixtures.NewTableMetrics()
	if err != nil {
		return nil, err
	}
	return fixtures.NewStorage(database, clock, metrics, logger), nil
}
