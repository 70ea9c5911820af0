package l1oracle

import (
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/fixtures"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l1"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l2"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/oracle"
)

type (
	L1Client        = l1.Client
	L1Event         = l1.Event
	L1TxData        = l1.TxData
	RpcClient       = l1.RpcClient
	RpcClientConfig = l1.RpcClientConfig

	L2HandlerTx        = l2.HandlerTx
	FeederClient       = l2.FeederClient
	FeederClientConfig = l2.FeederClientConfig

	Response  = oracle.Response
	LogFilter = oracle.LogFilter

	FixtureStorage = fixtures.Storage
)

const CallsPerCycle = oracle.CallsPerCycle

var (
	ErrFixtureNotFound = fixtures.ErrFixtureNotFound
	ErrTxNotFound      = l2.ErrTxNotFound
)
