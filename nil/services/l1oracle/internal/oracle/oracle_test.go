package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/finder"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l1"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l2"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/testaide"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

const l2Timestamp = 1_700_000_000

type OracleTestSuite struct {
	suite.Suite

	ctx        context.Context
	clientMock *l1.ClientMock
	reader     *sdkmetric.ManualReader
	config     *Config

	msg     testaide.Message
	matched *l1.RawLog
	tx      *l2.HandlerTx
}

func TestOracle(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(OracleTestSuite))
}

func (s *OracleTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.config = DefaultConfig()
	s.reader = sdkmetric.NewManualReader()

	s.msg = testaide.SampleMessage()
	s.matched = s.msg.Log(150, common.Hash{0xaa})
	s.tx = s.msg.HandlerTx()

	s.clientMock = &l1.ClientMock{
		LatestBlockNumberByTimestampFunc: func(_ context.Context, ts uint64) (uint64, error) {
			if ts < l2Timestamp {
				return 100, nil
			}
			return 200, nil
		},
		GetLogsFunc: func(_ context.Context, from, to uint64) ([]*l1.RawLog, error) {
			if from <= 150 && 150 <= to {
				return []*l1.RawLog{s.matched}, nil
			}
			return nil, nil
		},
		GetBlockByNumberFunc: func(_ context.Context, number uint64) (json.RawMessage, error) {
			return testaide.BlockJson(number), nil
		},
	}
}

func (s *OracleTestSuite) newOracle() *Oracle {
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(s.reader))
	m, err := NewMetricsWithMeter(provider.Meter("test"))
	s.Require().NoError(err)

	return New(s.config, s.clientMock, finder.New(s.clientMock, logging.Nop()), m, logging.Nop())
}

func (s *OracleTestSuite) TestEmptyOracle() {
	o := s.newOracle()

	s.JSONEq(`{"jsonrpc":"2.0","id":"1","result":null}`, o.GetBlockNumber().String())
	s.JSONEq(`{"jsonrpc":"2.0","id":"1","result":null}`, o.GetBlockByNumber(150).String())
	s.JSONEq(`{"jsonrpc":"2.0","id":"1","result":[]}`, o.GetLogs(LogFilter{}).String())
	s.Equal(3, o.CallCount())
	s.Nil(o.Head())
	s.Zero(o.Len())

	o.GetBlockNumber()
	s.Zero(o.CallCount())
}

func (s *OracleTestSuite) TestSetNewTx() {
	o := s.newOracle()

	s.Require().True(o.SetNewTx(s.ctx, s.tx, l2Timestamp))
	s.Require().Equal(1, o.Len())

	head := o.Head()
	s.Require().NotNil(head)
	s.Equal(uint64(150), head.BlockNumber)
	s.JSONEq(string(testaide.BlockJson(150)), string(head.BlockData))
	s.JSONEq(string(testaide.LogsJson(s.matched)), string(head.Logs))

	// the snapshot is taken from exactly the found block
	blockCalls := s.clientMock.GetBlockByNumberCalls()
	s.Require().Len(blockCalls, 1)
	s.Equal(uint64(150), blockCalls[0].Number)
	logsCalls := s.clientMock.GetLogsCalls()
	s.Require().Len(logsCalls, 2)
	s.Equal(uint64(150), logsCalls[1].From)
	s.Equal(uint64(150), logsCalls[1].To)
}

func (s *OracleTestSuite) TestSnapshotKeepsNodeLogBytes() {
	// a node that does not report blockTimestamp, plus a field unknown to RawLog
	typed, err := json.Marshal(s.matched)
	s.Require().NoError(err)
	var fields map[string]any
	s.Require().NoError(json.Unmarshal(typed, &fields))
	delete(fields, "blockTimestamp")
	fields["blockReceiptsRoot"] = "0x01"
	nodeLog, err := json.Marshal(fields)
	s.Require().NoError(err)

	s.matched = new(l1.RawLog)
	s.Require().NoError(json.Unmarshal(nodeLog, s.matched))

	o := s.newOracle()
	s.Require().True(o.SetNewTx(s.ctx, s.tx, l2Timestamp))

	logs := string(o.Head().Logs)
	s.JSONEq("["+string(nodeLog)+"]", logs)
	s.NotContains(logs, "blockTimestamp")
}

func (s *OracleTestSuite) TestSetNewTxMiss() {
	o := s.newOracle()

	tx := s.msg.HandlerTx()
	tx.Nonce = s.msg.Fee
	s.False(o.SetNewTx(s.ctx, tx, l2Timestamp))
	s.Zero(o.Len())
	s.Empty(s.clientMock.GetBlockByNumberCalls())
}

func (s *OracleTestSuite) TestSetNewTxTransientFailure() {
	s.clientMock.GetBlockByNumberFunc = func(context.Context, uint64) (json.RawMessage, error) {
		return nil, errors.New("connection reset")
	}
	o := s.newOracle()

	s.False(o.SetNewTx(s.ctx, s.tx, l2Timestamp))
	s.Zero(o.Len())
}

func (s *OracleTestSuite) TestSetNewTxContradictingL1() {
	s.Run("missing block", func() {
		s.clientMock.GetBlockByNumberFunc = func(_ context.Context, number uint64) (json.RawMessage, error) {
			return nil, l1.ErrBlockNotFound
		}
		o := s.newOracle()
		s.Panics(func() { o.SetNewTx(s.ctx, s.tx, l2Timestamp) })
	})

	s.Run("logs vanished", func() {
		s.clientMock.GetBlockByNumberFunc = func(_ context.Context, number uint64) (json.RawMessage, error) {
			return testaide.BlockJson(number), nil
		}
		s.clientMock.GetLogsFunc = func(_ context.Context, from, to uint64) ([]*l1.RawLog, error) {
			if from == to {
				return nil, nil
			}
			return []*l1.RawLog{s.matched}, nil
		}
		o := s.newOracle()
		s.Panics(func() { o.SetNewTx(s.ctx, s.tx, l2Timestamp) })
	})
}

func (s *OracleTestSuite) TestCycleKeepsHead() {
	o := s.newOracle()
	s.Require().True(o.SetNewTx(s.ctx, s.tx, l2Timestamp))

	expectedBlock := `{"jsonrpc":"2.0","id":"1","result":` + string(testaide.BlockJson(150)) + `}`
	for range 3 {
		s.JSONEq(`{"jsonrpc":"2.0","id":"1","result":"0x96"}`, o.GetBlockNumber().String())
		s.JSONEq(expectedBlock, o.GetBlockByNumber(150).String())
		s.JSONEq(
			`{"jsonrpc":"2.0","id":"1","result":`+string(testaide.LogsJson(s.matched))+`}`,
			o.GetLogs(LogFilter{FromBlock: "0x96", ToBlock: "0x96"}).String(),
		)
		s.Equal(3, o.CallCount())
		// header of the same block closes the cycle
		s.JSONEq(expectedBlock, o.GetBlockByNumber(150).String())
		s.Zero(o.CallCount())
	}
	s.Equal(1, o.Len())
}

func (s *OracleTestSuite) TestAdvanceOnCycle() {
	s.config.AdvanceOnCycle = true
	o := s.newOracle()

	o.Enqueue(&l1.TxData{BlockNumber: 10, BlockData: testaide.BlockJson(10), Logs: json.RawMessage(`[]`)})
	o.Enqueue(&l1.TxData{BlockNumber: 11, BlockData: testaide.BlockJson(11), Logs: json.RawMessage(`[]`)})

	for i := range 3 {
		s.JSONEq(`{"jsonrpc":"2.0","id":"1","result":"0xa"}`, o.GetBlockNumber().String(), i)
	}
	// the call completing the cycle still answers from the old head
	s.JSONEq(`{"jsonrpc":"2.0","id":"1","result":"0xa"}`, o.GetBlockNumber().String())
	s.Equal(1, o.Len())
	s.JSONEq(`{"jsonrpc":"2.0","id":"1","result":"0xb"}`, o.GetBlockNumber().String())

	for range 3 {
		o.GetBlockNumber()
	}
	s.Zero(o.Len())
	s.JSONEq(`{"jsonrpc":"2.0","id":"1","result":null}`, o.GetBlockNumber().String())
}

func (s *OracleTestSuite) TestMetrics() {
	o := s.newOracle()
	s.Require().True(o.SetNewTx(s.ctx, s.tx, l2Timestamp))
	for range 5 {
		o.GetBlockNumber()
	}
	o.GetLogs(LogFilter{})

	var rm metricdata.ResourceMetrics
	s.Require().NoError(s.reader.Collect(s.ctx, &rm))

	sums := make(map[string]int64)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if data, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range data.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	s.Equal(int64(6), sums["l1oracle.oracle.rpc_calls"])
	s.Equal(int64(1), sums["l1oracle.oracle.completed_cycles"])
	s.Equal(int64(1), sums["l1oracle.oracle.enqueued_snapshots"])
}

func (s *OracleTestSuite) TestEnvelopeBytes() {
	r := newResponse("0x96")
	s.Equal(`{"jsonrpc":"2.0","id":"1","result":"0x96"}`, string(r.Bytes()))

	s.Equal(`{"jsonrpc":"2.0","id":"1","result":null}`, string(newResponse(nil).Bytes()))
	s.Equal(`{"jsonrpc":"2.0","id":"1","result":[]}`, string(newResponse(emptyLogs).Bytes()))
}
