package l1_test

import (
	"encoding/json"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/NilFoundation/l1oracle/nil/common/logging"
	"github.com/NilFoundation/l1oracle/nil/internal/felt"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l1"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/testaide"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/suite"
)

// fakeEthService serves the eth_ namespace subset used by RpcClient
type fakeEthService struct {
	head       uint64
	logs       []*l1.RawLog
	blockCalls atomic.Int32
}

type filterQuery struct {
	FromBlock hexutil.Uint64   `json:"fromBlock"`
	ToBlock   hexutil.Uint64   `json:"toBlock"`
	Address   []common.Address `json:"address"`
	Topics    [][]common.Hash  `json:"topics"`
}

func (s *fakeEthService) BlockNumber() hexutil.Uint64 {
	return hexutil.Uint64(s.head)
}

func (s *fakeEthService) GetBlockByNumber(number hexutil.Uint64, _ bool) (json.RawMessage, error) {
	s.blockCalls.Add(1)
	if uint64(number) > s.head {
		return json.RawMessage("null"), nil
	}
	return testaide.BlockJson(uint64(number)), nil
}

func (s *fakeEthService) GetLogs(filter filterQuery) ([]*l1.RawLog, error) {
	result := make([]*l1.RawLog, 0)
	for _, log := range s.logs {
		if log.BlockNumber < filter.FromBlock || log.BlockNumber > filter.ToBlock {
			continue
		}
		if len(filter.Address) > 0 && !slices.Contains(filter.Address, log.Address) {
			continue
		}
		if len(filter.Topics) > 0 && len(filter.Topics[0]) > 0 && !slices.Contains(filter.Topics[0], log.Topics[0]) {
			continue
		}
		result = append(result, log)
	}
	return result, nil
}

type RpcClientTestSuite struct {
	suite.Suite

	service *fakeEthService
	server  *rpc.Server
	client  *l1.RpcClient
}

func TestRpcClient(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RpcClientTestSuite))
}

func (s *RpcClientTestSuite) SetupTest() {
	msg := testaide.SampleMessage()
	strangerLog := msg.Log(150, common.Hash{3})
	strangerLog.Address = common.HexToAddress("0x1111111111111111111111111111111111111111")

	s.service = &fakeEthService{
		head: 300,
		logs: []*l1.RawLog{
			msg.WithNonce(felt.New(1684054)).Log(140, common.Hash{1}),
			msg.Log(150, common.Hash{2}),
			testaide.ForeignLog(150),
			strangerLog,
			msg.Log(250, common.Hash{4}),
		},
	}

	s.server = rpc.NewServer()
	s.Require().NoError(s.server.RegisterName("eth", s.service))

	cfg := l1.DefaultRpcClientConfig()
	cfg.BridgeContractAddress = testaide.BridgeAddress.Hex()
	cfg.BlockCacheSize = 1024

	var err error
	s.client, err = l1.NewRpcClient(rpc.DialInProc(s.server), cfg, logging.Nop())
	s.Require().NoError(err)
}

func (s *RpcClientTestSuite) TearDownTest() {
	s.client.Close()
	s.server.Stop()
}

func (s *RpcClientTestSuite) TestLatestBlockNumberByTimestamp() {
	ctx := s.T().Context()

	cases := []struct {
		ts       uint64
		expected uint64
	}{
		{testaide.GenesisTimestamp, 0},
		{testaide.BlockTimestamp(150), 150},
		{testaide.BlockTimestamp(150) + 5, 150},
		{testaide.BlockTimestamp(150) + 11, 150},
		{testaide.BlockTimestamp(150) + 12, 151},
		{testaide.BlockTimestamp(300), 300},
		{testaide.BlockTimestamp(10_000), 300},
	}
	for _, c := range cases {
		number, err := s.client.LatestBlockNumberByTimestamp(ctx, c.ts)
		s.Require().NoError(err, c.ts)
		s.Equal(c.expected, number, c.ts)
	}

	_, err := s.client.LatestBlockNumberByTimestamp(ctx, testaide.GenesisTimestamp-1)
	s.Require().ErrorIs(err, l1.ErrBlockNotFound)
}

func (s *RpcClientTestSuite) TestBlockTimestampsAreCached() {
	ctx := s.T().Context()

	ts := testaide.BlockTimestamp(77) + 3
	number, err := s.client.LatestBlockNumberByTimestamp(ctx, ts)
	s.Require().NoError(err)
	s.Require().Equal(uint64(77), number)

	fetched := s.service.blockCalls.Load()
	s.Require().Positive(fetched)

	number, err = s.client.LatestBlockNumberByTimestamp(ctx, ts)
	s.Require().NoError(err)
	s.Require().Equal(uint64(77), number)
	s.Equal(fetched, s.service.blockCalls.Load())
}

func (s *RpcClientTestSuite) TestGetBlockByNumber() {
	ctx := s.T().Context()

	block, err := s.client.GetBlockByNumber(ctx, 150)
	s.Require().NoError(err)
	s.JSONEq(string(testaide.BlockJson(150)), string(block))

	_, err = s.client.GetBlockByNumber(ctx, 301)
	s.Require().ErrorIs(err, l1.ErrBlockNotFound)
}

func (s *RpcClientTestSuite) TestGetLogsFiltersBridgeMessages() {
	ctx := s.T().Context()

	logs, err := s.client.GetLogs(ctx, 100, 200)
	s.Require().NoError(err)
	s.Require().Len(logs, 2)

	s.Equal(hexutil.Uint64(140), logs[0].BlockNumber)
	s.Equal(hexutil.Uint64(150), logs[1].BlockNumber)
	s.Equal(common.Hash{2}, logs[1].TransactionHash)

	event, err := l1.Decode(logs[1])
	s.Require().NoError(err)
	s.Equal(testaide.SampleMessage().Nonce, event.Nonce)

	logs, err = s.client.GetLogs(ctx, 151, 249)
	s.Require().NoError(err)
	s.Empty(logs)
}

func (s *RpcClientTestSuite) TestConfigValidate() {
	cfg := l1.DefaultRpcClientConfig()
	s.Require().Error(cfg.Validate())

	cfg.Endpoint = "http://localhost:8545"
	s.Require().Error(cfg.Validate())

	cfg.BridgeContractAddress = testaide.BridgeAddress.Hex()
	s.Require().NoError(cfg.Validate())

	cfg.BlockCacheSize = 0
	s.Require().Error(cfg.Validate())
}
