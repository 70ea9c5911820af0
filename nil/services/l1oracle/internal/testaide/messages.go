package testaide

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/NilFoundation/l1oracle/nil/common/check"
	"github.com/NilFoundation/l1oracle/nil/internal/felt"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l1"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

var BridgeAddress = common.HexToAddress("0xc662c410C0ECf747543f5bA90660f6ABeBD9C8c4")

// Message describes one LogMessageToL2 emission.
type Message struct {
	FromAddress common.Address
	ToAddress   felt.Felt
	Selector    felt.Felt
	Payload     []felt.Felt
	Nonce       felt.Felt
	Fee         felt.Felt
}

// SampleMessage is a real mainnet deposit message.
func SampleMessage() Message {
	return Message{
		FromAddress: common.HexToAddress("0xae0ee0a63a2ce6baeeffe56e7714fb4efe48d419"),
		ToAddress:   felt.MustFromHex("0x616757a151c21f9be8775098d591c2807316d992bbc3bb1a5c1821630589256"),
		Selector:    felt.MustFromHex("0x1b64b1b3b690b43b9b514fb81377518f4039cd3e4f4914d8a6bdf01d679fb19"),
		Payload: []felt.Felt{
			felt.MustFromHex("0x3bd3a7dfe1ba85dfd3e6ab2d64f83e0e3b7d8e4f5e1a3fb8e8a1cb1b0cbbdfe"),
			felt.MustFromHex("0x2386f26fc10000"),
			felt.MustFromHex("0x0"),
		},
		Nonce: felt.MustFromHex("0x19b255"),
		Fee:   felt.MustFromHex("0x5af3107a4000"),
	}
}

func (m Message) WithNonce(nonce felt.Felt) Message {
	m.Nonce = nonce
	return m
}

func (m Message) Data() []byte {
	payload := make([]*big.Int, len(m.Payload))
	for i, p := range m.Payload {
		payload[i] = p.Int().ToBig()
	}
	data, err := l1.PackLogMessageToL2Data(payload, m.Nonce.Int().ToBig(), m.Fee.Int().ToBig())
	check.PanicIfErr(err)
	return data
}

func (m Message) Log(blockNumber uint64, txHash common.Hash) *l1.RawLog {
	return &l1.RawLog{
		Address: BridgeAddress,
		Topics: []common.Hash{
			l1.LogMessageToL2Topic(),
			common.BytesToHash(m.FromAddress.Bytes()),
			common.Hash(m.ToAddress.Bytes32()),
			common.Hash(m.Selector.Bytes32()),
		},
		Data:            m.Data(),
		BlockNumber:     hexutil.Uint64(blockNumber),
		BlockHash:       BlockHash(blockNumber),
		TransactionHash: txHash,
		BlockTimestamp:  hexutil.Uint64(BlockTimestamp(blockNumber)),
	}
}

// HandlerTx is the L1_HANDLER transaction a sequencer produces for the message.
func (m Message) HandlerTx() *l2.HandlerTx {
	calldata := make([]felt.Felt, 0, len(m.Payload)+1)
	calldata = append(calldata, felt.FromAddress(m.FromAddress))
	calldata = append(calldata, m.Payload...)

	return &l2.HandlerTx{
		Type:               l2.TxTypeL1Handler,
		TransactionHash:    felt.FromHash(common.BytesToHash(m.Data())),
		ContractAddress:    m.ToAddress,
		EntryPointSelector: m.Selector,
		Nonce:              m.Nonce,
		Calldata:           calldata,
	}
}

// ForeignLog is a bridge log of some other event type.
func ForeignLog(blockNumber uint64) *l1.RawLog {
	return &l1.RawLog{
		Address:     BridgeAddress,
		Topics:      []common.Hash{common.HexToHash("0xdeadbeef")},
		Data:        []byte{1, 2, 3},
		BlockNumber: hexutil.Uint64(blockNumber),
	}
}

const GenesisTimestamp = 1_684_000_000

// blocks are 12 seconds apart
func BlockTimestamp(number uint64) uint64 {
	return GenesisTimestamp + 12*number
}

func BlockHash(number uint64) common.Hash {
	return common.BigToHash(new(big.Int).SetUint64(number + 0xb10c))
}

// BlockJson renders a minimal eth_getBlockByNumber result.
func BlockJson(number uint64) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(
		`{"number":"%s","hash":"%s","timestamp":"%s","transactions":[]}`,
		hexutil.EncodeUint64(number), BlockHash(number), hexutil.EncodeUint64(BlockTimestamp(number)),
	))
}

func LogsJson(logs ...*l1.RawLog) json.RawMessage {
	data, err := json.Marshal(logs)
	check.PanicIfErr(err)
	return data
}
