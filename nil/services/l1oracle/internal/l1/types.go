package l1

import (
	"encoding/json"

	"github.com/NilFoundation/l1oracle/nil/internal/felt"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/shopspring/decimal"
)

const weiDecimals = 18

// RawLog is a log entry exactly as eth_getLogs returns it.
// A decoded log marshals back to the bytes the node sent, so fields it omitted stay omitted.
type RawLog struct {
	Address          common.Address `json:"address"`
	Topics           []common.Hash  `json:"topics"`
	Data             hexutil.Bytes  `json:"data"`
	BlockNumber      hexutil.Uint64 `json:"blockNumber"`
	BlockHash        common.Hash    `json:"blockHash"`
	TransactionHash  common.Hash    `json:"transactionHash"`
	TransactionIndex hexutil.Uint   `json:"transactionIndex"`
	LogIndex         hexutil.Uint   `json:"logIndex"`
	Removed          bool           `json:"removed"`
	BlockTimestamp   hexutil.Uint64 `json:"blockTimestamp,omitempty"`

	raw json.RawMessage
}

type rawLogFields RawLog

func (l *RawLog) UnmarshalJSON(data []byte) error {
	var fields rawLogFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*l = RawLog(fields)
	l.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (l RawLog) MarshalJSON() ([]byte, error) {
	if l.raw != nil {
		return l.raw, nil
	}
	return json.Marshal(rawLogFields(l))
}

// Event is a decoded LogMessageToL2.
// Calldata is laid out the way the L2 handler receives it: sender first, then the payload.
type Event struct {
	ContractAddress    felt.Felt   `json:"contract_address"`
	EntryPointSelector felt.Felt   `json:"entry_point_selector"`
	Calldata           []felt.Felt `json:"calldata"`
	Nonce              felt.Felt   `json:"nonce"`
	Fee                felt.Felt   `json:"fee"`

	L1TxHash       common.Hash `json:"l1_tx_hash"`
	BlockNumber    uint64      `json:"block_number"`
	BlockTimestamp uint64      `json:"block_timestamp"`
}

func (ev *Event) FromAddress() felt.Felt {
	return ev.Calldata[0]
}

func (ev *Event) Payload() []felt.Felt {
	return ev.Calldata[1:]
}

// FeeEth is the message fee paid on L1, converted from wei.
func (ev *Event) FeeEth() decimal.Decimal {
	return decimal.NewFromBigInt(ev.Fee.Int().ToBig(), -weiDecimals)
}

// TxData is a snapshot of what an L1 node answers for the block holding one bridge message.
type TxData struct {
	BlockNumber uint64          `json:"block_number"`
	BlockData   json.RawMessage `json:"block_data"`
	Logs        json.RawMessage `json:"logs"`
}
