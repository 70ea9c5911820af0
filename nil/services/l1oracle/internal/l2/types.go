package l2

import (
	"github.com/NilFoundation/l1oracle/nil/internal/felt"
)

const TxTypeL1Handler = "L1_HANDLER"

// HandlerTx is an L2 transaction as reported by the feeder gateway.
// Only L1_HANDLER transactions carry a bridge message, other types are kept so callers can reject them.
type HandlerTx struct {
	Type               string      `json:"type"`
	TransactionHash    felt.Felt   `json:"transaction_hash"`
	ContractAddress    felt.Felt   `json:"contract_address"`
	EntryPointSelector felt.Felt   `json:"entry_point_selector"`
	Nonce              felt.Felt   `json:"nonce"`
	Calldata           []felt.Felt `json:"calldata"`
}

func (tx *HandlerTx) IsL1Handler() bool {
	return tx != nil && tx.Type == TxTypeL1Handler
}

const txStatusNotReceived = "NOT_RECEIVED"

// TransactionInfo is the get_transaction response of the feeder gateway.
type TransactionInfo struct {
	Status           string     `json:"status"`
	FinalityStatus   string     `json:"finality_status,omitempty"`
	BlockHash        *felt.Felt `json:"block_hash,omitempty"`
	BlockNumber      *uint64    `json:"block_number,omitempty"`
	TransactionIndex *uint64    `json:"transaction_index,omitempty"`
	Transaction      *HandlerTx `json:"transaction,omitempty"`
}

type blockInfo struct {
	BlockNumber uint64 `json:"block_number"`
	Timestamp   uint64 `json:"timestamp"`
}

type gatewayError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
