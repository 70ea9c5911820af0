package oracle

import (
	"encoding/json"

	"github.com/NilFoundation/l1oracle/nil/common/check"
	"github.com/ethereum/go-ethereum/common"
	jsoniter "github.com/json-iterator/go"
)

const (
	jsonRPCVersion = "2.0"
	responseId     = "1"
)

var (
	jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

	emptyLogs = json.RawMessage("[]")
)

// Response is a JSON-RPC 2.0 success envelope as an L1 node would send it.
type Response struct {
	JsonRPC string `json:"jsonrpc"`
	Id      string `json:"id"`
	Result  any    `json:"result"`
}

func newResponse(result any) Response {
	return Response{
		JsonRPC: jsonRPCVersion,
		Id:      responseId,
		Result:  result,
	}
}

// Bytes returns the exact JSON text of the envelope.
func (r Response) Bytes() []byte {
	data, err := jsonCodec.Marshal(r)
	check.PanicIfErr(err)
	return data
}

func (r Response) String() string {
	return string(r.Bytes())
}

// LogFilter is the eth_getLogs argument. The oracle answers from its head regardless of the filter.
type LogFilter struct {
	FromBlock string           `json:"fromBlock,omitempty"`
	ToBlock   string           `json:"toBlock,omitempty"`
	Address   []common.Address `json:"address,omitempty"`
	Topics    [][]common.Hash  `json:"topics,omitempty"`
}
