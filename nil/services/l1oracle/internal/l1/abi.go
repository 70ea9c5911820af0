package l1

import (
	"bytes"
	_ "embed"
	"math/big"

	"github.com/NilFoundation/l1oracle/nil/common/check"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const logMessageToL2EventName = "LogMessageToL2"

//go:embed StarknetMessaging.json.abi
var starknetMessagingABIData []byte

var (
	starknetMessagingABI abi.ABI
	logMessageToL2Event  abi.Event
)

func init() {
	var err error
	starknetMessagingABI, err = abi.JSON(bytes.NewReader(starknetMessagingABIData))
	check.PanicIfErr(err)

	var ok bool
	logMessageToL2Event, ok = starknetMessagingABI.Events[logMessageToL2EventName]
	check.PanicIfNotf(ok, "event %s is missing from the messaging ABI", logMessageToL2EventName)
}

// LogMessageToL2Topic is the keccak256 signature hash of the bridge event (topics[0]).
func LogMessageToL2Topic() common.Hash {
	return logMessageToL2Event.ID
}

// PackLogMessageToL2Data ABI-encodes the non-indexed part of the event as it appears in the log data.
func PackLogMessageToL2Data(payload []*big.Int, nonce, fee *big.Int) ([]byte, error) {
	return logMessageToL2Event.Inputs.NonIndexed().Pack(payload, nonce, fee)
}
