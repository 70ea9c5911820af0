package l1

import (
	"fmt"
	"math/big"

	"github.com/NilFoundation/l1oracle/nil/internal/felt"
)

// non-indexed part of LogMessageToL2, field names follow the ABI argument names
type logMessageToL2Data struct {
	Payload []*big.Int
	Nonce   *big.Int
	Fee     *big.Int
}

// Decode turns a raw bridge log into an Event.
// It fails with ErrUnsupportedEvent for any other event and with ErrMalformedLog
// if topics or data do not follow the LogMessageToL2 layout.
func Decode(log *RawLog) (*Event, error) {
	if log == nil {
		return nil, fmt.Errorf("%w: nil log", ErrMalformedLog)
	}
	if len(log.Topics) == 0 {
		return nil, fmt.Errorf("%w: log has no topics", ErrMalformedLog)
	}
	if log.Topics[0] != logMessageToL2Event.ID {
		return nil, fmt.Errorf("%w: topic %s", ErrUnsupportedEvent, log.Topics[0])
	}
	if len(log.Topics) < 4 {
		return nil, fmt.Errorf("%w: expected 4 topics, got %d", ErrMalformedLog, len(log.Topics))
	}

	var data logMessageToL2Data
	if err := starknetMessagingABI.UnpackIntoInterface(&data, logMessageToL2EventName, log.Data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedLog, err)
	}

	nonce, err := felt.FromBig(data.Nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce: %w", ErrMalformedLog, err)
	}
	fee, err := felt.FromBig(data.Fee)
	if err != nil {
		return nil, fmt.Errorf("%w: fee: %w", ErrMalformedLog, err)
	}

	calldata := make([]felt.Felt, 0, len(data.Payload)+1)
	calldata = append(calldata, felt.FromHash(log.Topics[1]))
	for i, p := range data.Payload {
		v, err := felt.FromBig(p)
		if err != nil {
			return nil, fmt.Errorf("%w: payload[%d]: %w", ErrMalformedLog, i, err)
		}
		calldata = append(calldata, v)
	}

	return &Event{
		ContractAddress:    felt.FromHash(log.Topics[2]),
		EntryPointSelector: felt.FromHash(log.Topics[3]),
		Calldata:           calldata,
		Nonce:              nonce,
		Fee:                fee,
		L1TxHash:           log.TransactionHash,
		BlockNumber:        uint64(log.BlockNumber),
		BlockTimestamp:     uint64(log.BlockTimestamp),
	}, nil
}
