package l2

import "errors"

var (
	ErrFeederGateway = errors.New("feeder gateway request failed")
	ErrTxNotFound    = errors.New("L2 transaction not found")
	ErrTxNotIncluded = errors.New("L2 transaction is not included in a block")
)
