package logging

const (
	FieldComponent = "component"

	FieldDuration = "duration"
	FieldUrl      = "url"

	FieldRpcMethod = "rpcMethod"
	FieldRpcParams = "rpcParams"

	FieldTransactionHash  = "txnHash"
	FieldTransactionNonce = "txnNonce"
	FieldTransactionType  = "txnType"
	FieldL1TxHash         = "l1TxHash"
	FieldFeeEth           = "feeEth"

	FieldBlockNumber    = "blockNumber"
	FieldBlockTimestamp = "blockTimestamp"
	FieldBlockRangeFrom = "blockRangeFrom"
	FieldBlockRangeTo   = "blockRangeTo"
	FieldLogCount       = "logs"

	FieldL2Timestamp = "l2Timestamp"
	FieldWindow      = "window"
	FieldAttempt     = "attempt"
	FieldQueueLength = "queueLength"
	FieldCallCount   = "callCount"
	FieldSessionId   = "sessionId"
)
