package matcher

import (
	"github.com/NilFoundation/l1oracle/nil/internal/felt"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l1"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/l2"
)

// Matches reports whether the L1 event is the message that produced the L2 handler transaction.
// Values are compared as integers, transaction hashes are not compared since L1 and L2 hash differently.
func Matches(event *l1.Event, tx *l2.HandlerTx) bool {
	if event == nil || !tx.IsL1Handler() {
		return false
	}

	return event.ContractAddress == tx.ContractAddress &&
		event.EntryPointSelector == tx.EntryPointSelector &&
		event.Nonce == tx.Nonce &&
		felt.EqualSlices(event.Calldata, tx.Calldata)
}
