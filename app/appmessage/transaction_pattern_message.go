package appmessage

import (
	"github.com/distledger/ledgernode/domain/ledger"
)

// TransactionPatternMessage names the simulated sending pattern a node
// should drive its transaction generator with. The generator itself is a
// minimal stub outside the scope of this repository; this message only
// needs to be decodable and dispatchable.
type TransactionPatternMessage struct {
	PatternName string
}

func (m *TransactionPatternMessage) Command() MessageCommand {
	return CmdTransactionPattern
}

// Handle only logs receipt — there is no transaction pattern engine here
// to hand the pattern off to.
func (m *TransactionPatternMessage) Handle(localStore ledger.LocalStore) error {
	log.Debugf("received transaction pattern %q for node %d", m.PatternName, localStore.Self().ID())
	return nil
}
