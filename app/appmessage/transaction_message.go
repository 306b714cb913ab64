package appmessage

import (
	"github.com/distledger/ledgernode/domain/ledger"
)

// TransactionMessage carries a single transaction that is not part of a
// larger proof bundle — a node learning of a transaction with no sources
// it doesn't already have. Sources are encoded as SourceRef tuples rather
// than nested transactions, so a transaction message never needs to carry
// its own ancestry.
type TransactionMessage struct {
	ID          int
	SenderID    int // -1 for genesis
	ReceiverID  int
	BlockNumber int
	Amount      int64
	Remainder   int64
	Sources     []ledger.SourceRef
}

func (m *TransactionMessage) Command() MessageCommand {
	return CmdTransaction
}

// Handle resolves the message's sender/receiver against localStore and
// seals the transaction into the sender's local chain by appending a new
// block that holds only this transaction. Nothing is appended for a genesis
// transaction (no sender), nor when the sender's chain already has a block
// at the message's block number; Handle then returns nil. A transaction
// delivered on its own (outside a proof) carries no contested provenance
// to verify — it is trusted the way a node trusts its own just-sealed
// blocks.
func (m *TransactionMessage) Handle(localStore ledger.LocalStore) error {
	var sender *ledger.Node
	if m.SenderID >= 0 {
		n, err := localStore.GetNode(m.SenderID)
		if err != nil {
			return err
		}
		sender = n
	}

	receiver, err := localStore.GetNode(m.ReceiverID)
	if err != nil {
		return err
	}

	tx := ledger.NewTransaction(m.ID, sender, receiver, m.Amount, m.Remainder)
	tx.Seal(m.BlockNumber)
	tx.SetSourceRefs(m.Sources)

	if sender == nil {
		return nil
	}

	block := sender.Chain().Block(m.BlockNumber)
	if block == nil {
		block = ledger.NewBlock(m.BlockNumber, sender, []*ledger.Transaction{tx})
		return sender.Chain().Append(block)
	}
	return nil
}
