package appmessage

import (
	"github.com/distledger/ledgernode/domain/ledger"
	"github.com/distledger/ledgernode/domain/proof"
)

// BlockMessage carries a single standalone block, number, owner and
// transactions, with sources again encoded as SourceRef tuples.
type BlockMessage struct {
	Number       int
	OwnerID      int
	Transactions []proof.WireTransaction
}

func (m *BlockMessage) Command() MessageCommand {
	return CmdBlock
}

// Handle appends the block to its owner's chain, resolving and relinking
// transaction sources the same way a proof's decode pass would for a
// single block rather than a whole bundle.
func (m *BlockMessage) Handle(localStore ledger.LocalStore) error {
	owner, err := localStore.GetNode(m.OwnerID)
	if err != nil {
		return err
	}

	transactions := make([]*ledger.Transaction, 0, len(m.Transactions))
	for _, wt := range m.Transactions {
		var sender *ledger.Node
		if wt.SenderID >= 0 {
			s, err := localStore.GetNode(wt.SenderID)
			if err != nil {
				return err
			}
			sender = s
		}
		receiver, err := localStore.GetNode(wt.ReceiverID)
		if err != nil {
			return err
		}

		tx := ledger.NewTransaction(wt.ID, sender, receiver, wt.Amount, wt.Remainder)
		tx.Seal(wt.BlockNumber)
		tx.SetSourceRefs(wt.Sources)
		transactions = append(transactions, tx)
	}

	block := ledger.NewBlock(m.Number, owner, transactions)

	for _, tx := range block.Transactions() {
		for _, ref := range tx.SourceRefs() {
			sourceOwner, err := localStore.GetNode(ref.OwnerID)
			if err != nil {
				return err
			}
			sourceBlock := sourceOwner.Chain().Block(ref.BlockNumber)
			if sourceBlock == nil {
				continue
			}
			if source := sourceBlock.Transaction(ref.ID); source != nil {
				tx.AddSource(source)
			}
		}
	}

	return owner.Chain().Append(block)
}
