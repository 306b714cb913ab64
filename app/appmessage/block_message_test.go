package appmessage

import (
	"testing"

	"github.com/distledger/ledgernode/domain/ledger"
	"github.com/distledger/ledgernode/domain/ledger/mainchain"
	"github.com/distledger/ledgernode/domain/proof"
)

func TestBlockMessageCommandIsCmdBlock(t *testing.T) {
	msg := &BlockMessage{}
	if msg.Command() != CmdBlock {
		t.Errorf("Command: got %s, want %s", msg.Command(), CmdBlock)
	}
}

func TestBlockMessageHandleAppendsAndResolvesKnownSources(t *testing.T) {
	store := ledger.NewInMemoryStore(0, mainchain.NewMock())
	a := store.GetOrCreateNode(1)
	c := store.GetOrCreateNode(2)

	genesisC := ledger.NewTransaction(0, nil, c, 10, 0)
	genesisC.Seal(0)
	blockC0 := ledger.NewBlock(0, c, []*ledger.Transaction{genesisC})
	if err := c.Chain().Append(blockC0); err != nil {
		t.Fatalf("Append: %s", err)
	}

	msg := &BlockMessage{
		Number:  0,
		OwnerID: a.ID(),
		Transactions: []proof.WireTransaction{
			{
				ID: 0, SenderID: c.ID(), ReceiverID: a.ID(), BlockNumber: 0, Amount: 10,
				Sources: []ledger.SourceRef{{OwnerID: c.ID(), BlockNumber: 0, ID: 0}},
			},
		},
	}

	if err := msg.Handle(store); err != nil {
		t.Fatalf("Handle: %s", err)
	}

	block := a.Chain().Block(0)
	if block == nil {
		t.Fatalf("Handle: expected block 0 to be appended to A's chain")
	}
	tx := block.Transaction(0)
	if tx == nil {
		t.Fatalf("Handle: expected the block's transaction to be present")
	}
	if len(tx.Sources()) != 1 || tx.Sources()[0] != genesisC {
		t.Errorf("Handle: expected the transaction's source to resolve to C's locally known genesis transaction")
	}
}

func TestBlockMessageHandleSkipsUnresolvableSourceWithoutFailing(t *testing.T) {
	store := ledger.NewInMemoryStore(0, mainchain.NewMock())
	a := store.GetOrCreateNode(1)
	c := store.GetOrCreateNode(2)

	msg := &BlockMessage{
		Number:  0,
		OwnerID: a.ID(),
		Transactions: []proof.WireTransaction{
			{
				ID: 0, SenderID: c.ID(), ReceiverID: a.ID(), BlockNumber: 0, Amount: 10,
				Sources: []ledger.SourceRef{{OwnerID: c.ID(), BlockNumber: 0, ID: 0}},
			},
		},
	}

	if err := msg.Handle(store); err != nil {
		t.Fatalf("Handle: %s", err)
	}
	tx := a.Chain().Block(0).Transaction(0)
	if len(tx.Sources()) != 0 {
		t.Errorf("Handle: expected an unresolvable source to be skipped, not treated as fatal")
	}
}

func TestBlockMessageHandleFailsForUnknownOwner(t *testing.T) {
	store := ledger.NewInMemoryStore(0, mainchain.NewMock())
	msg := &BlockMessage{Number: 0, OwnerID: 99}
	if err := msg.Handle(store); err == nil {
		t.Errorf("Handle: expected an error for an unregistered owner id")
	}
}
