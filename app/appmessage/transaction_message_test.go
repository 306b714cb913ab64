package appmessage

import (
	"testing"

	"github.com/distledger/ledgernode/domain/ledger"
	"github.com/distledger/ledgernode/domain/ledger/mainchain"
)

func TestTransactionMessageHandleSealsIntoSendersChain(t *testing.T) {
	store := ledger.NewInMemoryStore(0, mainchain.NewMock())
	a := store.GetOrCreateNode(1)

	msg := &TransactionMessage{
		ID: 0, SenderID: a.ID(), ReceiverID: store.Self().ID(), BlockNumber: 0, Amount: 10,
	}
	if err := msg.Handle(store); err != nil {
		t.Fatalf("Handle: %s", err)
	}

	block := a.Chain().Block(0)
	if block == nil {
		t.Fatalf("Handle: expected a block 0 to be sealed into A's chain")
	}
	if block.Transaction(0) == nil {
		t.Errorf("Handle: expected the transaction to be present in the sealed block")
	}
}

func TestTransactionMessageHandleGenesisDoesNotTouchAnyChain(t *testing.T) {
	store := ledger.NewInMemoryStore(0, mainchain.NewMock())
	receiver := store.GetOrCreateNode(1)

	msg := &TransactionMessage{
		ID: 0, SenderID: -1, ReceiverID: receiver.ID(), BlockNumber: 0, Amount: 10,
	}
	if err := msg.Handle(store); err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if receiver.Chain().Height() != 0 {
		t.Errorf("Handle: expected a genesis transaction message not to seal any block")
	}
}

func TestTransactionMessageHandleIsIdempotentForAnAlreadySealedBlockNumber(t *testing.T) {
	store := ledger.NewInMemoryStore(0, mainchain.NewMock())
	a := store.GetOrCreateNode(1)

	first := ledger.NewBlock(0, a, nil)
	if err := a.Chain().Append(first); err != nil {
		t.Fatalf("Append: %s", err)
	}

	msg := &TransactionMessage{ID: 0, SenderID: a.ID(), ReceiverID: store.Self().ID(), BlockNumber: 0}
	if err := msg.Handle(store); err != nil {
		t.Fatalf("Handle: %s", err)
	}
	if a.Chain().Height() != 1 {
		t.Errorf("Handle: expected no new block when block 0 is already present, got height %d", a.Chain().Height())
	}
}

func TestTransactionMessageHandleFailsForUnknownReceiver(t *testing.T) {
	store := ledger.NewInMemoryStore(0, mainchain.NewMock())
	msg := &TransactionMessage{ID: 0, SenderID: -1, ReceiverID: 99}
	if err := msg.Handle(store); err == nil {
		t.Errorf("Handle: expected an error for an unregistered receiver")
	}
}
