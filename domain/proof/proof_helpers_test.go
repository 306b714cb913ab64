package proof

import (
	"testing"

	"github.com/distledger/ledgernode/domain/ledger"
	"github.com/distledger/ledgernode/domain/ledger/mainchain"
)

// newTestNetwork builds a LocalStore and n fully registered Node instances,
// backed by a shared mainchain.Mock oracle, with selfID being the id of the
// node acting as the store's own.
func newTestNetwork(t *testing.T, n, selfID int) (*ledger.InMemoryStore, *mainchain.Mock, []*ledger.Node) {
	t.Helper()
	oracle := mainchain.NewMock()
	store := ledger.NewInMemoryStore(selfID, oracle)

	nodes := make([]*ledger.Node, n)
	for i := 0; i < n; i++ {
		nodes[i] = store.GetOrCreateNode(i)
	}
	return store, oracle, nodes
}

// commitBlock commits block's abstract to oracle on behalf of its owner.
func commitBlock(t *testing.T, oracle *mainchain.Mock, block *ledger.Block) {
	t.Helper()
	abs := mainchain.NewBlockAbstract(block.Number(), block.Owner().ID(), nil)
	hash := oracle.CommitAbstract(abs)
	block.SetAbstractHash(hash)
}

// sealSingle seals tx into a new block appended to sender's chain at the
// chain's current height, and returns that block.
func sealSingle(t *testing.T, sender *ledger.Node, tx *ledger.Transaction) *ledger.Block {
	t.Helper()
	number := sender.Chain().Height()
	tx.Seal(number)
	block := ledger.NewBlock(number, sender, []*ledger.Transaction{tx})
	if err := sender.Chain().Append(block); err != nil {
		t.Fatalf("Append: %s", err)
	}
	return block
}
