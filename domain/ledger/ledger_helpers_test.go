package ledger

import (
	"testing"

	"github.com/distledger/ledgernode/domain/ledger/mainchain"
)

func newTestOracle() *mainchain.Mock {
	return mainchain.NewMock()
}

// commitBlock commits block's abstract to oracle and records the resulting
// hash on block, mirroring what a node's own block-sealing path does after
// a successful main chain commit.
func commitBlock(t *testing.T, oracle *mainchain.Mock, block *Block) {
	t.Helper()
	abs := mainchain.NewBlockAbstract(block.Number(), block.Owner().ID(), nil)
	hash := oracle.CommitAbstract(abs)
	block.SetAbstractHash(hash)
}
