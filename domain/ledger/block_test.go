package ledger

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestBlockEqualComparesOwnerAndPredecessorRecursively(t *testing.T) {
	owner := NewNode(1)
	other := NewNode(2)

	genesis := NewBlock(0, owner, nil)
	second := NewBlockWithPrevious(1, genesis, owner, nil)

	genesisCopy := NewBlock(0, owner, nil)
	secondCopy := NewBlockWithPrevious(1, genesisCopy, owner, nil)

	if !second.Equal(secondCopy) {
		t.Errorf("Equal: expected equal blocks - got %v, want %v", spew.Sdump(second), spew.Sdump(secondCopy))
	}

	secondWrongOwner := NewBlockWithPrevious(1, genesis, other, nil)
	if second.Equal(secondWrongOwner) {
		t.Errorf("Equal: blocks with different owners compared equal")
	}

	secondNoPrevious := NewBlock(1, owner, nil)
	if second.Equal(secondNoPrevious) {
		t.Errorf("Equal: block with predecessor compared equal to one without")
	}
}

func TestBlockHashDependsOnlyOnNumberAndOwner(t *testing.T) {
	owner := NewNode(1)
	a := NewBlock(5, owner, []*Transaction{NewTransaction(0, nil, owner, 10, 0)})
	b := NewBlock(5, owner, nil)

	if a.Hash() != b.Hash() {
		t.Errorf("Hash: expected equal hashes for same (number, owner), got %d and %d", a.Hash(), b.Hash())
	}

	c := NewBlock(6, owner, nil)
	if a.Hash() == c.Hash() {
		t.Errorf("Hash: expected different hashes for different block numbers")
	}
}

func TestBlockContainsTransactionUsesTransactionEquality(t *testing.T) {
	sender := NewNode(1)
	receiver := NewNode(2)

	tx := NewTransaction(0, sender, receiver, 10, 0)
	tx.Seal(3)
	block := NewBlock(3, sender, []*Transaction{tx})

	lookalike := NewTransaction(0, sender, receiver, 999, 999)
	lookalike.Seal(3)

	if !block.ContainsTransaction(lookalike) {
		t.Errorf("ContainsTransaction: expected a transaction with matching (id, sender, blockNumber) to be found")
	}

	other := NewTransaction(1, sender, receiver, 10, 0)
	other.Seal(3)
	if block.ContainsTransaction(other) {
		t.Errorf("ContainsTransaction: transaction with a different id should not be found")
	}
}

func TestBlockIsOnMainChainViaLaterCommittedBlock(t *testing.T) {
	owner := NewNode(1)
	oracle := newTestOracle()

	genesis := NewBlock(0, owner, nil)
	second := NewBlockWithPrevious(1, genesis, owner, nil)
	if err := owner.Chain().Update([]*Block{genesis, second}); err != nil {
		t.Fatalf("Update failed: %s", err)
	}

	commitBlock(t, oracle, second)

	if genesis.IsDirectlyCommitted(oracle) {
		t.Errorf("IsDirectlyCommitted: genesis block should not be directly committed")
	}
	if !genesis.IsOnMainChain(oracle) {
		t.Errorf("IsOnMainChain: genesis should be covered by a later committed block")
	}
	if next := genesis.NextCommittedBlock(oracle); next == nil || next.Number() != 1 {
		t.Errorf("NextCommittedBlock: expected block 1, got %v", spew.Sdump(next))
	}
}
