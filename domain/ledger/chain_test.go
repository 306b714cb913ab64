package ledger

import "testing"

func TestChainUpdateRejectsNonContiguousBlocks(t *testing.T) {
	owner := NewNode(1)
	genesis := NewBlock(0, owner, nil)
	if err := owner.Chain().Append(genesis); err != nil {
		t.Fatalf("Append genesis: %s", err)
	}

	skipped := NewBlock(2, owner, nil)
	if err := owner.Chain().Append(skipped); err == nil {
		t.Errorf("Append: expected an error appending a non-contiguous block")
	}
	if owner.Chain().Height() != 1 {
		t.Errorf("Append: chain height changed after a rejected update, got %d", owner.Chain().Height())
	}
}

func TestChainUpdateRejectsBlockFromAnotherOwner(t *testing.T) {
	owner := NewNode(1)
	intruder := NewNode(2)
	foreign := NewBlock(0, intruder, nil)

	if err := owner.Chain().Append(foreign); err == nil {
		t.Errorf("Append: expected an error appending a block owned by another node")
	}
}

func TestChainUpdateAppendsContiguousRun(t *testing.T) {
	owner := NewNode(1)
	blocks := []*Block{
		NewBlock(0, owner, nil),
		NewBlock(1, owner, nil),
		NewBlock(2, owner, nil),
	}
	if err := owner.Chain().Update(blocks); err != nil {
		t.Fatalf("Update: %s", err)
	}
	if owner.Chain().Height() != 3 {
		t.Errorf("Height: got %d, want 3", owner.Chain().Height())
	}
	if owner.Chain().LastBlock().Number() != 2 {
		t.Errorf("LastBlock: got block %d, want 2", owner.Chain().LastBlock().Number())
	}
}

func TestChainUpdateReplacesUncommittedTail(t *testing.T) {
	owner := NewNode(1)
	if err := owner.Chain().Update([]*Block{
		NewBlock(0, owner, nil),
		NewBlock(1, owner, nil),
		NewBlock(2, owner, nil),
	}); err != nil {
		t.Fatalf("Update: %s", err)
	}
	original1 := owner.Chain().Block(1)

	replacement := []*Block{
		NewBlock(1, owner, nil),
		NewBlock(2, owner, nil),
		NewBlock(3, owner, nil),
	}
	if err := owner.Chain().Update(replacement); err != nil {
		t.Fatalf("Update: expected a tail replacement starting below the current height to succeed, got %s", err)
	}

	if owner.Chain().Height() != 4 {
		t.Errorf("Height: got %d, want 4", owner.Chain().Height())
	}
	if owner.Chain().Block(1) == original1 {
		t.Errorf("Block(1): expected the replacement block, got the original uncommitted one back")
	}
	if owner.Chain().Block(1) != replacement[0] {
		t.Errorf("Block(1): expected the replacement's own block 1")
	}
	if owner.Chain().LastBlock().Number() != 3 {
		t.Errorf("LastBlock: got block %d, want 3", owner.Chain().LastBlock().Number())
	}
}

func TestChainUpdateRejectsStartAboveCurrentHeight(t *testing.T) {
	owner := NewNode(1)
	if err := owner.Chain().Append(NewBlock(0, owner, nil)); err != nil {
		t.Fatalf("Append: %s", err)
	}

	skipped := []*Block{NewBlock(2, owner, nil), NewBlock(3, owner, nil)}
	if err := owner.Chain().Update(skipped); err == nil {
		t.Errorf("Update: expected an error for an update starting above the current height")
	}
	if owner.Chain().Height() != 1 {
		t.Errorf("Update: chain height changed after a rejected update, got %d", owner.Chain().Height())
	}
}

func TestChainLastCommittedNumber(t *testing.T) {
	owner := NewNode(1)
	oracle := newTestOracle()

	blocks := []*Block{
		NewBlock(0, owner, nil),
		NewBlock(1, owner, nil),
		NewBlock(2, owner, nil),
	}
	if err := owner.Chain().Update(blocks); err != nil {
		t.Fatalf("Update: %s", err)
	}

	if got := owner.Chain().LastCommittedNumber(oracle); got != -1 {
		t.Errorf("LastCommittedNumber: got %d, want -1 before any commit", got)
	}

	commitBlock(t, oracle, blocks[1])

	if got := owner.Chain().LastCommittedNumber(oracle); got != 1 {
		t.Errorf("LastCommittedNumber: got %d, want 1", got)
	}
}
