package mainchain

import "testing"

func TestMockHashDependsOnlyOnBlockNumberAndOwnerID(t *testing.T) {
	mock := NewMock()
	abs1 := NewBlockAbstract(3, 7, []byte("first digest"))
	abs2 := NewBlockAbstract(3, 7, []byte("completely different digest"))

	h1 := mock.CommitAbstract(abs1)
	h2 := HashFromInts(3, 7)
	if h1 != h2 {
		t.Errorf("CommitAbstract: hash depends on digest, got %s want %s", h1, h2)
	}

	mock2 := NewMock()
	h3 := mock2.CommitAbstract(abs2)
	if h1 != h3 {
		t.Errorf("CommitAbstract: expected identical hashes for the same (blockNumber, ownerID), got %s and %s", h1, h3)
	}
}

func TestMockIsPresentOnceCommittedAlwaysAfter(t *testing.T) {
	mock := NewMock()
	abs := NewBlockAbstract(1, 2, nil)

	hash := HashFromInts(1, 2)
	if mock.IsPresent(hash) {
		t.Errorf("IsPresent: expected false before commit")
	}

	mock.CommitAbstract(abs)
	if !mock.IsPresent(hash) {
		t.Errorf("IsPresent: expected true immediately after commit")
	}
	if !abs.Committed() {
		t.Errorf("Committed: expected true after CommitAbstract")
	}

	if !mock.IsPresent(hash) {
		t.Errorf("IsPresent: expected a committed abstract to remain present")
	}
}

func TestMockCurrentHeightIncrementsPerCommit(t *testing.T) {
	mock := NewMock()
	if mock.CurrentHeight() != 0 {
		t.Errorf("CurrentHeight: got %d, want 0 before any commit", mock.CurrentHeight())
	}

	mock.CommitAbstract(NewBlockAbstract(0, 1, nil))
	mock.CommitAbstract(NewBlockAbstract(1, 1, nil))

	if mock.CurrentHeight() != 2 {
		t.Errorf("CurrentHeight: got %d, want 2 after two commits", mock.CurrentHeight())
	}
}
