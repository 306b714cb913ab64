package proof

import (
	"testing"

	"github.com/distledger/ledgernode/domain/ledger"
	"github.com/distledger/ledgernode/domain/proof/proofvalidation"
)

func TestDecodeRelinksContiguousUpdateOntoLocalPredecessor(t *testing.T) {
	store, oracle, nodes := newTestNetwork(t, 2, 0)
	a := nodes[1]

	genesis := ledger.NewBlock(0, a, nil)
	if err := a.Chain().Append(genesis); err != nil {
		t.Fatalf("Append: %s", err)
	}
	commitBlock(t, oracle, genesis)

	wire := &WireProof{
		TransactionSenderID:    a.ID(),
		TransactionBlockNumber: 1,
		TransactionNumber:      0,
		ChainUpdates: map[int][]WireBlock{
			a.ID(): {
				{
					Number:  1,
					OwnerID: a.ID(),
					Transactions: []WireTransaction{
						{ID: 0, SenderID: -1, ReceiverID: a.ID(), BlockNumber: 1},
					},
				},
			},
		},
	}

	p, err := Decode(store, wire)
	if err != nil {
		t.Fatalf("Decode: %s", err)
	}

	updated := p.ChainUpdates()[a.ID()]
	if len(updated) != 1 {
		t.Fatalf("Decode: expected 1 decoded block for A, got %d", len(updated))
	}
	block := updated[0]
	if block.PreviousBlock() != genesis {
		t.Errorf("Decode: expected block 1's predecessor to be the locally known genesis block")
	}
}

func TestDecodeFailsWhenLocalPredecessorIsMissing(t *testing.T) {
	store, _, nodes := newTestNetwork(t, 2, 0)
	a := nodes[1]

	wire := &WireProof{
		TransactionSenderID:    a.ID(),
		TransactionBlockNumber: 1,
		TransactionNumber:      0,
		ChainUpdates: map[int][]WireBlock{
			a.ID(): {
				{
					Number:  1,
					OwnerID: a.ID(),
					Transactions: []WireTransaction{
						{ID: 0, SenderID: -1, ReceiverID: a.ID(), BlockNumber: 1},
					},
				},
			},
		},
	}

	_, err := Decode(store, wire)
	if !proofvalidation.Is(err, proofvalidation.KindDecodeIO) {
		t.Errorf("Decode: expected KindDecodeIO for a missing local predecessor, got %v", err)
	}
}

func TestDecodeResolvesSourceFromWithinTheSameProof(t *testing.T) {
	store, _, nodes := newTestNetwork(t, 3, 0)
	c, a := nodes[2], nodes[1]

	wire := &WireProof{
		TransactionSenderID:    a.ID(),
		TransactionBlockNumber: 0,
		TransactionNumber:      1,
		ChainUpdates: map[int][]WireBlock{
			c.ID(): {
				{
					Number:  0,
					OwnerID: c.ID(),
					Transactions: []WireTransaction{
						{ID: 0, SenderID: -1, ReceiverID: c.ID(), BlockNumber: 0},
					},
				},
			},
			a.ID(): {
				{
					Number:  0,
					OwnerID: a.ID(),
					Transactions: []WireTransaction{
						{
							ID: 1, SenderID: c.ID(), ReceiverID: a.ID(), BlockNumber: 0,
							Sources: []ledger.SourceRef{{OwnerID: c.ID(), BlockNumber: 0, ID: 0}},
						},
					},
				},
			},
		},
	}

	p, err := Decode(store, wire)
	if err != nil {
		t.Fatalf("Decode: %s", err)
	}

	tx := p.Transaction()
	if len(tx.Sources()) != 1 {
		t.Fatalf("Decode: expected the proven transaction to have 1 resolved source, got %d", len(tx.Sources()))
	}
	source := tx.Sources()[0]
	if source.ID() != 0 || !source.Receiver().Equal(c) {
		t.Errorf("Decode: resolved source does not match the proof's own block for C")
	}
}

func TestDecodeFailsWhenSourceBlockIsUnknown(t *testing.T) {
	store, _, nodes := newTestNetwork(t, 3, 0)
	c, a := nodes[2], nodes[1]

	wire := &WireProof{
		TransactionSenderID:    a.ID(),
		TransactionBlockNumber: 0,
		TransactionNumber:      1,
		ChainUpdates: map[int][]WireBlock{
			a.ID(): {
				{
					Number:  0,
					OwnerID: a.ID(),
					Transactions: []WireTransaction{
						{
							ID: 1, SenderID: c.ID(), ReceiverID: a.ID(), BlockNumber: 0,
							Sources: []ledger.SourceRef{{OwnerID: c.ID(), BlockNumber: 0, ID: 0}},
						},
					},
				},
			},
		},
	}

	_, err := Decode(store, wire)
	if !proofvalidation.Is(err, proofvalidation.KindDecodeIO) {
		t.Errorf("Decode: expected KindDecodeIO for an unresolvable source block, got %v", err)
	}
}

func TestDecodeFailsForUnknownNode(t *testing.T) {
	store, _, nodes := newTestNetwork(t, 1, 0)
	a := nodes[0]

	wire := &WireProof{
		TransactionSenderID:    99,
		TransactionBlockNumber: 0,
		TransactionNumber:      0,
		ChainUpdates: map[int][]WireBlock{
			a.ID(): {
				{Number: 0, OwnerID: a.ID()},
			},
		},
	}

	_, err := Decode(store, wire)
	if !proofvalidation.Is(err, proofvalidation.KindUnknownNode) {
		t.Errorf("Decode: expected KindUnknownNode for an unregistered sender id, got %v", err)
	}
}
