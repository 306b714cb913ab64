package proof

import "github.com/distledger/ledgernode/domain/ledger"

// appendChains and appendChains2 compute, given a transaction and its
// receiver, which chains' update segments must ride along in the proof.
// Both are the same recursive closure walk over the transaction's
// transitive sources, differing only in which meta-knowledge cutoff prunes
// an already-known chain and how a chain that's visited more than once is
// merged into the result — so both are implemented here on top of one
// generic walk, parameterised by those two choices.

// AppendChains computes the set of nodes whose chains are not yet known to
// receiver, using firstUnknownBlockNumber as the cutoff. nrOfNodes bounds
// the walk: once the accumulator holds nrOfNodes-1 entries (every other
// node in the network) it cannot grow further, so the walk stops
// recursing any deeper.
func AppendChains(nrOfNodes int, tx *ledger.Transaction, receiver *ledger.Node, metaKnowledge *ledger.MetaKnowledge) map[int]*ledger.Node {
	nodes := make(map[int]*ledger.Node)
	merged := make(map[int]int)
	closureWalk(nrOfNodes, tx, receiver, metaKnowledge.FirstUnknownBlockNumber, merged, nodes)
	return nodes
}

// AppendChains2 computes, for every node whose chain must ride along, the
// highest block number of that chain actually referenced by the proof,
// using lastKnownBlockNumber as the cutoff and merging with max so a chain
// reached through two different source paths keeps the higher bound.
func AppendChains2(nrOfNodes int, tx *ledger.Transaction, receiver *ledger.Node, metaKnowledge *ledger.MetaKnowledge) map[int]int {
	nodes := make(map[int]*ledger.Node)
	merged := make(map[int]int)
	closureWalk(nrOfNodes, tx, receiver, metaKnowledge.LastKnownBlockNumber, merged, nodes)
	return merged
}

// closureWalk is not guaranteed to terminate if the transitive source graph
// contains a cycle (a transaction that is, through some chain of sources,
// its own ancestor) — see SPEC_FULL.md §9. The identity model does not
// prevent constructing such a graph; it is the caller's responsibility not
// to feed one in.
func closureWalk(nrOfNodes int, tx *ledger.Transaction, receiver *ledger.Node, cutoff func(*ledger.Node) int, merged map[int]int, nodes map[int]*ledger.Node) {
	owner := tx.Sender()
	if owner == nil || owner.Equal(receiver) {
		return
	}
	if !tx.HasBlockNumber() {
		return
	}

	bn := tx.BlockNumber()
	if cutoff(owner) >= bn {
		return
	}

	if existing, ok := merged[owner.ID()]; !ok || bn > existing {
		merged[owner.ID()] = bn
	}
	nodes[owner.ID()] = owner

	if len(nodes) >= nrOfNodes-1 {
		return
	}

	for _, source := range tx.Sources() {
		closureWalk(nrOfNodes, source, receiver, cutoff, merged, nodes)
	}
}

// BuildChainUpdates runs the closure walk and, for every node it names,
// slices that node's local chain from the receiver's first-unknown block
// number through the highest block number the walk actually referenced —
// the segment the sender must bundle into the proof for this transaction.
func BuildChainUpdates(nrOfNodes int, tx *ledger.Transaction, receiver *ledger.Node, metaKnowledge *ledger.MetaKnowledge) map[int][]*ledger.Block {
	highest := AppendChains2(nrOfNodes, tx, receiver, metaKnowledge)

	updates := make(map[int][]*ledger.Block, len(highest))
	for ownerID, hi := range highest {
		owner := findOwner(tx, ownerID)
		if owner == nil {
			continue
		}
		from := metaKnowledge.FirstUnknownBlockNumber(owner)
		var blocks []*ledger.Block
		for n := from; n <= hi; n++ {
			if b := owner.Chain().Block(n); b != nil {
				blocks = append(blocks, b)
			}
		}
		if len(blocks) > 0 {
			updates[ownerID] = blocks
		}
	}
	return updates
}

// findOwner retrieves the live *ledger.Node for ownerID by walking the same
// transitive source graph the closure walk traversed, since the closure
// walk itself only ever records ids.
func findOwner(tx *ledger.Transaction, ownerID int) *ledger.Node {
	if tx.Sender() != nil && tx.Sender().ID() == ownerID {
		return tx.Sender()
	}
	for _, source := range tx.Sources() {
		if owner := findOwner(source, ownerID); owner != nil {
			return owner
		}
	}
	return nil
}
