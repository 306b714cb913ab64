package ledger

import "sync"

// MetaKnowledge tracks, for a single owning node, the highest block number it
// has already learned from each peer. It backs the appendChains/appendChains2
// closure algorithms in domain/proof, which use it to avoid re-bundling chain
// segments the receiver already has.
type MetaKnowledge struct {
	mtx               sync.RWMutex
	firstUnknownBlock map[int]int // peer id -> first block number not yet known
	lastKnownBlock    map[int]int // peer id -> last block number known
}

// NewMetaKnowledge creates an empty MetaKnowledge table.
func NewMetaKnowledge() *MetaKnowledge {
	return &MetaKnowledge{
		firstUnknownBlock: make(map[int]int),
		lastKnownBlock:    make(map[int]int),
	}
}

// FirstUnknownBlockNumber returns the lowest block number of peer's chain not
// yet known, or 0 if nothing is known about peer at all.
func (mk *MetaKnowledge) FirstUnknownBlockNumber(peer *Node) int {
	mk.mtx.RLock()
	defer mk.mtx.RUnlock()
	return mk.firstUnknownBlock[peer.ID()]
}

// LastKnownBlockNumber returns the highest block number of peer's chain known
// so far, or -1 if nothing is known about peer at all.
func (mk *MetaKnowledge) LastKnownBlockNumber(peer *Node) int {
	mk.mtx.RLock()
	defer mk.mtx.RUnlock()
	if v, ok := mk.lastKnownBlock[peer.ID()]; ok {
		return v
	}
	return -1
}

// Update merges the block numbers learned from a successfully applied set of
// chain updates into this table. For owner, the last-known number is raised
// to highestBlockNumber and the first-unknown number to highestBlockNumber+1;
// neither is ever lowered.
func (mk *MetaKnowledge) Update(owner *Node, highestBlockNumber int) {
	mk.mtx.Lock()
	defer mk.mtx.Unlock()

	id := owner.ID()
	if highestBlockNumber+1 > mk.firstUnknownBlock[id] {
		mk.firstUnknownBlock[id] = highestBlockNumber + 1
	}
	if cur, ok := mk.lastKnownBlock[id]; !ok || highestBlockNumber > cur {
		mk.lastKnownBlock[id] = highestBlockNumber
	}
}
