package protocol

import "sync"

// cntMutex is a mutex paired with a count of goroutines currently waiting
// on or holding it, so the owning map entry can be cleaned up once nobody
// needs it any more.
type cntMutex struct {
	sync.Mutex
	cnt int
}

// NodeMutex hands out one mutex per node id. ProofWorkerPool uses it so
// that proofs touching the same owner's chain are decoded, verified and
// applied one at a time, while proofs on disjoint owners run in parallel
// (getChainView inside one Proof is guarded by the Proof's own mutex) — the same
// technique as the teacher pack's per-hash mutex idiom, keyed on a plain
// int since node identity here is just a small integer.
type NodeMutex struct {
	mapMtx  sync.Mutex
	mutexes map[int]*cntMutex
}

// NewNodeMutex creates an empty NodeMutex.
func NewNodeMutex() *NodeMutex {
	return &NodeMutex{mutexes: make(map[int]*cntMutex)}
}

// Lock acquires the mutex for nodeID, blocking if another goroutine
// already holds it.
func (m *NodeMutex) Lock(nodeID int) {
	m.mapMtx.Lock()
	mtx, ok := m.mutexes[nodeID]
	if ok {
		mtx.cnt++
	} else {
		mtx = &cntMutex{cnt: 1}
		m.mutexes[nodeID] = mtx
	}
	m.mapMtx.Unlock()

	mtx.Lock()
}

// Unlock releases the mutex for nodeID. It panics if no goroutine holds or
// is waiting on nodeID's mutex.
func (m *NodeMutex) Unlock(nodeID int) {
	m.mapMtx.Lock()
	mtx, ok := m.mutexes[nodeID]
	if !ok {
		m.mapMtx.Unlock()
		panic("node_mutex: unlock of unlocked node id")
	}
	mtx.cnt--
	if mtx.cnt == 0 {
		delete(m.mutexes, nodeID)
	}
	m.mapMtx.Unlock()

	mtx.Unlock()
}
