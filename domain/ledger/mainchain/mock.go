package mainchain

import "sync"

// Mock is a deterministic in-memory stand-in for a real consensus-backed
// main chain, equivalent to the original TendermintChainMock: every
// abstract it commits is reported present forever after, and the hash it
// assigns depends only on (blockNumber, ownerId), not on any actual
// content, so tests can predict commitment hashes without round-tripping
// through the oracle.
type Mock struct {
	mtx       sync.Mutex
	committed map[Hash]struct{}
	height    int64
}

// NewMock creates an empty Mock oracle.
func NewMock() *Mock {
	return &Mock{committed: make(map[Hash]struct{})}
}

func (m *Mock) Init() error {
	return nil
}

func (m *Mock) CommitAbstract(abs *BlockAbstract) Hash {
	hash := HashFromInts(abs.BlockNumber, abs.OwnerID)
	abs.SetAbstractHash(hash)

	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.committed[hash] = struct{}{}
	m.height++
	return hash
}

func (m *Mock) IsPresent(hash Hash) bool {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	_, ok := m.committed[hash]
	return ok
}

func (m *Mock) CurrentHeight() int64 {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return m.height
}

func (m *Mock) Stop() error {
	return nil
}
