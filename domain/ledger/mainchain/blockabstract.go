package mainchain

// BlockAbstract is the payload a node commits to the main chain oracle on
// behalf of one of its own blocks: enough to let the oracle, and later
// anyone consulting it, identify which block a commitment covers.
type BlockAbstract struct {
	BlockNumber int
	OwnerID     int
	Digest      []byte // merkle root or other opaque digest; unused by the mock

	abstractHash Hash
	committed    bool
}

// NewBlockAbstract creates an abstract for the given block, not yet
// committed.
func NewBlockAbstract(blockNumber, ownerID int, digest []byte) *BlockAbstract {
	return &BlockAbstract{BlockNumber: blockNumber, OwnerID: ownerID, Digest: digest}
}

// AbstractHash returns the hash assigned by the oracle at commit time. It
// is the zero Hash until SetAbstractHash has been called.
func (a *BlockAbstract) AbstractHash() Hash {
	return a.abstractHash
}

// SetAbstractHash records the hash the oracle assigned to this abstract.
// Called by MainChain implementations from CommitAbstract.
func (a *BlockAbstract) SetAbstractHash(hash Hash) {
	a.abstractHash = hash
	a.committed = true
}

// Committed reports whether this abstract has been committed yet.
func (a *BlockAbstract) Committed() bool {
	return a.committed
}
