package mainchain

// MainChain is the external consensus backend proof verification anchors
// against: "is this abstract committed?" plus a height query. Go has no
// method overloading, so the original interface's two isPresent overloads
// (by hash, and by block) become one primitive here — IsPresent, on the
// hash alone. The block-level convenience ("is this block, or a later one
// in its chain, committed") is built on top of it at the ledger layer
// (Block.IsOnMainChain), which is where the chain traversal naturally
// lives without pulling block types into this package.
type MainChain interface {
	// Init prepares the oracle for use.
	Init() error
	// CommitAbstract submits abs for commitment and returns the hash the
	// oracle assigned to it. abs is mutated in place with that hash.
	CommitAbstract(abs *BlockAbstract) Hash
	// IsPresent reports whether hash has been committed.
	IsPresent(hash Hash) bool
	// CurrentHeight returns the number of abstracts committed so far.
	CurrentHeight() int64
	// Stop releases any resources held by the oracle.
	Stop() error
}
