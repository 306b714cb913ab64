package ledger

import "github.com/distledger/ledgernode/domain/ledger/mainchain"

// Block is a numbered container of transactions belonging to a single
// owner's chain, with a back-reference to its predecessor. previousBlock may
// be nil for genesis, or for a freshly decoded block that has not yet been
// relinked by the proof decode pass.
type Block struct {
	number        int
	owner         *Node
	transactions  []*Transaction
	previousBlock *Block

	abstractHash    mainchain.Hash
	hasAbstractHash bool
}

// NewBlock creates a block with no predecessor set (genesis, or pending
// relink).
func NewBlock(number int, owner *Node, transactions []*Transaction) *Block {
	return &Block{number: number, owner: owner, transactions: transactions}
}

// NewBlockWithPrevious creates a block already linked to its predecessor.
func NewBlockWithPrevious(number int, previous *Block, owner *Node, transactions []*Transaction) *Block {
	return &Block{number: number, owner: owner, transactions: transactions, previousBlock: previous}
}

// Number returns the block's height within its owner's chain.
func (b *Block) Number() int {
	return b.number
}

// Owner returns the node this block belongs to.
func (b *Block) Owner() *Node {
	return b.owner
}

// Transactions returns the block's transactions in sealing order.
func (b *Block) Transactions() []*Transaction {
	return b.transactions
}

// PreviousBlock returns the block's predecessor, or nil if unset.
func (b *Block) PreviousBlock() *Block {
	return b.previousBlock
}

// SetPreviousBlock binds the block's back-reference. Used only by the proof
// decode relink pass (domain/proof).
func (b *Block) SetPreviousBlock(previous *Block) {
	b.previousBlock = previous
}

// Transaction returns the transaction with the given id within this block,
// or nil if it isn't present.
func (b *Block) Transaction(id int) *Transaction {
	for _, tx := range b.transactions {
		if tx.ID() == id {
			return tx
		}
	}
	return nil
}

// ContainsTransaction reports whether tx is present in this block, using the
// (blockNumber, sender, id)-scoped equality described in SPEC_FULL.md §9 —
// this intentionally mirrors the original source's actual (commented-as-
// imprecise) containment check rather than inventing stronger semantics.
func (b *Block) ContainsTransaction(tx *Transaction) bool {
	for _, candidate := range b.transactions {
		if candidate.Equal(tx) {
			return true
		}
	}
	return false
}

// Equal implements the Block equality contract from SPEC_FULL.md §3: same
// (number, owner, previousBlock, transactions). previousBlock is compared
// recursively, which is safe because chains are acyclic by construction.
func (b *Block) Equal(other *Block) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.number != other.number {
		return false
	}
	if !b.owner.Equal(other.owner) {
		return false
	}
	if b.previousBlock == nil {
		if other.previousBlock != nil {
			return false
		}
	} else if !b.previousBlock.Equal(other.previousBlock) {
		return false
	}
	if len(b.transactions) != len(other.transactions) {
		return false
	}
	for i, tx := range b.transactions {
		if !tx.Equal(other.transactions[i]) {
			return false
		}
	}
	return true
}

// Hash is a cheap identity used for set/map membership. It deliberately
// depends only on (number, owner) so that blocks can be hashed while their
// back-pointers are still being relinked during decode.
func (b *Block) Hash() uint64 {
	const prime = 31
	h := uint64(1)
	h = h*prime + uint64(b.number)
	h = h*prime + uint64(b.owner.ID())
	return h
}

// SetAbstractHash records the hash the main chain oracle assigned when this
// block's abstract was committed.
func (b *Block) SetAbstractHash(hash mainchain.Hash) {
	b.abstractHash = hash
	b.hasAbstractHash = true
}

// IsDirectlyCommitted reports whether this block's own abstract (as opposed
// to a later block's) has been committed to the main chain.
func (b *Block) IsDirectlyCommitted(chain mainchain.MainChain) bool {
	return b.hasAbstractHash && chain.IsPresent(b.abstractHash)
}

// NextCommittedBlock returns the least higher-numbered block in this
// block's chain whose abstract has been committed, or nil if none has.
func (b *Block) NextCommittedBlock(chain mainchain.MainChain) *Block {
	owned := b.owner.Chain()
	for n := b.number + 1; n < owned.Height(); n++ {
		candidate := owned.Block(n)
		if candidate != nil && candidate.IsDirectlyCommitted(chain) {
			return candidate
		}
	}
	return nil
}

// IsOnMainChain reports whether this block, or any later block in its
// chain, has been committed to the main chain.
func (b *Block) IsOnMainChain(chain mainchain.MainChain) bool {
	if b.IsDirectlyCommitted(chain) {
		return true
	}
	return b.NextCommittedBlock(chain) != nil
}
