package ledger

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/distledger/ledgernode/domain/ledger/mainchain"
)

// Chain is the append-only sequence of blocks owned by a single node. A
// Chain has exactly one writer at a time (the owner sealing its own new
// blocks, or a Proof's applyUpdates extending it on the owner's behalf);
// every read goes through mtx's read side, so a ChainView built while an
// Update is in flight never observes a half-appended tail.
type Chain struct {
	mtx    sync.RWMutex
	owner  *Node
	blocks []*Block
}

// NewChain creates an empty chain belonging to owner.
func NewChain(owner *Node) *Chain {
	return &Chain{owner: owner}
}

// Owner returns the node this chain belongs to.
func (c *Chain) Owner() *Node {
	return c.owner
}

// Height returns one past the highest block number currently stored, i.e.
// the number the next appended block would receive. An empty chain has
// height 0.
func (c *Chain) Height() int {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	return len(c.blocks)
}

// Block returns the block at the given number, or nil if it isn't present.
func (c *Chain) Block(number int) *Block {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	if number < 0 || number >= len(c.blocks) {
		return nil
	}
	return c.blocks[number]
}

// Blocks returns a snapshot of the chain's blocks in order, safe to read
// without further locking even if the chain is extended concurrently.
func (c *Chain) Blocks() []*Block {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	out := make([]*Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// LastBlock returns the highest-numbered block, or nil if the chain is
// empty.
func (c *Chain) LastBlock() *Block {
	c.mtx.RLock()
	defer c.mtx.RUnlock()
	if len(c.blocks) == 0 {
		return nil
	}
	return c.blocks[len(c.blocks)-1]
}

// Append adds a single contiguous block to the chain, as when the owner
// seals a transaction of its own rather than extending via a verified
// Proof.
func (c *Chain) Append(block *Block) error {
	return c.Update([]*Block{block})
}

// Update splices a contiguous run of new blocks onto the chain, starting
// at the first update's own number. It is the single entry point through
// which verified proof updates are applied; a non-contiguous run, or one
// starting above the chain's current height, leaves the chain untouched
// and returns an error. The caller (domain/proof's applyUpdates) is
// responsible for advancing the receiving node's meta-knowledge once
// Update succeeds — a Chain has no notion of which node is asking, so it
// cannot do that itself.
//
// A start number below the current height replaces the chain's
// uncommitted tail from that point on rather than appending past it —
// ChainView.computeValid already requires the update's first block to sit
// above the chain's last committed block before Verify ever lets a proof
// reach here, so this never discards committed history.
func (c *Chain) Update(updates []*Block) error {
	if len(updates) == 0 {
		return nil
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	start := updates[0].Number()
	if start < 0 || start > len(c.blocks) {
		return errors.Errorf("chain %d: update is not contiguous, expected a block at or below %d, got %d", c.owner.ID(), len(c.blocks), start)
	}

	expected := start
	for _, block := range updates {
		if block.Number() != expected {
			return errors.Errorf("chain %d: update is not contiguous, expected block %d, got %d", c.owner.ID(), expected, block.Number())
		}
		if !block.Owner().Equal(c.owner) {
			return errors.Errorf("chain %d: block owned by node %d does not belong here", c.owner.ID(), block.Owner().ID())
		}
		expected++
	}

	c.blocks = append(c.blocks[:start], updates...)
	return nil
}

// LastCommittedNumber returns the highest block number in this chain whose
// abstract has been directly committed to the main chain, or -1 if none
// has. Because commitment of a later block retroactively puts every
// earlier block "on the main chain" (Block.IsOnMainChain), this is also the
// boundary below which every block is considered committed.
func (c *Chain) LastCommittedNumber(oracle mainchain.MainChain) int {
	blocks := c.Blocks()
	for i := len(blocks) - 1; i >= 0; i-- {
		if blocks[i].IsDirectlyCommitted(oracle) {
			return i
		}
	}
	return -1
}
