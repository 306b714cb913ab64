package ledger

import "github.com/distledger/ledgernode/domain/ledger/mainchain"

// ChainView is a read-through overlay that splices a proposed update list
// of blocks onto a node's locally known base chain. Proof construction and
// verification never address a Chain directly — they go through a
// ChainView, which is the only place chain updates are checked for
// consistency before anything is taken on faith.
type ChainView struct {
	base    *Chain
	updates []*Block
	oracle  mainchain.MainChain

	disableValidation bool
	validComputed     bool
	valid             bool
}

// NewChainView creates a view splicing updates onto base. oracle is
// consulted lazily, only if IsValid ends up needing the base chain's
// last committed block number.
func NewChainView(base *Chain, updates []*Block, oracle mainchain.MainChain) *ChainView {
	return &ChainView{base: base, updates: updates, oracle: oracle}
}

// NewUnvalidatedChainView creates a view that always reports itself valid,
// for the narrower situations (e.g. proof construction bookkeeping) that
// don't need the validity contract enforced.
func NewUnvalidatedChainView(base *Chain, updates []*Block) *ChainView {
	return &ChainView{base: base, updates: updates, disableValidation: true}
}

// Owner returns the owning node of the underlying base chain.
func (v *ChainView) Owner() *Node {
	return v.base.Owner()
}

// updateRange reports the [lo, hi] number range covered by the update
// list, or ok=false if there are no updates.
func (v *ChainView) updateRange() (lo, hi int, ok bool) {
	if len(v.updates) == 0 {
		return 0, 0, false
	}
	return v.updates[0].Number(), v.updates[len(v.updates)-1].Number(), true
}

// Height returns one past the highest block number visible through this
// view.
func (v *ChainView) Height() int {
	if _, hi, ok := v.updateRange(); ok && hi+1 > v.base.Height() {
		return hi + 1
	}
	return v.base.Height()
}

// Block returns the block at number, consulting the update list first and
// falling back to the base chain, or nil if number is visible in neither.
func (v *ChainView) Block(number int) *Block {
	if lo, hi, ok := v.updateRange(); ok && number >= lo && number <= hi {
		return v.updates[number-lo]
	}
	return v.base.Block(number)
}

// Blocks returns every block visible through this view, in number order.
func (v *ChainView) Blocks() []*Block {
	height := v.Height()
	blocks := make([]*Block, 0, height)
	for n := 0; n < height; n++ {
		if b := v.Block(n); b != nil {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// IsValid reports whether this view's update list is consistent with its
// base chain, per the rules in SPEC_FULL.md §4.1. The result is computed
// once and memoized.
func (v *ChainView) IsValid() bool {
	if v.validComputed {
		return v.valid
	}
	v.valid = v.computeValid()
	v.validComputed = true
	return v.valid
}

func (v *ChainView) computeValid() bool {
	if v.disableValidation {
		return true
	}
	if len(v.updates) == 0 {
		return true
	}

	for i, u := range v.updates {
		if !u.Owner().Equal(v.base.Owner()) {
			return false
		}
		if i > 0 && u.Number() != v.updates[i-1].Number()+1 {
			return false
		}
	}

	u0 := v.updates[0]
	if u0.Number() == 0 {
		return v.base.Height() == 0 || v.lastCommittedHeight() < 0
	}

	lastCommitted := v.lastCommittedHeight()
	return u0.Number() <= v.base.Height() && u0.Number() > lastCommitted
}

func (v *ChainView) lastCommittedHeight() int {
	if v.oracle == nil {
		return -1
	}
	return v.base.LastCommittedNumber(v.oracle)
}

// LightView is the narrower read-only overlay used during source
// relinking: no validity contract, just getBlock-style lookups, so
// resolving a TransactionSource never pays for a validity check it doesn't
// need.
type LightView struct {
	base    *Chain
	updates []*Block
}

// NewLightView creates a LightView splicing updates onto base.
func NewLightView(base *Chain, updates []*Block) *LightView {
	return &LightView{base: base, updates: updates}
}

// Owner returns the owning node of the underlying base chain.
func (lv *LightView) Owner() *Node {
	return lv.base.Owner()
}

// Block returns the block at number, consulting the update list first and
// falling back to the base chain.
func (lv *LightView) Block(number int) *Block {
	if len(lv.updates) > 0 {
		lo := lv.updates[0].Number()
		hi := lv.updates[len(lv.updates)-1].Number()
		if number >= lo && number <= hi {
			return lv.updates[number-lo]
		}
	}
	return lv.base.Block(number)
}
