package proof

import (
	"sync"

	"github.com/distledger/ledgernode/domain/ledger"
)

// chainEntry is the per-owner slice of blocks a Proof carries, plus the
// owner itself so later passes don't need a LocalStore round trip just to
// turn an id back into a *ledger.Node.
type chainEntry struct {
	owner  *ledger.Node
	blocks []*ledger.Block
}

// Proof is the data structure carrying chain updates per owner, together
// with the transaction they exist to prove. A Proof is built empty (by a
// sender, via AddBlock) or reconstructed from a wire message (via Decode);
// either way it is mutated only during construction/decode and is
// immutable thereafter.
//
// chainViews is a lazily populated memo guarded by viewMtx: multiple
// goroutines may fan out across a Proof's transitive sources during
// verification, and building a ChainView is not safe to race.
type Proof struct {
	transaction *ledger.Transaction

	chainUpdates map[int]*chainEntry

	viewMtx    sync.Mutex
	chainViews map[int]*ledger.ChainView
}

// New creates an empty Proof for the given transaction, ready to have
// chain updates added via AddBlock.
func New(transaction *ledger.Transaction) *Proof {
	return &Proof{
		transaction:  transaction,
		chainUpdates: make(map[int]*chainEntry),
		chainViews:   make(map[int]*ledger.ChainView),
	}
}

// Transaction returns the transaction this proof exists to prove.
func (p *Proof) Transaction() *ledger.Transaction {
	return p.transaction
}

// AddBlock appends block to owner's update segment within this proof.
// Blocks must be added in ascending number order per owner; construction
// (domain/proof.BuildChainUpdates) already produces them that way.
func (p *Proof) AddBlock(owner *ledger.Node, block *ledger.Block) {
	entry, ok := p.chainUpdates[owner.ID()]
	if !ok {
		entry = &chainEntry{owner: owner}
		p.chainUpdates[owner.ID()] = entry
	}
	entry.blocks = append(entry.blocks, block)
}

// ChainUpdates returns a snapshot of this proof's per-owner block updates,
// keyed by owner id.
func (p *Proof) ChainUpdates() map[int][]*ledger.Block {
	out := make(map[int][]*ledger.Block, len(p.chainUpdates))
	for id, entry := range p.chainUpdates {
		out[id] = entry.blocks
	}
	return out
}

// getChainView returns the memoized ChainView splicing this proof's update
// segment for owner onto owner's locally known chain, building and
// validating it on first access. Safe for concurrent callers across a
// proof's source fan-out.
func (p *Proof) getChainView(owner *ledger.Node, ls ledger.LocalStore) *ledger.ChainView {
	p.viewMtx.Lock()
	defer p.viewMtx.Unlock()

	if view, ok := p.chainViews[owner.ID()]; ok {
		return view
	}

	var updates []*ledger.Block
	if entry, ok := p.chainUpdates[owner.ID()]; ok {
		updates = entry.blocks
	}

	view := ledger.NewChainView(owner.Chain(), updates, ls.MainChain())
	view.IsValid() // eager: validity is memoized inside the view itself
	p.chainViews[owner.ID()] = view
	return view
}

// ApplyUpdates extends every chain this proof touches by its update
// segment, then advances localStore's own meta-knowledge of each included
// owner to the highest block number actually applied. Called only after
// Verify has succeeded; a chain's Update is atomic under its own lock, so
// a failure partway through leaves earlier chains extended but never
// leaves a single chain half-updated.
func (p *Proof) ApplyUpdates(ls ledger.LocalStore) error {
	for _, entry := range p.chainUpdates {
		if err := entry.owner.Chain().Update(entry.blocks); err != nil {
			return err
		}
	}
	for _, entry := range p.chainUpdates {
		if len(entry.blocks) == 0 {
			continue
		}
		highest := entry.blocks[len(entry.blocks)-1].Number()
		ls.Self().MetaKnowledge().Update(entry.owner, highest)
	}
	return nil
}
