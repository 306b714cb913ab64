package proof

import (
	"github.com/distledger/ledgernode/domain/ledger"
	"github.com/distledger/ledgernode/domain/ledger/mainchain"
	"github.com/distledger/ledgernode/domain/proof/proofvalidation"
)

// WireTransaction is the decode-time counterpart of ledger.Transaction: a
// sender of -1 marks a genesis transaction, and Sources carries the
// (ownerId, blockNumber, id) tuples the relink pass resolves into live
// transactions rather than nesting transactions inside transactions.
type WireTransaction struct {
	ID          int
	SenderID    int // -1 for genesis
	ReceiverID  int
	BlockNumber int
	Amount      int64
	Remainder   int64
	Sources     []ledger.SourceRef
}

// WireBlock is the decode-time counterpart of ledger.Block.
type WireBlock struct {
	Number       int
	OwnerID      int
	Transactions []WireTransaction
}

// WireProof is the decode-time counterpart of Proof: the transaction being
// proved, referenced by (senderId, blockNumber, number) rather than by
// pointer, plus the chain update segments keyed by owner id.
type WireProof struct {
	TransactionSenderID    int
	TransactionBlockNumber int
	TransactionNumber      int
	ChainUpdates           map[int][]WireBlock
}

// Decode reconstructs a Proof from its wire form against localStore,
// relinking block back-pointers and transaction source references in the
// two passes described in SPEC_FULL.md §4.4. Until both passes complete
// the returned Proof must not be read by any other goroutine — the
// decoding goroutine owns it exclusively up to that point.
func Decode(ls ledger.LocalStore, wire *WireProof) (*Proof, error) {
	p := New(nil)

	owners := make(map[int]*ledger.Node, len(wire.ChainUpdates))
	blocksByOwner := make(map[int][]*ledger.Block, len(wire.ChainUpdates))

	for ownerID, wireBlocks := range wire.ChainUpdates {
		owner, err := resolveNode(ls, ownerID)
		if err != nil {
			return nil, err
		}
		owners[ownerID] = owner

		blocks := make([]*ledger.Block, 0, len(wireBlocks))
		for _, wb := range wireBlocks {
			block, err := decodeBlock(ls, owner, wb)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, block)
			p.AddBlock(owner, block)
		}
		blocksByOwner[ownerID] = blocks
	}

	if err := fixPreviousBlockPointers(blocksByOwner, owners); err != nil {
		return nil, err
	}

	lightViews := make(map[int]*ledger.LightView, len(owners))
	for ownerID, owner := range owners {
		lightViews[ownerID] = ledger.NewLightView(owner.Chain(), blocksByOwner[ownerID])
	}

	if err := fixTransactionSources(ls, blocksByOwner, lightViews); err != nil {
		return nil, err
	}

	tx, err := locateProvenTransaction(p, ls, owners, wire)
	if err != nil {
		return nil, err
	}
	p.transaction = tx

	return p, nil
}

func resolveNode(ls ledger.LocalStore, id int) (*ledger.Node, error) {
	node, err := ls.GetNode(id)
	if err != nil {
		return nil, proofvalidation.NewUnknownNode(id, err)
	}
	return node, nil
}

func decodeBlock(ls ledger.LocalStore, owner *ledger.Node, wb WireBlock) (*ledger.Block, error) {
	transactions := make([]*ledger.Transaction, 0, len(wb.Transactions))
	for _, wt := range wb.Transactions {
		tx, err := decodeTransaction(ls, owner, wt)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	block := ledger.NewBlock(wb.Number, owner, transactions)
	// The commitment hash depends only on (blockNumber, ownerID), both
	// already known locally, so it is derived rather than trusted from the
	// wire — a malicious sender cannot claim a commitment that was never
	// actually made.
	block.SetAbstractHash(mainchain.HashFromInts(wb.Number, owner.ID()))
	return block, nil
}

func decodeTransaction(ls ledger.LocalStore, owner *ledger.Node, wt WireTransaction) (*ledger.Transaction, error) {
	var sender *ledger.Node
	if wt.SenderID >= 0 {
		if wt.SenderID == owner.ID() {
			sender = owner
		} else {
			resolved, err := resolveNode(ls, wt.SenderID)
			if err != nil {
				return nil, err
			}
			sender = resolved
		}
	}

	receiver, err := resolveNode(ls, wt.ReceiverID)
	if err != nil {
		return nil, err
	}

	tx := ledger.NewTransaction(wt.ID, sender, receiver, wt.Amount, wt.Remainder)
	tx.Seal(wt.BlockNumber)
	tx.SetSourceRefs(wt.Sources)
	return tx, nil
}

// fixPreviousBlockPointers is pass A: link each owner's decoded blocks into
// a chain among themselves, then bind the first one's predecessor to the
// receiver's already-local block just below it, if any is needed.
func fixPreviousBlockPointers(blocksByOwner map[int][]*ledger.Block, owners map[int]*ledger.Node) error {
	for ownerID, blocks := range blocksByOwner {
		if len(blocks) == 0 {
			continue
		}
		for i := 1; i < len(blocks); i++ {
			blocks[i].SetPreviousBlock(blocks[i-1])
		}

		first := blocks[0]
		if first.Number() == 0 {
			continue
		}

		owner := owners[ownerID]
		predecessor := owner.Chain().Block(first.Number() - 1)
		if predecessor == nil {
			return proofvalidation.NewDecodeIO(nil, "missing local predecessor block %d for node %d", first.Number()-1, ownerID)
		}
		first.SetPreviousBlock(predecessor)
	}
	return nil
}

// fixTransactionSources is pass B: resolve every transaction's wire-level
// source references into live *ledger.Transaction pointers, preferring the
// proof's own (not yet committed) blocks over the local store.
func fixTransactionSources(ls ledger.LocalStore, blocksByOwner map[int][]*ledger.Block, lightViews map[int]*ledger.LightView) error {
	for _, blocks := range blocksByOwner {
		for _, block := range blocks {
			for _, tx := range block.Transactions() {
				for _, ref := range tx.SourceRefs() {
					source, err := resolveSource(ls, lightViews, ref)
					if err != nil {
						return err
					}
					tx.AddSource(source)
				}
			}
		}
	}
	return nil
}

func resolveSource(ls ledger.LocalStore, lightViews map[int]*ledger.LightView, ref ledger.SourceRef) (*ledger.Transaction, error) {
	if lv, ok := lightViews[ref.OwnerID]; ok {
		block := lv.Block(ref.BlockNumber)
		if block == nil {
			return nil, proofvalidation.NewDecodeIO(nil, "source block %d for node %d not present in proof or base chain", ref.BlockNumber, ref.OwnerID)
		}
		tx := block.Transaction(ref.ID)
		if tx == nil {
			return nil, proofvalidation.NewDecodeIO(nil, "source transaction %d not found in block %d of node %d", ref.ID, ref.BlockNumber, ref.OwnerID)
		}
		return tx, nil
	}

	owner, err := resolveNode(ls, ref.OwnerID)
	if err != nil {
		return nil, err
	}
	block := owner.Chain().Block(ref.BlockNumber)
	if block == nil {
		return nil, proofvalidation.NewDecodeIO(nil, "source block %d for node %d not locally known", ref.BlockNumber, ref.OwnerID)
	}
	tx := block.Transaction(ref.ID)
	if tx == nil {
		return nil, proofvalidation.NewDecodeIO(nil, "source transaction %d not found in block %d of node %d", ref.ID, ref.BlockNumber, ref.OwnerID)
	}
	return tx, nil
}

func locateProvenTransaction(p *Proof, ls ledger.LocalStore, owners map[int]*ledger.Node, wire *WireProof) (*ledger.Transaction, error) {
	sender, err := resolveNode(ls, wire.TransactionSenderID)
	if err != nil {
		return nil, err
	}

	cv := p.getChainView(sender, ls)
	block := cv.Block(wire.TransactionBlockNumber)
	if block == nil {
		return nil, proofvalidation.NewDecodeIO(nil, "proven transaction's block %d not present for node %d", wire.TransactionBlockNumber, wire.TransactionSenderID)
	}
	tx := block.Transaction(wire.TransactionNumber)
	if tx == nil {
		return nil, proofvalidation.NewDecodeIO(nil, "proven transaction %d not found in block %d of node %d", wire.TransactionNumber, wire.TransactionBlockNumber, wire.TransactionSenderID)
	}
	return tx, nil
}
