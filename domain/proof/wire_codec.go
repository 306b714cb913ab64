package proof

import (
	"io"
	"sort"

	"github.com/pkg/errors"

	"github.com/distledger/ledgernode/domain/ledger"
	"github.com/distledger/ledgernode/util/binaryserializer"
)

// maxWireCollection bounds any single length-prefixed collection decoded
// from the wire, guarding against memory exhaustion from a malformed or
// hostile ProofMessage payload.
const maxWireCollection = 1 << 20

// EncodeProof writes wire's byte-shape to w: the envelope/dispatch contract
// SPEC_FULL.md describes, not a real socket framing. Every integer is a
// fixed 8-byte little-endian word via util/binaryserializer; every
// variable-length collection is preceded by its count. Owner ids are
// written in sorted order so two calls encoding the same WireProof always
// produce identical bytes.
func EncodeProof(w io.Writer, wire *WireProof) error {
	if err := writeInt(w, wire.TransactionSenderID); err != nil {
		return err
	}
	if err := writeInt(w, wire.TransactionBlockNumber); err != nil {
		return err
	}
	if err := writeInt(w, wire.TransactionNumber); err != nil {
		return err
	}
	if err := writeInt(w, len(wire.ChainUpdates)); err != nil {
		return err
	}

	ownerIDs := make([]int, 0, len(wire.ChainUpdates))
	for ownerID := range wire.ChainUpdates {
		ownerIDs = append(ownerIDs, ownerID)
	}
	sort.Ints(ownerIDs)

	for _, ownerID := range ownerIDs {
		if err := writeInt(w, ownerID); err != nil {
			return err
		}
		blocks := wire.ChainUpdates[ownerID]
		if err := writeInt(w, len(blocks)); err != nil {
			return err
		}
		for _, block := range blocks {
			if err := encodeBlock(w, block); err != nil {
				return err
			}
		}
	}
	return nil
}

func encodeBlock(w io.Writer, block WireBlock) error {
	if err := writeInt(w, block.Number); err != nil {
		return err
	}
	if err := writeInt(w, block.OwnerID); err != nil {
		return err
	}
	if err := writeInt(w, len(block.Transactions)); err != nil {
		return err
	}
	for _, tx := range block.Transactions {
		if err := encodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}

func encodeTransaction(w io.Writer, tx WireTransaction) error {
	for _, field := range []int{tx.ID, tx.SenderID, tx.ReceiverID, tx.BlockNumber} {
		if err := writeInt(w, field); err != nil {
			return err
		}
	}
	if err := writeInt64(w, tx.Amount); err != nil {
		return err
	}
	if err := writeInt64(w, tx.Remainder); err != nil {
		return err
	}
	if err := writeInt(w, len(tx.Sources)); err != nil {
		return err
	}
	for _, ref := range tx.Sources {
		if err := writeInt(w, ref.OwnerID); err != nil {
			return err
		}
		if err := writeInt(w, ref.BlockNumber); err != nil {
			return err
		}
		if err := writeInt(w, ref.ID); err != nil {
			return err
		}
	}
	return nil
}

// DecodeProof is the inverse of EncodeProof.
func DecodeProof(r io.Reader) (*WireProof, error) {
	senderID, err := readInt(r)
	if err != nil {
		return nil, err
	}
	blockNumber, err := readInt(r)
	if err != nil {
		return nil, err
	}
	number, err := readInt(r)
	if err != nil {
		return nil, err
	}

	numOwners, err := readBoundedCount(r)
	if err != nil {
		return nil, err
	}

	chainUpdates := make(map[int][]WireBlock, numOwners)
	for i := 0; i < numOwners; i++ {
		ownerID, err := readInt(r)
		if err != nil {
			return nil, err
		}
		blocks, err := decodeBlocks(r)
		if err != nil {
			return nil, err
		}
		chainUpdates[ownerID] = blocks
	}

	return &WireProof{
		TransactionSenderID:    senderID,
		TransactionBlockNumber: blockNumber,
		TransactionNumber:      number,
		ChainUpdates:           chainUpdates,
	}, nil
}

func decodeBlocks(r io.Reader) ([]WireBlock, error) {
	numBlocks, err := readBoundedCount(r)
	if err != nil {
		return nil, err
	}

	blocks := make([]WireBlock, 0, numBlocks)
	for i := 0; i < numBlocks; i++ {
		block, err := decodeBlockWire(r)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

func decodeBlockWire(r io.Reader) (WireBlock, error) {
	number, err := readInt(r)
	if err != nil {
		return WireBlock{}, err
	}
	ownerID, err := readInt(r)
	if err != nil {
		return WireBlock{}, err
	}

	numTransactions, err := readBoundedCount(r)
	if err != nil {
		return WireBlock{}, err
	}

	transactions := make([]WireTransaction, 0, numTransactions)
	for i := 0; i < numTransactions; i++ {
		tx, err := decodeTransactionWire(r)
		if err != nil {
			return WireBlock{}, err
		}
		transactions = append(transactions, tx)
	}

	return WireBlock{Number: number, OwnerID: ownerID, Transactions: transactions}, nil
}

func decodeTransactionWire(r io.Reader) (WireTransaction, error) {
	id, err := readInt(r)
	if err != nil {
		return WireTransaction{}, err
	}
	senderID, err := readInt(r)
	if err != nil {
		return WireTransaction{}, err
	}
	receiverID, err := readInt(r)
	if err != nil {
		return WireTransaction{}, err
	}
	blockNumber, err := readInt(r)
	if err != nil {
		return WireTransaction{}, err
	}
	amount, err := readInt64(r)
	if err != nil {
		return WireTransaction{}, err
	}
	remainder, err := readInt64(r)
	if err != nil {
		return WireTransaction{}, err
	}

	numSources, err := readBoundedCount(r)
	if err != nil {
		return WireTransaction{}, err
	}
	sources := make([]ledger.SourceRef, 0, numSources)
	for i := 0; i < numSources; i++ {
		ownerID, err := readInt(r)
		if err != nil {
			return WireTransaction{}, err
		}
		refBlockNumber, err := readInt(r)
		if err != nil {
			return WireTransaction{}, err
		}
		refID, err := readInt(r)
		if err != nil {
			return WireTransaction{}, err
		}
		sources = append(sources, ledger.SourceRef{OwnerID: ownerID, BlockNumber: refBlockNumber, ID: refID})
	}

	return WireTransaction{
		ID:          id,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		BlockNumber: blockNumber,
		Amount:      amount,
		Remainder:   remainder,
		Sources:     sources,
	}, nil
}

func writeInt(w io.Writer, v int) error {
	return binaryserializer.PutUint64(w, uint64(int64(v)))
}

func writeInt64(w io.Writer, v int64) error {
	return binaryserializer.PutUint64(w, uint64(v))
}

func readInt(r io.Reader) (int, error) {
	v, err := binaryserializer.Uint64(r)
	if err != nil {
		return 0, err
	}
	return int(int64(v)), nil
}

func readInt64(r io.Reader) (int64, error) {
	v, err := binaryserializer.Uint64(r)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// readBoundedCount reads a length prefix and rejects one larger than
// maxWireCollection or negative, the way ReadVarBytes bounds-checks an
// incoming byte count in the teacher's wire codec.
func readBoundedCount(r io.Reader) (int, error) {
	n, err := readInt(r)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > maxWireCollection {
		return 0, errors.Errorf("wire collection count %d out of bounds", n)
	}
	return n, nil
}
