package proofvalidation

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies a specific way a Proof can fail to verify or decode. The
// caller can use Is to determine whether a failure was specifically due to
// one kind rather than inspecting error strings.
type Kind string

const (
	// KindMissingSender indicates a received transaction has no attributed
	// sender, so it can never be trusted.
	KindMissingSender Kind = "MissingSender"

	// KindMissingBlockNumber indicates a transaction has not been sealed
	// into any block yet, so its provenance cannot be checked.
	KindMissingBlockNumber Kind = "MissingBlockNumber"

	// KindInvalidChainView indicates a ChainView's update list is
	// inconsistent with its base chain.
	KindInvalidChainView Kind = "InvalidChainView"

	// KindDuplicateTransaction indicates the same transaction appears more
	// than once in a sender's chain view.
	KindDuplicateTransaction Kind = "DuplicateTransaction"

	// KindTransactionNotFound indicates the transaction being verified was
	// never actually sealed into the block it claims.
	KindTransactionNotFound Kind = "TransactionNotFound"

	// KindNoCommittedAnchor indicates no block at or after the
	// transaction's block number is committed to the main chain.
	KindNoCommittedAnchor Kind = "NoCommittedAnchor"

	// KindBadGenesis indicates a genesis transaction claims a block number
	// other than 0.
	KindBadGenesis Kind = "BadGenesis"

	// KindMissingGenesisBlock indicates the receiver's chain view has no
	// block 0 to check a genesis transaction against.
	KindMissingGenesisBlock Kind = "MissingGenesisBlock"

	// KindGenesisNotCommitted indicates a genesis transaction's block is
	// not on the main chain.
	KindGenesisNotCommitted Kind = "GenesisNotCommitted"

	// KindDecodeIO indicates a proof message could not be decoded and
	// relinked, typically because a referenced predecessor block or node
	// is not locally known.
	KindDecodeIO Kind = "DecodeIO"

	// KindUnknownNode indicates a proof referenced a node id this process
	// has never heard of.
	KindUnknownNode Kind = "UnknownNode"

	// KindSourceInvalid indicates one of a transaction's transitive sources
	// failed verification, wrapping the inner failure.
	KindSourceInvalid Kind = "SourceInvalid"
)

// Error identifies a single proof validation failure. It carries a Kind so
// callers can branch on the failure category instead of string-matching,
// mirroring the teacher's RuleError.
type Error struct {
	kind    Kind
	message string
	inner   error
}

func (e Error) Error() string {
	if e.inner != nil {
		return e.message + ": " + e.inner.Error()
	}
	return e.message
}

// Unwrap satisfies the errors.Unwrap interface.
func (e Error) Unwrap() error {
	return e.inner
}

// Cause satisfies the github.com/pkg/errors.Cause interface.
func (e Error) Cause() error {
	return e.inner
}

// Kind returns the failure category.
func (e Error) Kind() Kind {
	return e.kind
}

func newError(kind Kind, inner error, format string, args ...interface{}) error {
	return errors.WithStack(Error{kind: kind, message: fmt.Sprintf(format, args...), inner: inner})
}

// Is reports whether err is a proofvalidation.Error of the given kind, or
// wraps one at any depth of its inner-error chain (e.g. the failure a
// SourceInvalid error carries).
func Is(err error, kind Kind) bool {
	for err != nil {
		var pe Error
		if !errors.As(err, &pe) {
			return false
		}
		if pe.kind == kind {
			return true
		}
		err = pe.inner
	}
	return false
}

func NewMissingSender(txID int) error {
	return newError(KindMissingSender, nil, "transaction %d has no attributed sender", txID)
}

func NewMissingBlockNumber(txID int) error {
	return newError(KindMissingBlockNumber, nil, "transaction %d has not been sealed into a block", txID)
}

func NewInvalidChainView(ownerID int) error {
	return newError(KindInvalidChainView, nil, "chain view for node %d is not valid", ownerID)
}

func NewDuplicateTransaction(txID int) error {
	return newError(KindDuplicateTransaction, nil, "transaction %d appears more than once in its sender's chain", txID)
}

func NewTransactionNotFound(txID, blockNumber int) error {
	return newError(KindTransactionNotFound, nil, "transaction %d was not found sealed into block %d", txID, blockNumber)
}

func NewNoCommittedAnchor(txID, blockNumber int) error {
	return newError(KindNoCommittedAnchor, nil, "no committed anchor at or after block %d for transaction %d", blockNumber, txID)
}

func NewBadGenesis(txID, blockNumber int) error {
	return newError(KindBadGenesis, nil, "genesis transaction %d has non-zero block number %d", txID, blockNumber)
}

func NewMissingGenesisBlock(ownerID int) error {
	return newError(KindMissingGenesisBlock, nil, "chain view for node %d has no genesis block", ownerID)
}

func NewGenesisNotCommitted(ownerID int) error {
	return newError(KindGenesisNotCommitted, nil, "genesis block of node %d is not committed to the main chain", ownerID)
}

func NewDecodeIO(inner error, format string, args ...interface{}) error {
	return newError(KindDecodeIO, inner, format, args...)
}

func NewUnknownNode(nodeID int, inner error) error {
	return newError(KindUnknownNode, inner, "node %d is not known to this store", nodeID)
}

func NewSourceInvalid(sourceTxID int, inner error) error {
	return newError(KindSourceInvalid, inner, "source %d is not valid", sourceTxID)
}
