package appmessage

import (
	"github.com/distledger/ledgernode/domain/ledger"
	"github.com/distledger/ledgernode/domain/proof"
)

// ProofMessage carries a full proof bundle: the transaction being proved,
// referenced by (senderId, blockNumber, number), and the chain update
// segments — keyed by owner node id — that must be decoded, relinked, and
// verified before anything in them can be trusted.
type ProofMessage struct {
	TransactionSenderID    int
	TransactionBlockNumber int
	TransactionNumber      int
	ChainUpdates           map[int][]proof.WireBlock
}

func (m *ProofMessage) Command() MessageCommand {
	return CmdProof
}

// Handle decodes and relinks the proof against localStore, verifies the
// proven transaction and its transitive sources, and only on success
// applies the chain updates and advances meta-knowledge. A decode or
// verification failure leaves local state untouched; a failure inside
// ApplyUpdates leaves any chains it already extended extended.
func (m *ProofMessage) Handle(localStore ledger.LocalStore) error {
	wire := &proof.WireProof{
		TransactionSenderID:    m.TransactionSenderID,
		TransactionBlockNumber: m.TransactionBlockNumber,
		TransactionNumber:      m.TransactionNumber,
		ChainUpdates:           m.ChainUpdates,
	}

	decoded, err := proof.Decode(localStore, wire)
	if err != nil {
		return err
	}

	if err := decoded.Verify(localStore); err != nil {
		return err
	}

	return decoded.ApplyUpdates(localStore)
}
