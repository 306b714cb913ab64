package ledger

// SourceRef is an unresolved (ownerId, blockNumber, id) reference to a
// source transaction, exactly as it travels over the wire. Proof decode's
// relink pass (domain/proof) walks every transaction's sourceRefs and
// resolves each into a concrete *Transaction appended to sources.
type SourceRef struct {
	OwnerID     int
	BlockNumber int
	ID          int
}

// Transaction is a single sealed statement. A nil sender marks a genesis
// transaction, which has no sources and is trusted unconditionally once its
// containing block is shown to be committed.
type Transaction struct {
	id       int
	sender   *Node
	receiver *Node

	// blockNumber is the number of the block this transaction is sealed
	// into, or -1 if it has not been sealed yet.
	blockNumber int

	// amount and remainder are opaque to proof construction/verification;
	// carried for wire round-tripping only.
	amount    int64
	remainder int64

	sourceRefs []SourceRef
	sources    []*Transaction

	locallyVerified bool
}

// NewTransaction creates an unsealed transaction (blockNumber == -1).
func NewTransaction(id int, sender, receiver *Node, amount, remainder int64) *Transaction {
	return &Transaction{
		id:          id,
		sender:      sender,
		receiver:    receiver,
		blockNumber: -1,
		amount:      amount,
		remainder:   remainder,
	}
}

func (t *Transaction) ID() int { return t.id }

func (t *Transaction) Sender() *Node { return t.sender }

func (t *Transaction) Receiver() *Node { return t.receiver }

func (t *Transaction) Amount() int64 { return t.amount }

func (t *Transaction) Remainder() int64 { return t.remainder }

func (t *Transaction) BlockNumber() int { return t.blockNumber }

// HasBlockNumber reports whether this transaction has been sealed into a
// block yet.
func (t *Transaction) HasBlockNumber() bool { return t.blockNumber >= 0 }

// Seal records the number of the block this transaction was placed in.
func (t *Transaction) Seal(blockNumber int) { t.blockNumber = blockNumber }

// IsGenesis reports whether this transaction has no sender, i.e. it was
// minted directly rather than relayed from another chain.
func (t *Transaction) IsGenesis() bool { return t.sender == nil }

// SourceRefs returns the transaction's unresolved wire-level source
// references.
func (t *Transaction) SourceRefs() []SourceRef { return t.sourceRefs }

// SetSourceRefs installs the wire-level source references read off a
// decoded message, prior to relinking.
func (t *Transaction) SetSourceRefs(refs []SourceRef) { t.sourceRefs = refs }

// Sources returns the transaction's resolved source transactions. Empty
// until the decode relink pass runs (or, for transactions built directly
// in-process, until AddSource is called).
func (t *Transaction) Sources() []*Transaction { return t.sources }

// AddSource appends a resolved source transaction. Used both by in-process
// construction and by the relink pass.
func (t *Transaction) AddSource(source *Transaction) {
	t.sources = append(t.sources, source)
}

// LocallyVerified reports whether a prior Proof.verify pass already
// confirmed this transaction's provenance.
func (t *Transaction) LocallyVerified() bool { return t.locallyVerified }

// MarkLocallyVerified records that this transaction's provenance has been
// confirmed, so future verify passes over the same Proof can short-circuit.
func (t *Transaction) MarkLocallyVerified() { t.locallyVerified = true }

// Equal implements the (blockNumber, sender, id) equality described in
// SPEC_FULL.md §9: two transactions are considered the same transaction if
// they carry the same id, were sent by the same node, and were sealed at
// the same block number — deliberately not comparing receiver, amount, or
// sources, matching the original implementation's own duplicate check.
func (t *Transaction) Equal(other *Transaction) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.id != other.id || t.blockNumber != other.blockNumber {
		return false
	}
	if t.sender == nil || other.sender == nil {
		return t.sender == other.sender
	}
	return t.sender.Equal(other.sender)
}
