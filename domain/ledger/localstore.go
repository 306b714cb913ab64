package ledger

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/distledger/ledgernode/domain/ledger/mainchain"
)

// LocalStore is the per-node container the rest of the algorithm reads
// through: node lookup, chain registry, and the MainChain oracle binding
// that proof decode/verify consume.
type LocalStore interface {
	// Self returns the node this process is acting as.
	Self() *Node
	// GetNode returns the node with the given id. A real tracker-backed
	// implementation may block contacting the tracker and fail with an
	// I/O error if the node is unknown; the shipped InMemoryStore never
	// blocks, but preserves the fallible signature.
	GetNode(id int) (*Node, error)
	// RegisterNode adds node to the store, making it resolvable by id.
	RegisterNode(node *Node)
	// MainChain returns the main chain oracle binding used to verify
	// commitment of blocks.
	MainChain() mainchain.MainChain
	// Nodes returns every node currently known to this store.
	Nodes() []*Node
}

// ErrUnknownNode is returned by GetNode when asked for a node this store
// has never seen.
var ErrUnknownNode = errors.New("node is not known to this store")

// InMemoryStore is a LocalStore backed by a mutex-guarded map. It is a
// closed-world registry: every node it will ever know about is registered
// up front, so GetNode never actually blocks — but its signature matches
// what a tracker-backed implementation would need.
type InMemoryStore struct {
	mtx       sync.RWMutex
	self      *Node
	nodes     map[int]*Node
	mainChain mainchain.MainChain
}

// NewInMemoryStore creates a store whose Self node has the given id, backed
// by oracle for main chain lookups.
func NewInMemoryStore(selfID int, oracle mainchain.MainChain) *InMemoryStore {
	s := &InMemoryStore{nodes: make(map[int]*Node), mainChain: oracle}
	s.self = s.registerLocked(NewNode(selfID))
	return s
}

func (s *InMemoryStore) Self() *Node {
	return s.self
}

func (s *InMemoryStore) GetNode(id int) (*Node, error) {
	s.mtx.RLock()
	n, ok := s.nodes[id]
	s.mtx.RUnlock()
	if !ok {
		return nil, errors.Wrapf(ErrUnknownNode, "node %d", id)
	}
	return n, nil
}

// GetOrCreateNode returns the node with the given id, registering a fresh
// one if it has never been seen. Unlike GetNode it never fails — callers
// that are seeding a closed-world simulation rather than resolving
// untrusted wire references should use this instead.
func (s *InMemoryStore) GetOrCreateNode(id int) *Node {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if n, ok := s.nodes[id]; ok {
		return n
	}
	return s.registerLocked(NewNode(id))
}

func (s *InMemoryStore) RegisterNode(node *Node) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	s.registerLocked(node)
}

func (s *InMemoryStore) registerLocked(node *Node) *Node {
	if existing, ok := s.nodes[node.ID()]; ok {
		return existing
	}
	s.nodes[node.ID()] = node
	return node
}

func (s *InMemoryStore) MainChain() mainchain.MainChain {
	return s.mainChain
}

func (s *InMemoryStore) Nodes() []*Node {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	out := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		out = append(out, n)
	}
	return out
}
