package app

import (
	"fmt"
	"sync/atomic"

	"github.com/distledger/ledgernode/app/appmessage"
	"github.com/distledger/ledgernode/app/protocol"
	"github.com/distledger/ledgernode/config"
	"github.com/distledger/ledgernode/domain/ledger"
	"github.com/distledger/ledgernode/domain/ledger/mainchain"
	"github.com/distledger/ledgernode/util/locks"
	"github.com/distledger/ledgernode/util/panics"
)

// ComponentManager wires together this node's local store, main chain
// oracle, proof worker pool, and router, and owns their lifecycle.
type ComponentManager struct {
	cfg        *config.Config
	localStore *ledger.InMemoryStore
	mainChain  mainchain.MainChain
	workerPool *protocol.ProofWorkerPool
	router     *protocol.Router

	started, shutdown int32
}

// NewComponentManager builds a ComponentManager from cfg. Use Start to
// begin processing and Stop to shut down cleanly.
func NewComponentManager(cfg *config.Config) *ComponentManager {
	oracle := mainchain.NewMock()
	localStore := ledger.NewInMemoryStore(cfg.NodeID, oracle)
	workerPool := protocol.NewProofWorkerPool(cfg.WorkerCount, localStore)
	router := protocol.NewRouter()

	return &ComponentManager{
		cfg:        cfg,
		localStore: localStore,
		mainChain:  oracle,
		workerPool: workerPool,
		router:     router,
	}
}

// LocalStore returns the node's local store.
func (a *ComponentManager) LocalStore() *ledger.InMemoryStore {
	return a.localStore
}

// WorkerPool returns the proof worker pool.
func (a *ComponentManager) WorkerPool() *protocol.ProofWorkerPool {
	return a.workerPool
}

// Router returns the message router.
func (a *ComponentManager) Router() *protocol.Router {
	return a.router
}

// Start brings up all of this node's components. Calling it more than once
// has no effect.
func (a *ComponentManager) Start() {
	if atomic.AddInt32(&a.started, 1) != 1 {
		return
	}

	log.Trace("Starting ledgernode")

	if err := a.mainChain.Init(); err != nil {
		panics.Exit(log, fmt.Sprintf("Error starting the main chain oracle: %+v", err))
	}

	for id := 0; id < a.cfg.NrOfNodes; id++ {
		a.localStore.GetOrCreateNode(id)
	}

	a.router.SetHandler(appmessage.CmdProof, a.handleProof)
}

// handleProof routes a decoded CmdProof message to the worker pool instead
// of handling it inline on the caller's goroutine. Submit is fire-and-forget
// — a failed proof is logged and dropped by the pool itself — so this
// always reports success to the router.
func (a *ComponentManager) handleProof(msg appmessage.Message, _ ledger.LocalStore) error {
	a.workerPool.Submit(msg.(*appmessage.ProofMessage))
	return nil
}

// Stop gracefully shuts down all of this node's components. Calling it more
// than once has no effect beyond logging.
func (a *ComponentManager) Stop() {
	if atomic.AddInt32(&a.shutdown, 1) != 1 {
		log.Infof("ledgernode is already in the process of shutting down")
		return
	}

	log.Warnf("ledgernode shutting down")

	a.workerPool.StopWait()
	locks.WaitTillSpawnsAreDone()

	if err := a.mainChain.Stop(); err != nil {
		log.Errorf("Error stopping the main chain oracle: %+v", err)
	}
}
