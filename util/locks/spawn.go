package locks

import (
	"github.com/distledger/ledgernode/util/panics"
)

// spawnedGoroutines tracks every goroutine started with spawn, so that
// WaitTillSpawnsAreDone can block until all of them have returned.
var spawnedGoroutines = newWaitGroup()

// spawn starts f in a new goroutine, recovering and fatally logging any
// panic it raises rather than letting it silently kill the goroutine, and
// tracking it in spawnedGoroutines for WaitTillSpawnsAreDone.
func spawn(f func()) {
	spawnedGoroutines.add()
	go func() {
		defer spawnedGoroutines.done()
		defer panics.HandlePanic(log, nil)
		f()
	}()
}

// WaitTillSpawnsAreDone blocks until every goroutine started with spawn has
// returned.
func WaitTillSpawnsAreDone() {
	spawnedGoroutines.wait()
}
