package signal

import (
	"os"
	osSignal "os/signal"
	"sync"
	"syscall"
)

var (
	once          sync.Once
	interruptChan chan struct{}
)

// InterruptListener starts a goroutine that listens for SIGINT/SIGTERM and
// closes the channel returned here on the first one received. Subsequent
// signals are logged and otherwise ignored; the channel never closes twice.
func InterruptListener() <-chan struct{} {
	once.Do(func() {
		interruptChan = make(chan struct{})
		osSig := make(chan os.Signal, 1)
		osSignal.Notify(osSig, os.Interrupt, syscall.SIGTERM)

		go func() {
			sig := <-osSig
			log.Infof("Received signal (%s), shutting down...", sig)
			close(interruptChan)

			for {
				sig := <-osSig
				log.Infof("Received signal (%s) while already shutting down, ignoring", sig)
			}
		}()
	})
	return interruptChan
}

// InterruptRequested returns true if the interrupt channel has been closed.
func InterruptRequested(interrupt <-chan struct{}) bool {
	select {
	case <-interrupt:
		return true
	default:
		return false
	}
}
