package protocol

import (
	"sync"
	"testing"
	"time"
)

func TestNodeMutexSerializesSameNodeID(t *testing.T) {
	m := NewNodeMutex()
	var mu sync.Mutex
	order := make([]string, 0, 4)

	m.Lock(1)
	done := make(chan struct{})
	go func() {
		m.Lock(1)
		mu.Lock()
		order = append(order, "second")
		mu.Unlock()
		m.Unlock(1)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	order = append(order, "first")
	mu.Unlock()
	m.Unlock(1)

	<-done
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("NodeMutex: expected the second Lock to block until the first Unlock, got %v", order)
	}
}

func TestNodeMutexDifferentNodeIDsDoNotContend(t *testing.T) {
	m := NewNodeMutex()
	m.Lock(1)
	defer m.Unlock(1)

	done := make(chan struct{})
	go func() {
		m.Lock(2)
		m.Unlock(2)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Errorf("NodeMutex: expected locking a different node id not to block")
	}
}

func TestNodeMutexUnlockOfUnlockedIDPanics(t *testing.T) {
	m := NewNodeMutex()
	defer func() {
		if recover() == nil {
			t.Errorf("Unlock: expected a panic when unlocking an id that was never locked")
		}
	}()
	m.Unlock(99)
}
