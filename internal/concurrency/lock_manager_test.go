package concurrency

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SerializesPerKey(t *testing.T) {
	lm := NewLockManager()
	var (
		wg      sync.WaitGroup
		counter int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock("hero")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Zero(t, lm.Len(), "released keys are forgotten")
}

func TestLockManager_IndependentKeys(t *testing.T) {
	lm := NewLockManager()
	unlockA := lm.Lock("a")
	defer unlockA()

	acquired := make(chan struct{})
	go func() {
		unlock := lm.Lock("b")
		unlock()
		close(acquired)
	}()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}
	assert.Equal(t, 1, lm.Len())
}

func TestLockManager_WaiterKeepsEntry(t *testing.T) {
	lm := NewLockManager()
	unlock := lm.Lock("hero")

	got := make(chan struct{})
	go func() {
		u := lm.Lock("hero")
		close(got)
		u()
	}()

	assert.Eventually(t, func() bool {
		lm.mu.Lock()
		defer lm.mu.Unlock()
		return lm.locks["hero"] != nil && lm.locks["hero"].refs == 2
	}, time.Second, 5*time.Millisecond)

	unlock()
	<-got
	assert.Eventually(t, func() bool { return lm.Len() == 0 }, time.Second, 5*time.Millisecond)
}
