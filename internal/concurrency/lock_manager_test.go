package concurrency

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockManager_SerializesSameKey(t *testing.T) {
	lm := NewLockManager()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := lm.Lock("usdc.near/alice.near")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, lm.Len(), "released keys are dropped")
}

func TestLockManager_IndependentKeys(t *testing.T) {
	lm := NewLockManager()

	unlockA := lm.Lock("a")
	done := make(chan struct{})
	go func() {
		unlock := lm.Lock("b")
		unlock()
		close(done)
	}()
	<-done

	assert.Equal(t, 1, lm.Len())
	unlockA()
	assert.Equal(t, 0, lm.Len())
}

func TestLockManager_UnlockIsIdempotent(t *testing.T) {
	lm := NewLockManager()

	unlock := lm.Lock("a")
	unlock()
	unlock()

	assert.Equal(t, 0, lm.Len())
	again := lm.Lock("a")
	again()
}
