package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileLocksSerializePerID(t *testing.T) {
	t.Parallel()

	locks := NewFileLocks()

	const workers = 32
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()

			locks.Lock("f1")
			counter++
			locks.Unlock("f1")
		}()
	}

	wg.Wait()
	require.Equal(t, workers, counter)
}

func TestFileLocksIndependentIDs(t *testing.T) {
	t.Parallel()

	locks := NewFileLocks()

	locks.Lock("a")

	// A different ID must not block behind "a"
	done := make(chan struct{})
	go func() {
		locks.Lock("b")
		locks.Unlock("b")
		close(done)
	}()

	<-done
	locks.Unlock("a")
}
