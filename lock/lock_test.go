package lock

import (
	"sync"
	"testing"
)

func TestKeyedSerializesSameKey(t *testing.T) {
	var k Keyed

	const workers = 50
	counter := 0

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			release := k.Acquire("user-1")
			defer release()
			counter++
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Fatalf("expected counter %d, got %d", workers, counter)
	}
}

func TestKeyedIndependentKeys(t *testing.T) {
	var k Keyed

	releaseA := k.Acquire("a")
	defer releaseA()

	done := make(chan struct{})
	go func() {
		release := k.Acquire("b")
		release()
		close(done)
	}()

	<-done
}
