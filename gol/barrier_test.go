package gol

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestBarrierRounds(t *testing.T) {
	const parties = 6
	const rounds = 200
	barrier, err := NewBarrier(parties)
	if err != nil {
		t.Fatal(err)
	}

	// Each party writes its own slot; after the gate every slot must hold the same round
	slots := make([]int, parties)
	failures := make(chan error, parties)
	var wg sync.WaitGroup
	for id := 0; id != parties; id++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for round := 1; round <= rounds; round++ {
				slots[id] = round
				if err := barrier.Wait(); err != nil {
					failures <- err
					return
				}
				for other, seen := range slots {
					if seen != round {
						failures <- fmt.Errorf("party %d saw round %d of party %d in round %d", id, seen, other, round)
						barrier.Break(errors.New("stale slot"))
						return
					}
				}
				if err := barrier.Wait(); err != nil {
					failures <- err
					return
				}
			}
		}(id)
	}
	wg.Wait()
	close(failures)
	for failure := range failures {
		t.Error(failure)
	}
	if t.Failed() {
		return
	}
	if err := barrier.Close(); err != nil {
		t.Errorf("Close after all rounds: %v", err)
	}
}

func TestBarrierSingleParty(t *testing.T) {
	barrier, err := NewBarrier(1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i != 3; i++ {
		if err := barrier.Wait(); err != nil {
			t.Fatal(err)
		}
	}
}

func TestBarrierRejectsParties(t *testing.T) {
	if _, err := NewBarrier(0); !errors.Is(err, ErrBarrierParties) {
		t.Errorf("NewBarrier(0) error = %v, want %v", err, ErrBarrierParties)
	}
}

func TestBarrierBreakReleasesWaiters(t *testing.T) {
	barrier, err := NewBarrier(3)
	if err != nil {
		t.Fatal(err)
	}
	cause := errors.New("boom")
	results := make(chan error, 2)
	for i := 0; i != 2; i++ {
		go func() { results <- barrier.Wait() }()
	}

	// Two parties parked, the third never arrives
	deadline := time.Now().Add(5 * time.Second)
	for {
		barrier.cond.L.Lock()
		count := barrier.count
		barrier.cond.L.Unlock()
		if count == 2 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("waiters never arrived")
		}
		time.Sleep(time.Millisecond)
	}
	if err := barrier.Close(); !errors.Is(err, ErrBarrierBusy) {
		t.Errorf("Close with waiters = %v, want %v", err, ErrBarrierBusy)
	}

	barrier.Break(cause)
	for i := 0; i != 2; i++ {
		err := <-results
		if !errors.Is(err, ErrBarrierBroken) || !errors.Is(err, cause) {
			t.Errorf("Wait after Break = %v", err)
		}
	}
	if err := barrier.Wait(); !errors.Is(err, cause) {
		t.Errorf("Wait on broken barrier = %v", err)
	}
}
