package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_Do(t *testing.T) {
	var g Group[string]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			val, _, err := g.Do("event:bahrain", func() (string, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("group call failed: %v", err)
			}
			if val != "ok" {
				t.Errorf("unexpected value %q", val)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}

	val, shared, err := g.Do("event:bahrain", func() (string, error) { return "again", nil })
	if err != nil || val != "again" || shared {
		t.Fatalf("expected key to be released after the call, got %q shared=%v err=%v", val, shared, err)
	}
}

func TestGroup_DoPropagatesError(t *testing.T) {
	var g Group[int]
	boom := errors.New("boom")

	_, shared, err := g.Do("k", func() (int, error) { return 0, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if shared {
		t.Fatalf("single caller must not report a shared result")
	}

	val, _, err := g.Do("k", func() (int, error) { return 7, nil })
	if err != nil || val != 7 {
		t.Fatalf("expected key to be reusable after failure, got %d, %v", val, err)
	}
}
