package ipc

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestSemaWaitBlocksUntilSignal(t *testing.T) {
	var s Sema
	done := make(chan error, 1)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		done <- s.Wait(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("Wait returned early with %v, want it to still be blocked", err)
	case <-time.After(20 * time.Millisecond):
	}

	s.Signal()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Wait() after Signal() = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Signal")
	}
}

func TestSemaWaitRespectsContext(t *testing.T) {
	var s Sema
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := s.Wait(ctx); err == nil {
		t.Fatal("Wait() on an unsignalled semaphore with an expiring context should return an error")
	}
}

func TestMutexMutualExclusion(t *testing.T) {
	var m Mutex
	var counter int
	var wg sync.WaitGroup

	const goroutines = 20
	const increments = 200

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < increments; j++ {
				ctx := context.Background()
				if err := m.Lock(ctx); err != nil {
					t.Errorf("Lock: %v", err)
					return
				}
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()

	if counter != goroutines*increments {
		t.Fatalf("counter = %d, want %d (mutex failed to serialize increments)", counter, goroutines*increments)
	}
}

func TestReaderWriterExclusion(t *testing.T) {
	var s SyncBlock
	ctx := context.Background()

	if err := s.WriterEnter(ctx); err != nil {
		t.Fatalf("WriterEnter: %v", err)
	}

	readerDone := make(chan struct{})
	go func() {
		rctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := s.ReaderEnter(rctx); err != nil {
			return
		}
		s.ReaderExit(rctx)
		close(readerDone)
	}()

	select {
	case <-readerDone:
		t.Fatal("reader entered while writer held state_lock")
	case <-time.After(30 * time.Millisecond):
	}

	s.WriterExit()

	select {
	case <-readerDone:
	case <-time.After(time.Second):
		t.Fatal("reader never entered after writer released state_lock")
	}
}

func TestMultipleConcurrentReaders(t *testing.T) {
	var s SyncBlock
	ctx := context.Background()

	if err := s.ReaderEnter(ctx); err != nil {
		t.Fatalf("first ReaderEnter: %v", err)
	}
	if err := s.ReaderEnter(ctx); err != nil {
		t.Fatalf("second ReaderEnter: %v", err)
	}

	if s.ReaderCount != 2 {
		t.Fatalf("ReaderCount = %d, want 2", s.ReaderCount)
	}

	if err := s.ReaderExit(ctx); err != nil {
		t.Fatalf("first ReaderExit: %v", err)
	}
	if s.StateLock.TryLock() {
		t.Fatal("state_lock should still be held by the remaining reader")
	}

	if err := s.ReaderExit(ctx); err != nil {
		t.Fatalf("second ReaderExit: %v", err)
	}
	if !s.StateLock.TryLock() {
		t.Fatal("state_lock should be free once the last reader exits")
	}
	s.StateLock.Unlock()
}

func TestTurnTokenAtMostOneOutstanding(t *testing.T) {
	var s SyncBlock
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	s.SignalTurn(0)
	if err := s.WaitTurn(ctx, 0); err != nil {
		t.Fatalf("first WaitTurn: %v", err)
	}

	if err := s.WaitTurn(ctx, 0); err == nil {
		t.Fatal("second WaitTurn should block with no refill, want context deadline error")
	}
}
