package ipc

import "context"

// MaxPlayers mirrors board.MaxPlayers; duplicated here (rather than
// imported) to keep this package free of a dependency on internal/board,
// since SyncBlock is pure synchronization machinery with no board semantics
// of its own.
const MaxPlayers = 9

// SyncBlock is the fixed-size synchronization structure living in the
// /game_sync shared region. Every field is a plain machine word so the
// struct can be mapped directly over shared memory by internal/shmem; no
// field here may hold a pointer, slice, or other runtime-managed value.
type SyncBlock struct {
	MasterToView    Sema
	ViewToMaster    Sema
	WriterIntent    Mutex
	StateLock       Mutex
	ReaderCount     int32
	ReaderCountLock Mutex
	TurnToken       [MaxPlayers]Sema
}

// ReaderEnter runs the writer-preference reader entry protocol: pass
// through writer_intent as a barrier (queueing behind any pending writer),
// then become the first reader to acquire state_lock on behalf of the
// whole reader cohort.
func (s *SyncBlock) ReaderEnter(ctx context.Context) error {
	if err := s.WriterIntent.Lock(ctx); err != nil {
		return err
	}
	s.WriterIntent.Unlock()

	if err := s.ReaderCountLock.Lock(ctx); err != nil {
		return err
	}
	s.ReaderCount++
	if s.ReaderCount == 1 {
		if err := s.StateLock.Lock(ctx); err != nil {
			// Undo the count increment: this reader never got in.
			s.ReaderCount--
			s.ReaderCountLock.Unlock()
			return err
		}
	}
	s.ReaderCountLock.Unlock()
	return nil
}

// ReaderExit runs the reader exit protocol: the last reader to leave
// releases state_lock on behalf of the cohort.
func (s *SyncBlock) ReaderExit(ctx context.Context) error {
	if err := s.ReaderCountLock.Lock(ctx); err != nil {
		return err
	}
	s.ReaderCount--
	becameLast := s.ReaderCount == 0
	s.ReaderCountLock.Unlock()

	if becameLast {
		s.StateLock.Unlock()
	}
	return nil
}

// WriterEnter runs the single writer's entry protocol: announce intent,
// then take the exclusive state lock. The arbiter is the only writer; it
// holds writer_intent across the whole mutation so arriving readers queue
// behind it, preventing reader starvation of the writer.
func (s *SyncBlock) WriterEnter(ctx context.Context) error {
	if err := s.WriterIntent.Lock(ctx); err != nil {
		return err
	}
	if err := s.StateLock.Lock(ctx); err != nil {
		s.WriterIntent.Unlock()
		return err
	}
	return nil
}

// WriterExit releases state_lock then writer_intent, in that order, so
// readers queued behind writer_intent are released only after the mutation
// they were waiting for is fully visible.
func (s *SyncBlock) WriterExit() {
	s.StateLock.Unlock()
	s.WriterIntent.Unlock()
}

// WaitTurn blocks a player until the arbiter authorises its next move
// emission.
func (s *SyncBlock) WaitTurn(ctx context.Context, playerIdx int) error {
	return s.TurnToken[playerIdx].Wait(ctx)
}

// SignalTurn authorises one more move emission from the given player.
func (s *SyncBlock) SignalTurn(playerIdx int) {
	s.TurnToken[playerIdx].Signal()
}
