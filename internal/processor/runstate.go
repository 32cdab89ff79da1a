package processor

import (
	"os"
	"os/exec"
	"sync"
	"time"
)

// runState is the mutable state shared across one run's workers: the
// cancellation flag and the live gm process table. Every access goes
// through the mutex. Aggregate counters are not here; they are owned by
// the run's collector goroutine.
type runState struct {
	mu        sync.Mutex
	cancelled bool
	nextID    int
	procs     map[int]*exec.Cmd
}

func newRunState() *runState {
	return &runState{procs: make(map[int]*exec.Cmd)}
}

func (s *runState) cancel() {
	s.mu.Lock()
	s.cancelled = true
	s.mu.Unlock()
}

func (s *runState) isCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Track implements magick.ProcessRegistry. Each process gets a run-scoped
// ID so release removes exactly the entry it added.
func (s *runState) Track(cmd *exec.Cmd) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.procs[id] = cmd
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.procs, id)
		s.mu.Unlock()
	}
}

// killAll terminates every live gm process and waits until all have
// exited. The table is snapshotted before signalling so it is never
// mutated mid-iteration; the owning workers observe the exit via their
// own Wait and release their entries, which is what drains the table.
func (s *runState) killAll() {
	const grace = 2 * time.Second

	s.signalAll(os.Interrupt)
	if s.drain(grace) {
		return
	}
	s.signalAll(os.Kill)
	s.drain(grace)
}

func (s *runState) signalAll(sig os.Signal) {
	s.mu.Lock()
	snapshot := make([]*exec.Cmd, 0, len(s.procs))
	for _, cmd := range s.procs {
		snapshot = append(snapshot, cmd)
	}
	s.mu.Unlock()

	for _, cmd := range snapshot {
		if cmd.Process != nil {
			_ = cmd.Process.Signal(sig)
		}
	}
}

func (s *runState) drain(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		s.mu.Lock()
		live := len(s.procs)
		s.mu.Unlock()
		if live == 0 {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(20 * time.Millisecond)
	}
}
