package processor

import (
	"os/exec"
	"testing"
	"time"
)

func TestTrackReleaseRemovesEntry(t *testing.T) {
	state := newRunState()

	releaseA := state.Track(exec.Command("true"))
	releaseB := state.Track(exec.Command("true"))

	state.mu.Lock()
	live := len(state.procs)
	state.mu.Unlock()
	if live != 2 {
		t.Fatalf("tracked %d processes, want 2", live)
	}

	releaseA()
	releaseA() // release is idempotent

	state.mu.Lock()
	live = len(state.procs)
	state.mu.Unlock()
	if live != 1 {
		t.Fatalf("after one release %d entries remain, want 1", live)
	}

	releaseB()
	state.mu.Lock()
	live = len(state.procs)
	state.mu.Unlock()
	if live != 0 {
		t.Fatalf("after all releases %d entries remain, want 0", live)
	}
}

func TestKillAllTerminatesTrackedProcesses(t *testing.T) {
	cmd := exec.Command("sleep", "60")
	if err := cmd.Start(); err != nil {
		t.Skipf("cannot start sleep: %v", err)
	}

	state := newRunState()
	release := state.Track(cmd)

	// Mirror the executor: the owner of the process waits on it and
	// releases the table entry when it exits.
	waitErr := make(chan error, 1)
	go func() {
		err := cmd.Wait()
		release()
		waitErr <- err
	}()

	start := time.Now()
	state.killAll()
	elapsed := time.Since(start)

	select {
	case err := <-waitErr:
		if err == nil {
			t.Error("sleep 60 exited cleanly; it should have been signalled")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("tracked process still running after killAll returned")
	}

	state.mu.Lock()
	live := len(state.procs)
	state.mu.Unlock()
	if live != 0 {
		t.Errorf("%d entries remain in the process table after killAll", live)
	}

	// An interrupted sleep dies well inside the first grace window.
	if elapsed > 4*time.Second {
		t.Errorf("killAll took %v, expected the interrupt to land quickly", elapsed)
	}
}
