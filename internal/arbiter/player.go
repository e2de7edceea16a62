package arbiter

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"syscall"
)

// playerHandle is the Arbiter's view of one spawned player: its PID (for
// PlayerRuntime.DiscoverSlot to match against) and the read end of the pipe
// its stdout was redirected to.
type playerHandle struct {
	pid  int32
	r    io.ReadCloser
	cmd  *exec.Cmd
	exit string
}

// spawnPlayer starts path as a child process with its standard output
// redirected to a pipe the Arbiter reads one byte at a time, per spec: "one
// unidirectional pipe per player with the player's write-end redirected to
// its standard output." The decimal board width and height are passed as the
// player's only two arguments, per the invocation contract.
func spawnPlayer(path string, width, height int32) (*playerHandle, error) {
	cmd := exec.Command(path, strconv.Itoa(int(width)), strconv.Itoa(int(height)))
	cmd.Stderr = os.Stderr // diagnostics pass through; the protocol owns stdout
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &playerHandle{pid: int32(cmd.Process.Pid), r: stdout, cmd: cmd}, nil
}

// close closes the read end of the player's pipe, unblocking any goroutine
// parked in a Read call on it. Idempotent: a second call is a no-op, so
// Shutdown can safely close a pipe Run already closed.
func (h *playerHandle) close() error {
	if h.r == nil {
		return nil
	}
	err := h.r.Close()
	h.r = nil
	return err
}

// wait reaps the child process and records its exit status for later
// reporting. It is a no-op for handles with no real child (used by tests
// that drive the scheduler over a bare os.Pipe) and, once it has reaped the
// child, a no-op on every subsequent call — so Shutdown can safely wait on a
// child Run already reaped, without a second cmd.Wait call panicking.
func (h *playerHandle) wait() error {
	if h.cmd == nil {
		return nil
	}
	err := h.cmd.Wait()
	h.exit = exitStatus(h.cmd.ProcessState)
	h.cmd = nil
	return err
}

// exitStatus formats a child's exit status as "exit code N" or, if it was
// killed by a signal, "signal N", per the per-player exit summary.
func exitStatus(state *os.ProcessState) string {
	if state == nil {
		return "unknown"
	}
	if ws, ok := state.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return fmt.Sprintf("signal %d", int(ws.Signal()))
	}
	return fmt.Sprintf("exit code %d", state.ExitCode())
}
