package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// ShipLock is a PID file that keeps two long-running loops from driving the
// same ship. The remote service accepts one action stream per ship; a second
// loop would race the first for cooldowns and cargo.
type ShipLock struct {
	shipSymbol string
	path       string
}

// ErrShipBusy is returned by Acquire when a live process already holds the lock
var ErrShipBusy = errors.New("ship is busy")

// DefaultDir is ~/.spacetraders/run
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".spacetraders", "run"), nil
}

// ForShip creates the lock for shipSymbol under dir
func ForShip(dir, shipSymbol string) *ShipLock {
	return &ShipLock{
		shipSymbol: shipSymbol,
		path:       filepath.Join(dir, shipSymbol+".pid"),
	}
}

// Path of the PID file
func (l *ShipLock) Path() string {
	return l.path
}

// Acquire writes the current PID. A stale file left by a dead process is replaced.
func (l *ShipLock) Acquire() error {
	if pid, ok := l.holder(); ok {
		if pid == os.Getpid() {
			return nil
		}
		if isProcessRunning(pid) {
			return fmt.Errorf("%w: %s is driven by PID %d (%s)", ErrShipBusy, l.shipSymbol, pid, l.path)
		}
	}
	_ = os.Remove(l.path)

	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	if err := os.WriteFile(l.path, []byte(fmt.Sprintf("%d\n", os.Getpid())), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the PID file if this process holds it
func (l *ShipLock) Release() error {
	if pid, ok := l.holder(); ok && pid != os.Getpid() {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// holder reads the PID in the file; false when missing or unreadable
func (l *ShipLock) holder() (int, bool) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	// Signal 0 probes for existence. EPERM means it exists under another user.
	err = process.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
