package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/medimate/internal/constants"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

var ErrAlreadyRunning = errors.New("another medimate server is already running")

// Lock is the content of the serve lockfile: the address the server listens
// on and its process id, written as "addr|pid".
type Lock struct {
	Addr string
	PID  int
	path string
}

func lockPath(dir string) string {
	return filepath.Join(dir, constants.ServeLockfileName)
}

func parse(content string) (Lock, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 2 {
		return Lock{}, errors.New("lockfile is malformed")
	}

	addr := strings.TrimSpace(parts[0])
	if addr == "" {
		return Lock{}, errors.New("address in lockfile is empty")
	}

	pid, err := strconv.Atoi(parts[1])
	if err != nil || pid < 1 {
		return Lock{}, errors.New("invalid process ID in lockfile")
	}

	return Lock{Addr: addr, PID: pid}, nil
}

// Running returns the lock held by a live medimate process in dir. A stale,
// malformed or missing lockfile yields ok == false.
func Running(dir string) (Lock, bool) {
	path := lockPath(dir)
	content, err := os.ReadFile(path)
	if err != nil {
		return Lock{}, false
	}

	lock, err := parse(string(content))
	if err != nil {
		return Lock{}, false
	}
	lock.path = path

	process, err := findProcessFunc(lock.PID)
	if err != nil || process == nil {
		return Lock{}, false
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return Lock{}, false
	}

	return lock, true
}

// Acquire writes the lockfile for this process. It fails with
// ErrAlreadyRunning when another live server holds it; stale lockfiles are
// overwritten.
func Acquire(dir, addr string) (*Lock, error) {
	if existing, ok := Running(dir); ok && existing.PID != getpidFunc() {
		return nil, fmt.Errorf("%w (pid %d on %s)", ErrAlreadyRunning, existing.PID, existing.Addr)
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lockfile directory: %w", err)
	}

	lock := &Lock{Addr: addr, PID: getpidFunc(), path: lockPath(dir)}
	content := fmt.Sprintf("%s|%d", lock.Addr, lock.PID)
	if err := os.WriteFile(lock.path, []byte(content), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	return lock, nil
}

// Release removes the lockfile if it still belongs to this lock.
func (l *Lock) Release() error {
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	current, err := parse(string(content))
	if err == nil && current.PID != l.PID {
		return nil
	}

	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
