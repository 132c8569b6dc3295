package instance

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (p mockProcess) Pid() int           { return p.pid }
func (p mockProcess) PPid() int          { return 1 }
func (p mockProcess) Executable() string { return p.executable }

func withProcesses(t *testing.T, self int, procs map[int]string) {
	t.Helper()
	origFind, origPid := findProcessFunc, getpidFunc
	t.Cleanup(func() {
		findProcessFunc, getpidFunc = origFind, origPid
	})

	getpidFunc = func() int { return self }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := procs[pid]
		if !ok {
			return nil, nil
		}
		return mockProcess{pid: pid, executable: exe}, nil
	}
}

func writeLock(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "medimate-serve.lock"), []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"valid", "127.0.0.1:5000|1234", false},
		{"trailing newline", "127.0.0.1:5000|1234\n", false},
		{"missing pid", "127.0.0.1:5000", true},
		{"empty addr", " |1234", true},
		{"bad pid", "127.0.0.1:5000|abc", true},
		{"zero pid", "127.0.0.1:5000|0", true},
		{"extra field", "a|1|b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lock, err := parse(tt.content)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parse(%q) error = %v, wantErr %v", tt.content, err, tt.wantErr)
			}
			if !tt.wantErr && (lock.Addr != "127.0.0.1:5000" || lock.PID != 1234) {
				t.Errorf("unexpected lock %+v", lock)
			}
		})
	}
}

func TestRunning(t *testing.T) {
	tests := []struct {
		name    string
		content string
		procs   map[int]string
		want    bool
	}{
		{"live server", "127.0.0.1:5000|42", map[int]string{42: "medimate"}, true},
		{"dead process", "127.0.0.1:5000|42", map[int]string{}, false},
		{"pid reused by another program", "127.0.0.1:5000|42", map[int]string{42: "vim"}, false},
		{"malformed", "garbage", map[int]string{42: "medimate"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			withProcesses(t, 1, tt.procs)
			writeLock(t, dir, tt.content)

			lock, ok := Running(dir)
			if ok != tt.want {
				t.Fatalf("Running() ok = %v, want %v", ok, tt.want)
			}
			if ok && lock.PID != 42 {
				t.Errorf("unexpected lock %+v", lock)
			}
		})
	}

	t.Run("no lockfile", func(t *testing.T) {
		if _, ok := Running(t.TempDir()); ok {
			t.Error("expected no running server without a lockfile")
		}
	})
}

func TestAcquire(t *testing.T) {
	t.Run("fresh", func(t *testing.T) {
		dir := t.TempDir()
		withProcesses(t, 7, map[int]string{7: "medimate"})

		lock, err := Acquire(dir, "127.0.0.1:5000")
		if err != nil {
			t.Fatalf("Acquire() failed: %v", err)
		}

		content, err := os.ReadFile(filepath.Join(dir, "medimate-serve.lock"))
		if err != nil {
			t.Fatalf("lockfile not written: %v", err)
		}
		if string(content) != "127.0.0.1:5000|7" {
			t.Errorf("unexpected lockfile content %q", content)
		}

		if err := lock.Release(); err != nil {
			t.Fatalf("Release() failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "medimate-serve.lock")); !os.IsNotExist(err) {
			t.Error("expected lockfile to be removed")
		}
	})

	t.Run("held by another server", func(t *testing.T) {
		dir := t.TempDir()
		withProcesses(t, 7, map[int]string{42: "medimate"})
		writeLock(t, dir, "127.0.0.1:5000|42")

		if _, err := Acquire(dir, "127.0.0.1:5001"); !errors.Is(err, ErrAlreadyRunning) {
			t.Errorf("expected ErrAlreadyRunning, got %v", err)
		}
	})

	t.Run("stale lock is replaced", func(t *testing.T) {
		dir := t.TempDir()
		withProcesses(t, 7, map[int]string{})
		writeLock(t, dir, "127.0.0.1:5000|42")

		if _, err := Acquire(dir, "127.0.0.1:5001"); err != nil {
			t.Fatalf("Acquire() over stale lock failed: %v", err)
		}
	})
}

func TestReleaseLeavesForeignLock(t *testing.T) {
	dir := t.TempDir()
	withProcesses(t, 7, map[int]string{})

	lock, err := Acquire(dir, "127.0.0.1:5000")
	if err != nil {
		t.Fatalf("Acquire() failed: %v", err)
	}
	writeLock(t, dir, "127.0.0.1:5000|99")

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "medimate-serve.lock")); err != nil {
		t.Error("expected lockfile owned by another process to survive")
	}
}
