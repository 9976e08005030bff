package lock

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

const fileName = "LOCK"

// Holder describes the process that owns a session lock.
type Holder struct {
	PID       int
	Session   string
	StartedAt time.Time
}

// LockHeldError is returned when another daemon already serves the session.
type LockHeldError struct {
	Holder Holder
	Path   string
}

func (e *LockHeldError) Error() string {
	return fmt.Sprintf("session %q already served by elearnd PID %d (%s)", e.Holder.Session, e.Holder.PID, e.Path)
}

// Lock is an acquired, flock-protected session lock file.
type Lock struct {
	file *os.File
	path string
}

// Acquire takes the exclusive daemon lock for a session directory.
// Returns *LockHeldError if another process already holds it.
func Acquire(sessionDir, sessionName string) (*Lock, error) {
	if err := os.MkdirAll(sessionDir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	lockPath := filepath.Join(sessionDir, fileName)

	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = f.Close()
		h, _ := ReadHolder(sessionDir)
		return nil, &LockHeldError{Holder: h, Path: lockPath}
	}

	if err := writeHolder(f, Holder{PID: os.Getpid(), Session: sessionName, StartedAt: time.Now().UTC()}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write lock file: %w", err)
	}
	return &Lock{file: f, path: lockPath}, nil
}

// Release releases the lock. Safe to call on nil receiver and more than once.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	_ = os.Remove(l.path)
	err := l.file.Close()
	l.file = nil
	return err
}

// ReadHolder parses the lock file of a session directory.
func ReadHolder(sessionDir string) (Holder, error) {
	data, err := os.ReadFile(filepath.Join(sessionDir, fileName))
	if err != nil {
		return Holder{}, err
	}
	var h Holder
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "pid":
			h.PID, _ = strconv.Atoi(value)
		case "session":
			h.Session = value
		case "started":
			h.StartedAt, _ = time.Parse(time.RFC3339, value)
		}
	}
	return h, nil
}

func writeHolder(f *os.File, h Holder) error {
	if err := f.Truncate(0); err != nil {
		return err
	}
	if _, err := f.Seek(0, 0); err != nil {
		return err
	}
	_, err := fmt.Fprintf(f, "pid=%d\nsession=%s\nstarted=%s\n", h.PID, h.Session, h.StartedAt.Format(time.RFC3339))
	return err
}
