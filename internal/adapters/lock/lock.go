// Package lock guards the local store against two tracker processes.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrLocked is returned when another process holds the device lock
var ErrLocked = errors.New("another focuswork tracker is running on this device")

// DeviceLock is an exclusive, non-blocking advisory lock on a file
type DeviceLock struct {
	file *os.File
	path string
}

// Acquire takes the lock at path or fails immediately with ErrLocked
func Acquire(path string) (*DeviceLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := tryLockFile(file); err != nil {
		file.Close()
		if errors.Is(err, errWouldBlock) {
			if pid := readPID(path); pid != "" {
				return nil, fmt.Errorf("%w (pid %s)", ErrLocked, pid)
			}
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to lock %s: %w", path, err)
	}

	// the pid is informational only
	if err := file.Truncate(0); err == nil {
		file.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0)
	}

	return &DeviceLock{file: file, path: path}, nil
}

// Release unlocks and closes the lock file
func (l *DeviceLock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	defer func() { l.file = nil }()
	l.file.Truncate(0)
	if err := unlockFile(l.file); err != nil {
		l.file.Close()
		return fmt.Errorf("failed to unlock %s: %w", l.path, err)
	}
	return l.file.Close()
}

func readPID(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
