package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"syscall"
)

const lockFileName = ".v4apply.lock"

// Lock is an exclusive flock on a workspace root, held while a commit
// is being written so two appliers cannot interleave on one tree.
type Lock struct {
	file *os.File
	path string
	once sync.Once
}

// AcquireLock takes a non-blocking exclusive lock on the workspace.
func AcquireLock(root string) (*Lock, error) {
	path := filepath.Join(root, lockFileName)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("create workspace lock file: %w", err)
	}
	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		return nil, fmt.Errorf("workspace %q is already in use by another v4apply instance", root)
	}

	// PID in the lock file helps debugging stale locks.
	file.Truncate(0)
	file.Seek(0, 0)
	fmt.Fprintf(file, "%d\n", os.Getpid())

	return &Lock{file: file, path: path}, nil
}

// Release drops the lock and removes the lock file. Safe to call more
// than once.
func (l *Lock) Release() {
	l.once.Do(func() {
		syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN)
		l.file.Close()
		os.Remove(l.path)
	})
}
