//go:build unix || linux || darwin || freebsd || openbsd || netbsd

package storage

import (
	"os"

	"golang.org/x/sys/unix"
)

// lockHandle holds the file descriptor a lock was taken against, so it
// can be released independently of the *os.File being closed first.
type lockHandle int

// acquireLock takes a non-blocking advisory exclusive lock on f, enforcing
// the spec's "opened multiple times serially (not concurrently)" intent.
func acquireLock(f *os.File) (lockHandle, error) {
	fd := int(f.Fd())
	if err := unix.Flock(fd, unix.LOCK_EX|unix.LOCK_NB); err != nil {
		return -1, ErrFileLocked
	}
	return lockHandle(fd), nil
}

func releaseLock(h lockHandle) {
	if h < 0 {
		return
	}
	unix.Flock(int(h), unix.LOCK_UN)
}
