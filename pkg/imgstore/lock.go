package imgstore

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// lockFile takes a non-blocking exclusive advisory lock on the store file.
// The lock lives as long as the descriptor, so Close releases it. Operations
// assume a single writer; the lock turns a second concurrent writer into a
// clean error instead of silent corruption.
func lockFile(f *os.File) error {
	err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err != nil {
		return fmt.Errorf("%w: store is locked by another process: %v", ErrIO, err)
	}

	return nil
}
