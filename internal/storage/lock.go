package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// lockFile takes an advisory lock on "<path>.lock". Readers share the lock;
// a mutation holds it exclusively across load and save so concurrent
// processes cannot lose each other's updates.
func lockFile(path string, exclusive bool) (func(), error) {
	dir := filepath.Dir(path)
	if exclusive {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	} else if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		// Nothing to read and nobody can be writing there yet.
		return func() {}, nil
	}

	lock := flock.New(path + ".lock")

	var err error
	if exclusive {
		err = lock.Lock()
	} else {
		err = lock.RLock()
	}
	if err != nil {
		return nil, fmt.Errorf("lock movies file: %w", err)
	}
	return func() { _ = lock.Unlock() }, nil
}
