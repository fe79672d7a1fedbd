package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked reports that another process holds the output lock.
var ErrLocked = errors.New("output file is locked by another run")

// WriteOptions controls how the corpus reaches disk.
type WriteOptions struct {
	// Atomic writes to a temp file beside the target and renames it into place.
	Atomic bool
	// Lock holds an advisory lock on <path>.lock for the duration of the write.
	// The lock file is left in place after the write.
	Lock bool
}

// LockPath returns the advisory lock file used for path.
func LockPath(path string) string {
	return path + ".lock"
}

// WriteFile renders the corpus and writes it to path, creating the parent
// directory if needed. It returns the number of bytes written.
func (c *Corpus) WriteFile(path string, opts WriteOptions) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, fmt.Errorf("create output directory: %w", err)
	}

	if opts.Lock {
		lock := flock.New(LockPath(path))
		ok, err := lock.TryLock()
		if err != nil {
			return 0, fmt.Errorf("acquire output lock: %w", err)
		}
		if !ok {
			return 0, fmt.Errorf("%w: %s", ErrLocked, LockPath(path))
		}
		defer lock.Unlock()
	}

	data, err := c.Document().WriteToBytes()
	if err != nil {
		return 0, fmt.Errorf("serialize corpus: %w", err)
	}

	if opts.Atomic {
		err = writeFileAtomic(path, data, 0o644)
	} else {
		err = os.WriteFile(path, data, 0o644)
	}
	if err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
