package fs

import (
	"io"
	"os"
	"path/filepath"
)

// AtomicFile writes a file through a temporary sibling that replaces the
// target only on Commit, so a failed export never leaves a partial file.
type AtomicFile struct {
	path string
	tmp  *os.File
}

// Ensure AtomicFile can be handed to codecs as a plain writer.
var _ io.Writer = (*AtomicFile)(nil)

// CreateAtomic creates the temporary file for path. Parent directories are
// created as needed.
func CreateAtomic(path string) (*AtomicFile, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, err
	}
	return &AtomicFile{path: path, tmp: tmp}, nil
}

func (f *AtomicFile) Write(p []byte) (int, error) {
	return f.tmp.Write(p)
}

// Commit flushes the temporary file and renames it over the target.
func (f *AtomicFile) Commit() error {
	if err := f.tmp.Sync(); err != nil {
		f.tmp.Close()
		os.Remove(f.tmp.Name())
		return err
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	if err := os.Chmod(f.tmp.Name(), 0644); err != nil {
		os.Remove(f.tmp.Name())
		return err
	}
	return os.Rename(f.tmp.Name(), f.path)
}

// Abort discards the temporary file, leaving any existing target untouched.
func (f *AtomicFile) Abort() error {
	f.tmp.Close()
	err := os.Remove(f.tmp.Name())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
