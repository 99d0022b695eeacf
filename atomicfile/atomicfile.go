// Package atomicfile writes files through a temporary file in the same
// directory, which is only moved into place once everything succeeded.
package atomicfile

import (
	"os"
	"path/filepath"
)

// File is a temporary file that becomes the named file on Close.
type File struct {
	*os.File
	name string
	perm os.FileMode
	done bool
}

// New creates a temporary file next to filename. Call Close to commit or
// Abort to discard the data.
func New(filename string) (*File, error) {
	dir, name := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, name+".wip-*")
	if err != nil {
		return nil, err
	}
	return &File{File: f, name: filename, perm: 0644}, nil
}

// Close syncs the data and renames the temporary file to its final name. Any
// error removes the temporary file.
func (f *File) Close() error {
	if f.done {
		return nil
	}
	f.done = true
	err := f.File.Sync()
	if closeErr := f.File.Close(); err == nil {
		err = closeErr
	}
	if permErr := os.Chmod(f.File.Name(), f.perm); err == nil {
		err = permErr
	}
	if err == nil {
		err = os.Rename(f.File.Name(), f.name)
	}
	if err != nil {
		os.Remove(f.File.Name())
	}
	return err
}

// Abort discards the temporary file, the target is left untouched.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	_ = f.File.Close()
	return os.Remove(f.File.Name())
}

// WriteFile writes the data to a temp file and atomically moves it, if
// everything else succeeds.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	f, err := New(filename)
	if err != nil {
		return err
	}
	f.perm = perm
	if _, err := f.Write(data); err != nil {
		f.Abort()
		return err
	}
	return f.Close()
}
