package fsops

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnsureDir ensures a directory exists with the given permissions
func EnsureDir(fs afero.Fs, path string, perm os.FileMode) error {
	if err := fs.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("ensure directory: %w", err)
	}
	return nil
}

// Exists checks if a path exists
func Exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// IsDir checks if a path is a directory
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// CheckWritable checks if a path is writable
func CheckWritable(fs afero.Fs, path string) error {
	testFile := filepath.Join(path, ".write_test")
	f, err := fs.Create(testFile)
	if err != nil {
		return fmt.Errorf("path not writable: %w", err)
	}
	f.Close()
	fs.Remove(testFile)
	return nil
}

// WriteFileAtomic writes content to a temporary file in the destination
// directory and renames it into place, so a crashed or concurrent reader
// never observes a partially written file.
func WriteFileAtomic(fs afero.Fs, path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}

	tmp, err := afero.TempFile(fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		fs.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := fs.Chmod(tmpName, perm); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := fs.Rename(tmpName, path); err != nil {
		fs.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
