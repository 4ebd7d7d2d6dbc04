// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"fmt"
	"io"
	"io/fs"
	"os"
)

// TargetDisk is the struct type that holds all information for interacting with the filesystem
type TargetDisk struct{}

// NewTargetDisk creates a new TargetDisk
func NewTargetDisk() *TargetDisk {
	return &TargetDisk{}
}

// CreateDir creates a directory at the specified path with the specified mode. If the directory already
// exists, nothing is done.
func (d *TargetDisk) CreateDir(path string, mode fs.FileMode) error {

	// create dirs
	if err := os.MkdirAll(path, mode.Perm()); err != nil {
		return fmt.Errorf("failed to create directory (%w)", err)
	}

	return nil
}

// CreateFile creates a file at the specified path and opens it for writing.
// If the file already exists and overwrite is false, an error is returned.
// Bytes are written to disk as they arrive, so a file that is not finished
// stays on disk with the data written so far.
func (d *TargetDisk) CreateFile(path string, mode fs.FileMode, overwrite bool) (io.WriteCloser, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !overwrite {
		flags |= os.O_EXCL
	}

	// refuse to write through an existing symlink
	if stat, err := os.Lstat(path); err == nil && stat.Mode()&fs.ModeSymlink != 0 {
		return nil, fmt.Errorf("cannot create file: %s is a symlink", path)
	}

	dstFile, err := os.OpenFile(path, flags, mode.Perm())
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return dstFile, nil
}

// Lstat returns the FileInfo structure describing the named file.
// If there is an error, it will be of type *PathError.
func (d *TargetDisk) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}
