// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Target specifies all function that are needed to be implemented to extract contents from an archive
type Target interface {
	// CreateFile creates a file at the specified path and returns it for writing. The mode parameter
	// is the file mode that should be set on the file. If the file already exists and overwrite is
	// false, an error should be returned. If the file exists and overwrite is true, it should be
	// truncated. Data written before Close must be visible in the target, even if the caller never
	// finishes the file.
	CreateFile(path string, mode fs.FileMode, overwrite bool) (io.WriteCloser, error)

	// CreateDir creates at the specified path with the specified mode. If the directory already exists, nothing is done.
	// The function returns an error if there's a problem creating the directory. If the function completes successfully,
	// it returns nil.
	CreateDir(path string, mode fs.FileMode) error

	// Lstat see docs for os.Lstat. Main purpose is to check if an output file exists and for
	// symlinks in the extraction path.
	Lstat(path string) (fs.FileInfo, error)
}

// ensureDestination checks that dst exists, or creates it if config.CreateDestination() returns true.
func ensureDestination(t Target, dst string, cfg *Config) error {
	if len(dst) == 0 {
		return nil
	}
	if _, err := t.Lstat(dst); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("invalid destination: %w", err)
		}
		if !cfg.CreateDestination() {
			return fmt.Errorf("destination does not exist: %s", dst)
		}
		if err := t.CreateDir(dst, cfg.CustomCreateDirMode()); err != nil {
			return fmt.Errorf("failed to create destination directory: %w", err)
		}
		cfg.Logger().Info("created destination directory", "path", dst)
	}
	return nil
}

// outputPath converts the name of a file entry into a path below dst.
//
// If the name is empty, absolute or leaves dst, the function returns an error.
//
// If the path to the file contains a symlink, the function returns an error.
func outputPath(t Target, dst string, name string) (string, error) {
	// check if a name is provided
	if len(name) == 0 {
		return "", fmt.Errorf("cannot create file without name")
	}

	// file entries use forward slashes
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return "", fmt.Errorf("absolute path detected")
	}
	parts := strings.Split(name, "/")
	name = filepath.Join(parts...)

	if err := securityCheck(t, dst, name); err != nil {
		return "", fmt.Errorf("security check path failed: %w", err)
	}
	return filepath.Join(dst, name), nil
}

// createFile is a wrapper around the CreateFile function
//
// If the directory for the file does not exist, it will be created with the config.CustomCreateDirMode().
//
// If the file is created successfully, the function returns it for writing.
func createFile(t Target, dst string, path string, cfg *Config) (io.WriteCloser, error) {
	// ensure the directory exists. path has been checked by outputPath.
	if dir := filepath.Dir(path); dir != "." && dir != filepath.Clean(dst) {
		if err := t.CreateDir(dir, cfg.CustomCreateDirMode()); err != nil {
			return nil, fmt.Errorf("cannot create directory: %w", err)
		}
	}
	return t.CreateFile(path, cfg.CustomDecompressFileMode(), cfg.Overwrite())
}

// securityCheck checks if path, relative to dst, contains path traversal
// or a symlink.
func securityCheck(t Target, dst string, path string) error {
	// get relative path from base to new target
	rel, err := filepath.Rel(dst, filepath.Join(dst, path))
	if err != nil {
		return fmt.Errorf("failed to get relative path: %w", err)
	}
	// check if the relative path is local
	if !filepath.IsLocal(rel) {
		return fmt.Errorf("path traversal detected")
	}

	// check each element in path
	elements := strings.Split(rel, string(os.PathSeparator))
	for i := range elements {
		checkPath := filepath.Join(dst, filepath.Join(elements[:i+1]...))

		stat, err := t.Lstat(checkPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// nothing below a missing element can be a symlink
				return nil
			}
			return fmt.Errorf("invalid path: %w", err)
		}
		if stat.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("symlink in path: %s", checkPath)
		}
	}

	return nil
}
