// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// testTargets returns a disk and a memory target together with their
// destination directory
func testTargets(t *testing.T) []struct {
	name   string
	dst    string
	target Target
} {
	return []struct {
		name   string
		dst    string
		target Target
	}{
		{name: "disk", dst: t.TempDir(), target: NewTargetDisk()},
		{name: "memory", dst: ".", target: NewTargetMemory()},
	}
}

func TestOutputPath(t *testing.T) {
	cases := []struct {
		name      string
		entry     string
		expect    string
		expectErr bool
	}{
		{name: "plain", entry: "file.txt", expect: "file.txt"},
		{name: "nested", entry: "a/b/file.txt", expect: filepath.Join("a", "b", "file.txt")},
		{name: "dot segments", entry: "a/./b/../file.txt", expect: filepath.Join("a", "file.txt")},
		{name: "empty", entry: "", expectErr: true},
		{name: "absolute", entry: "/etc/passwd", expectErr: true},
		{name: "traversal", entry: "../file.txt", expectErr: true},
		{name: "nested traversal", entry: "a/../../file.txt", expectErr: true},
		{name: "parent", entry: "..", expectErr: true},
	}

	for _, tt := range testTargets(t) {
		for _, tc := range cases {
			t.Run(tt.name+"/"+tc.name, func(t *testing.T) {
				got, err := outputPath(tt.target, tt.dst, tc.entry)
				if (err != nil) != tc.expectErr {
					t.Fatalf("outputPath(%q) error = %v, expectErr %v", tc.entry, err, tc.expectErr)
				}
				if tc.expectErr {
					return
				}
				if want := filepath.Join(tt.dst, tc.expect); got != want {
					t.Errorf("outputPath(%q) = %q, want %q", tc.entry, got, want)
				}
			})
		}
	}
}

func TestSecurityCheckSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	dst := t.TempDir()
	outside := t.TempDir()
	if err := os.Symlink(outside, filepath.Join(dst, "link")); err != nil {
		t.Fatal(err)
	}
	target := NewTargetDisk()

	if _, err := outputPath(target, dst, "link/file.txt"); err == nil {
		t.Errorf("outputPath() through a symlink succeeded")
	}
	if _, err := outputPath(target, dst, "link"); err == nil {
		t.Errorf("outputPath() onto a symlink succeeded")
	}
	if _, err := outputPath(target, dst, "other/file.txt"); err != nil {
		t.Errorf("outputPath() error = %v", err)
	}
}

func TestCreateFileCreatesParents(t *testing.T) {
	for _, tt := range testTargets(t) {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			path, err := outputPath(tt.target, tt.dst, "a/b/c.txt")
			if err != nil {
				t.Fatal(err)
			}
			w, err := createFile(tt.target, tt.dst, path, cfg)
			if err != nil {
				t.Fatalf("createFile() error = %v", err)
			}
			if _, err := w.Write([]byte("data")); err != nil {
				t.Fatal(err)
			}
			if err := w.Close(); err != nil {
				t.Fatal(err)
			}

			stat, err := tt.target.Lstat(filepath.Join(tt.dst, "a", "b"))
			if err != nil {
				t.Fatalf("Lstat() error = %v", err)
			}
			if !stat.IsDir() {
				t.Errorf("parent is not a directory")
			}
			stat, err = tt.target.Lstat(path)
			if err != nil {
				t.Fatalf("Lstat() error = %v", err)
			}
			if stat.Size() != 4 {
				t.Errorf("size = %d, want 4", stat.Size())
			}

			// existing file
			if _, err := createFile(tt.target, tt.dst, path, cfg); err == nil {
				t.Errorf("createFile() on existing file succeeded without overwrite")
			}
			w, err = createFile(tt.target, tt.dst, path, NewConfig(WithOverwrite(true)))
			if err != nil {
				t.Fatalf("createFile() with overwrite error = %v", err)
			}
			w.Close()
		})
	}
}

func TestEnsureDestination(t *testing.T) {
	for _, tt := range testTargets(t) {
		t.Run(tt.name, func(t *testing.T) {
			dst := filepath.Join(tt.dst, "new", "dest")

			if err := ensureDestination(tt.target, dst, NewConfig()); err == nil {
				t.Errorf("ensureDestination() succeeded for missing destination")
			}
			if err := ensureDestination(tt.target, dst, NewConfig(WithCreateDestination(true))); err != nil {
				t.Fatalf("ensureDestination() error = %v", err)
			}
			stat, err := tt.target.Lstat(dst)
			if err != nil {
				t.Fatalf("Lstat() error = %v", err)
			}
			if !stat.IsDir() {
				t.Errorf("destination is not a directory")
			}

			// existing destination
			if err := ensureDestination(tt.target, dst, NewConfig()); err != nil {
				t.Errorf("ensureDestination() error = %v", err)
			}
			if err := ensureDestination(tt.target, "", NewConfig()); err != nil {
				t.Errorf("ensureDestination() with empty destination error = %v", err)
			}
		})
	}
}
