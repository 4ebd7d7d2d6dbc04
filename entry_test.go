// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	sixpack "github.com/hashicorp/go-sixpack"
)

func TestParseFileEntry(t *testing.T) {
	cases := []struct {
		name      string
		payload   []byte
		expect    sixpack.FileEntry
		expectErr bool
	}{
		{
			name:    "hello",
			payload: []byte{5, 0, 0, 0, 0, 0, 0, 0, 9, 0, 'h', 'e', 'l', 'l', 'o', '.', 't', 'x', 't'},
			expect:  sixpack.FileEntry{Size: 5, Name: "hello.txt"},
		},
		{
			name:    "reserved bytes are ignored",
			payload: []byte{1, 2, 0, 0, 0xff, 0xff, 0xff, 0xff, 1, 0, 'a'},
			expect:  sixpack.FileEntry{Size: 513, Name: "a"},
		},
		{
			name:    "name length clamped",
			payload: []byte{5, 0, 0, 0, 0, 0, 0, 0, 0xff, 0xff, 'a', 'b', 'c'},
			expect:  sixpack.FileEntry{Size: 5, Name: "abc"},
		},
		{
			name:    "shorter name length",
			payload: []byte{5, 0, 0, 0, 0, 0, 0, 0, 2, 0, 'a', 'b', 'c'},
			expect:  sixpack.FileEntry{Size: 5, Name: "ab"},
		},
		{
			name:    "empty name",
			payload: []byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			expect:  sixpack.FileEntry{},
		},
		{
			name:      "too short",
			payload:   []byte{5, 0, 0, 0, 0, 0, 0, 0, 9},
			expectErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			entry, err := sixpack.ParseFileEntry(tc.payload)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expect, entry)
		})
	}
}

func TestFileEntryAppendBinary(t *testing.T) {
	entry := sixpack.FileEntry{Size: 5, Name: "hello.txt"}
	b := entry.AppendBinary(nil)
	require.Equal(t, []byte{5, 0, 0, 0, 0, 0, 0, 0, 9, 0, 'h', 'e', 'l', 'l', 'o', '.', 't', 'x', 't'}, b)

	parsed, err := sixpack.ParseFileEntry(b)
	require.NoError(t, err)
	require.Equal(t, entry, parsed)
}

func TestFileEntryRoundTrip(t *testing.T) {
	long := string(make([]byte, 0x10005))
	cases := []struct {
		name   string
		entry  sixpack.FileEntry
		expect sixpack.FileEntry
	}{
		{name: "plain", entry: sixpack.FileEntry{Size: 5, Name: "hello.txt"}, expect: sixpack.FileEntry{Size: 5, Name: "hello.txt"}},
		{name: "nested", entry: sixpack.FileEntry{Size: 1 << 31, Name: "dir/sub/file.bin"}, expect: sixpack.FileEntry{Size: 1 << 31, Name: "dir/sub/file.bin"}},
		{name: "empty name", entry: sixpack.FileEntry{Size: 7}, expect: sixpack.FileEntry{Size: 7}},
		{name: "long name cut", entry: sixpack.FileEntry{Size: 1, Name: long}, expect: sixpack.FileEntry{Size: 1, Name: long[:0xffff]}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.entry.AppendBinary(nil)
			require.Len(t, b, 10+len(tc.expect.Name))

			parsed, err := sixpack.ParseFileEntry(b)
			require.NoError(t, err)
			require.Equal(t, tc.expect, parsed)
		})
	}
}
