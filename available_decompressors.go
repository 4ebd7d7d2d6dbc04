// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"fmt"
	"sort"
	"strings"
)

// availableDecompressors is the collection of decompressors that can be
// selected by name
var availableDecompressors = map[string]Decompressor{
	"brotli": Brotli,
	"bzip2":  Bzip2,
	"fastlz": FastLZ,
	"gzip":   Gzip,
	"lz4":    LZ4Block,
	"snappy": Snappy,
	"xz":     XZ,
	"zlib":   Zlib,
	"zstd":   Zstd,
}

// DecompressorNames returns the names accepted by [DecompressorByName] in
// alphabetical order.
func DecompressorNames() []string {
	names := make([]string, 0, len(availableDecompressors))
	for name := range availableDecompressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DecompressorByName returns the decompressor registered as name. Names
// are case-insensitive.
func DecompressorByName(name string) (Decompressor, error) {
	d, ok := availableDecompressors[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownDecompressor, name, strings.Join(DecompressorNames(), ", "))
	}
	return d, nil
}
