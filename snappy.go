// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"fmt"

	"github.com/klauspost/compress/snappy"
)

// Snappy decodes snappy blocks (not the framed stream format) in compressed chunks.
var Snappy Decompressor = DecompressorFunc(decompressSnappy)

func decompressSnappy(src, dst []byte) (int, error) {
	n, err := snappy.DecodedLen(src)
	if err != nil {
		return 0, fmt.Errorf("snappy decompress: %w", err)
	}
	if n > len(dst) {
		return 0, fmt.Errorf("snappy decompress: %d bytes do not fit into %d", n, len(dst))
	}
	out, err := snappy.Decode(dst[:n], src)
	if err != nil {
		return 0, fmt.Errorf("snappy decompress: %w", err)
	}
	return len(out), nil
}
