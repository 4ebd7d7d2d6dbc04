// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"compress/bzip2"
	"io"
)

// Bzip2 decodes bzip2 streams in compressed chunks.
var Bzip2 Decompressor = streamDecompressor{name: "bzip2", decFunc: decompressBzip2Stream}

// decompressBzip2Stream returns an io.Reader that decompresses src with bzip2 algorithm
func decompressBzip2Stream(src io.Reader) (io.Reader, error) {
	return bzip2.NewReader(src), nil
}
