// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"io"

	"github.com/klauspost/compress/zlib"
)

// Zlib decodes zlib streams in compressed chunks.
var Zlib Decompressor = streamDecompressor{name: "zlib", decFunc: decompressZlibStream}

// decompressZlibStream returns an io.Reader that decompresses src with zlib algorithm
func decompressZlibStream(src io.Reader) (io.Reader, error) {
	return zlib.NewReader(src)
}
