// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"io"

	"github.com/andybalholm/brotli"
)

// Brotli decodes brotli streams in compressed chunks.
var Brotli Decompressor = streamDecompressor{name: "brotli", decFunc: decompressBrotliStream}

// decompressBrotliStream returns an io.Reader that decompresses src with brotli algorithm
func decompressBrotliStream(src io.Reader) (io.Reader, error) {
	return brotli.NewReader(src), nil
}
