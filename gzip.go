// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"io"

	"github.com/klauspost/compress/gzip"
)

// Gzip decodes gzip streams in compressed chunks.
var Gzip Decompressor = streamDecompressor{name: "gzip", decFunc: decompressGZipStream}

// decompressGZipStream returns an io.Reader that decompresses src with gzip algorithm
func decompressGZipStream(src io.Reader) (io.Reader, error) {
	return gzip.NewReader(src)
}
