// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"io"

	"github.com/ulikunitz/xz"
)

// XZ decodes xz streams in compressed chunks.
var XZ Decompressor = streamDecompressor{name: "xz", decFunc: decompressXzStream}

// decompressXzStream returns an io.Reader that decompresses src with xz algorithm
func decompressXzStream(src io.Reader) (io.Reader, error) {
	return xz.NewReader(src)
}
