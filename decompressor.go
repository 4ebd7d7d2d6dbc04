// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import "github.com/hashicorp/go-sixpack/internal/fastlz"

// Decompressor decodes the payload of a compressed data chunk.
//
// Decompress decodes src into dst and returns the number of bytes written.
// It must never write more than len(dst) bytes. The extraction treats an
// error, or a count different from the size announced by the chunk header,
// as a corrupt chunk.
type Decompressor interface {
	Decompress(src, dst []byte) (int, error)
}

// DecompressorFunc is an adapter to allow the use of ordinary functions as [Decompressor].
type DecompressorFunc func(src, dst []byte) (int, error)

// Decompress calls f(src, dst).
func (f DecompressorFunc) Decompress(src, dst []byte) (int, error) {
	return f(src, dst)
}

// FastLZ decodes FastLZ blocks of level 1 and 2. It is the decompressor
// 6pack archives are created for and the default of [NewConfig].
var FastLZ Decompressor = DecompressorFunc(fastlz.Decompress)
