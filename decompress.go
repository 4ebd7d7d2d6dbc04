// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// decompressionFunc opens a decompressing reader on top of src
type decompressionFunc func(src io.Reader) (io.Reader, error)

// streamDecompressor adapts a stream compression format to the
// [Decompressor] contract. The stream has to decode to at most len(dst)
// bytes.
type streamDecompressor struct {
	name    string
	decFunc decompressionFunc
}

// Decompress decodes the stream in src into dst.
func (s streamDecompressor) Decompress(src, dst []byte) (int, error) {
	decompressedStream, err := s.decFunc(bytes.NewReader(src))
	if err != nil {
		return 0, fmt.Errorf("%s decompress: cannot start decompression: %w", s.name, err)
	}
	defer func() {
		if closer, ok := decompressedStream.(io.Closer); ok {
			closer.Close()
		}
	}()

	n, err := io.ReadFull(decompressedStream, dst)
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		// shorter than dst, the caller compares n
		return n, nil
	}
	if err != nil {
		return n, fmt.Errorf("%s decompress: %w", s.name, err)
	}

	// the stream has to end here
	var probe [1]byte
	switch _, err := io.ReadFull(decompressedStream, probe[:]); {
	case err == nil:
		return n, fmt.Errorf("%s decompress: more than %d bytes", s.name, len(dst))
	case !errors.Is(err, io.EOF):
		return n, fmt.Errorf("%s decompress: %w", s.name, err)
	}
	return n, nil
}
