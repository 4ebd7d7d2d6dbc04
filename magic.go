// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// FileExtension is the file extension of 6pack archives.
const FileExtension = "6pk"

// extractedType is reported as [TelemetryData.ExtractedType].
const extractedType = "6pack"

// magicBytes is the signature at the start of every 6pack archive.
var magicBytes = []byte{137, '6', 'P', 'K', 13, 10, 26, 10}

// MagicLength is the length of the 6pack signature and the offset of the
// first chunk header.
const MagicLength = 8

// IsSixpack checks if the header starts with the 6pack signature.
func IsSixpack(header []byte) bool {
	return len(header) >= MagicLength && bytes.Equal(header[:MagicLength], magicBytes)
}

// DetectMagic reads the first bytes of r and reports whether they are the
// 6pack signature. The read position of r is set to the start of the stream
// before DetectMagic returns, regardless of the result.
func DetectMagic(r io.ReadSeeker) (bool, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("cannot seek to start: %w", err)
	}

	header := make([]byte, MagicLength)
	n, readErr := io.ReadFull(r, header)

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return false, fmt.Errorf("cannot seek to start: %w", err)
	}

	// shorter than the signature
	if errors.Is(readErr, io.EOF) || errors.Is(readErr, io.ErrUnexpectedEOF) {
		return false, nil
	}
	if readErr != nil {
		return false, fmt.Errorf("cannot read header: %w", readErr)
	}

	return IsSixpack(header[:n]), nil
}
