// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import "errors"

// Errors that abort a whole extraction.
var (
	// ErrNotSixpack is returned if the input does not start with the 6pack signature.
	ErrNotSixpack = errors.New("not a 6pack archive")

	// ErrChecksumMismatch is returned if the checksum of a file entry does not match.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrTruncatedChunk is returned if a file entry ends before its declared size.
	ErrTruncatedChunk = errors.New("truncated chunk")

	// ErrBufferAllocation is returned if a chunk demands a buffer larger than [Config.MaxBufferSize].
	ErrBufferAllocation = errors.New("cannot allocate buffer")

	// ErrMaxFilesExceeded is returned if the archive announces more files than allowed.
	ErrMaxFilesExceeded = errors.New("maximum files exceeded")

	// ErrMaxExtractionSizeExceeded is returned if more data than allowed would be extracted.
	ErrMaxExtractionSizeExceeded = errors.New("maximum extraction size exceeded")

	// ErrMaxInputSizeExceeded is returned if the input is larger than allowed.
	ErrMaxInputSizeExceeded = errors.New("maximum input size exceeded")

	// ErrInvalidBlockSize is returned if the configured block size is out of range.
	ErrInvalidBlockSize = errors.New("invalid block size")

	// ErrUnknownDecompressor is returned by [DecompressorByName] for unregistered names.
	ErrUnknownDecompressor = errors.New("unknown decompressor")
)

// Errors that only abandon the current output file. They are recorded in
// [TelemetryData.LastExtractionError] and never returned from an extraction.
var (
	// ErrDataChecksumMismatch is recorded if the checksum of a data chunk does not match.
	ErrDataChecksumMismatch = errors.New("data checksum mismatch")

	// ErrDecompressionFailed is recorded if a compressed chunk does not decode to its declared size.
	ErrDecompressionFailed = errors.New("decompression failed")

	// ErrUnknownEncoding is recorded for data chunks with an unknown options value.
	ErrUnknownEncoding = errors.New("unknown compression method")
)
