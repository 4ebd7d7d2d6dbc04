// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// toReadSeeker returns src as an [io.ReadSeeker]. The extraction needs to
// know the length of the archive and to jump over chunks, so sources that
// cannot seek are cached, either in memory or in a temporary file, depending
// on config.CacheInMemory(). The returned function releases the cache.
func toReadSeeker(src io.Reader, cfg *Config) (io.ReadSeeker, func(), error) {
	noop := func() {}

	if s, ok := src.(io.ReadSeeker); ok {
		return s, noop, nil
	}

	// check the signature before anything is cached
	hr, err := newHeaderReader(src, MagicLength)
	if err != nil {
		return nil, noop, err
	}
	if !IsSixpack(hr.PeekHeader()) {
		return nil, noop, ErrNotSixpack
	}

	// limit reader
	ler := newLimitErrorReader(hr, cfg.MaxInputSize())

	// check how to cache
	if cfg.CacheInMemory() {
		b, err := io.ReadAll(ler)
		if isLimitError(err) {
			return nil, noop, fmt.Errorf("input exceeds %d bytes: %w", cfg.MaxInputSize(), err)
		}
		if err != nil {
			return nil, noop, fmt.Errorf("cannot read all from reader: %w", err)
		}
		return bytes.NewReader(b), noop, nil
	}

	// create temp file
	tmpFile, err := os.CreateTemp("", "sixpack-*")
	if err != nil {
		return nil, noop, fmt.Errorf("cannot create cache file: %w", err)
	}
	cleanup := func() {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
	}

	// copy reader to temp file
	if _, err := io.Copy(tmpFile, ler); err != nil {
		cleanup()
		if isLimitError(err) {
			return nil, noop, fmt.Errorf("input exceeds %d bytes: %w", cfg.MaxInputSize(), err)
		}
		return nil, noop, fmt.Errorf("cannot copy reader to file: %w", err)
	}

	// seek to start
	if _, err := tmpFile.Seek(0, io.SeekStart); err != nil {
		cleanup()
		return nil, noop, err
	}

	return tmpFile, cleanup, nil
}
