// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import "fmt"

// bufferPool owns the two buffers used for compressed data chunks. Both grow
// to the largest chunk seen so far and never shrink during an extraction.
// Callers must not keep slices returned by compressedBuffer or
// decompressedBuffer across another call, since growing replaces the backing
// array.
type bufferPool struct {
	compressed   []byte
	decompressed []byte
	max          int64
}

// newBufferPool returns an empty pool that refuses to grow a buffer beyond max bytes.
func newBufferPool(max int64) *bufferPool {
	return &bufferPool{max: max}
}

// ensureCapacity returns buf if it holds at least needed bytes. Otherwise
// the old allocation is dropped and a buffer of exactly needed bytes is
// returned.
func (p *bufferPool) ensureCapacity(buf []byte, needed int64) ([]byte, error) {
	if needed <= int64(len(buf)) {
		return buf, nil
	}
	if needed > p.max {
		return nil, fmt.Errorf("%w: %d bytes requested, limit is %d", ErrBufferAllocation, needed, p.max)
	}
	return make([]byte, needed), nil
}

// compressedBuffer returns the compressed input buffer with a length of
// exactly size bytes, growing it if necessary.
func (p *bufferPool) compressedBuffer(size uint32) ([]byte, error) {
	buf, err := p.ensureCapacity(p.compressed, int64(size))
	if err != nil {
		return nil, fmt.Errorf("compressed buffer: %w", err)
	}
	p.compressed = buf
	return buf[:size], nil
}

// decompressedBuffer returns the decompressed output buffer with a length of
// exactly size bytes, growing it if necessary.
func (p *bufferPool) decompressedBuffer(size uint32) ([]byte, error) {
	buf, err := p.ensureCapacity(p.decompressed, int64(size))
	if err != nil {
		return nil, fmt.Errorf("decompressed buffer: %w", err)
	}
	p.decompressed = buf
	return buf[:size], nil
}

// capacity returns the current sizes of the compressed and decompressed buffers.
func (p *bufferPool) capacity() (int, int) {
	return len(p.compressed), len(p.decompressed)
}

// release drops both buffers.
func (p *bufferPool) release() {
	p.compressed = nil
	p.decompressed = nil
}
