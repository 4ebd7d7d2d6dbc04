// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/hashicorp/go-sixpack/internal/adler32"
)

// Version is the version of the 6pack unpacker.
const Version = "0.1.0"

// Unpack extracts the 6pack archive src into the directory dst on the local
// filesystem. See [UnpackTo] for details.
func Unpack(ctx context.Context, dst string, src io.Reader, cfg *Config) error {
	return UnpackTo(ctx, NewTargetDisk(), dst, src, cfg)
}

// UnpackFile opens the archive at archivePath and extracts it into the
// directory dst on the local filesystem.
func UnpackFile(ctx context.Context, dst string, archivePath string, cfg *Config) error {
	if cfg == nil {
		cfg = NewConfig()
	}
	f, err := os.Open(archivePath)
	if err != nil {
		cfg.Logger().Error("cannot open archive", "path", archivePath, "error", err)
		return fmt.Errorf("cannot open archive: %w", err)
	}
	defer f.Close()
	return UnpackTo(ctx, NewTargetDisk(), dst, f, cfg)
}

// UnpackTo extracts the 6pack archive src into the directory dst of the
// target t. If src cannot seek, it is cached first.
//
// The returned error is non-nil only if the extraction has been aborted: the
// input is not a 6pack archive, a file entry is corrupt, a buffer cannot be
// allocated, a limit of cfg has been exceeded, the context has been canceled
// or the input cannot be read. Files that are skipped or abandoned due to a
// corrupt data chunk are reported through the [TelemetryData].
func UnpackTo(ctx context.Context, t Target, dst string, src io.Reader, cfg *Config) error {
	if cfg == nil {
		cfg = NewConfig()
	}

	// prepare telemetry data collection and emit
	td := &TelemetryData{ExtractedType: extractedType}
	defer cfg.TelemetryHook()(ctx, td)
	defer captureExtractionDuration(td, now())

	if err := cfg.Validate(); err != nil {
		return handleFatal(cfg, td, "invalid configuration", err)
	}

	rs, release, err := toReadSeeker(src, cfg)
	if err != nil {
		return handleFatal(cfg, td, "cannot read archive", err)
	}
	defer release()

	u := &unpacker{
		t:      t,
		dst:    dst,
		src:    rs,
		cfg:    cfg,
		td:     td,
		pool:   newBufferPool(cfg.MaxBufferSize()),
		window: make([]byte, cfg.BlockSize()),
	}
	return u.run(ctx)
}

// state is a state of the extraction
type state int

const (
	stateScanning state = iota
	stateIterating
	stateDone
	stateAborted
)

func (s state) String() string {
	switch s {
	case stateScanning:
		return "scanning"
	case stateIterating:
		return "iterating"
	case stateDone:
		return "done"
	case stateAborted:
		return "aborted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// session is the output file announced by the last file entry
type session struct {
	name      string
	size      int64 // decompressed size announced by the file entry
	extracted int64
	w         io.WriteCloser
}

// unpacker holds everything owned by one extraction run
type unpacker struct {
	t   Target
	dst string
	src io.ReadSeeker
	cfg *Config
	td  *TelemetryData

	state   state
	length  int64 // total length of src
	pos     int64 // offset of the current chunk header
	files   int64 // file entries seen
	pool    *bufferPool
	window  []byte
	session *session
}

// run drives the extraction from the signature check to the end of the stream.
func (u *unpacker) run(ctx context.Context) error {
	defer u.release()

	u.setState(stateScanning)

	length, err := u.src.Seek(0, io.SeekEnd)
	if err != nil {
		return u.abort("cannot determine archive size", err)
	}
	u.length = length
	u.td.InputSize = length
	if err := u.cfg.CheckInputSize(length); err != nil {
		return u.abort("input too large", err)
	}

	ok, err := DetectMagic(u.src)
	if err != nil {
		return u.abort("cannot detect archive type", err)
	}
	if !ok {
		return u.abort("invalid signature", ErrNotSixpack)
	}

	if err := ensureDestination(u.t, u.dst, u.cfg); err != nil {
		return u.abort("cannot prepare destination", err)
	}

	u.setState(stateIterating)
	var header [ChunkHeaderSize]byte
	for next := int64(MagicLength); ; {
		if err := ctx.Err(); err != nil {
			return u.abort("context error", err)
		}

		if next >= u.length {
			break
		}
		if u.length-next < ChunkHeaderSize {
			u.cfg.Logger().Warn("trailing bytes after last chunk", "offset", next, "bytes", u.length-next)
			break
		}

		// position of the next chunk
		if _, err := u.src.Seek(next, io.SeekStart); err != nil {
			return u.abort("cannot seek to chunk", err)
		}
		if _, err := io.ReadFull(u.src, header[:]); err != nil {
			return u.abort("cannot read chunk header", err)
		}
		u.pos = next
		hdr := DecodeChunkHeader(header[:])
		u.td.ChunksRead++

		if err := u.dispatch(hdr); err != nil {
			return u.abort("extraction aborted", err)
		}

		next = u.pos + ChunkHeaderSize + int64(hdr.Size)
	}

	u.setState(stateDone)
	return nil
}

// dispatch processes a single chunk. The read position is right behind its
// header. Only fatal errors are returned.
func (u *unpacker) dispatch(hdr ChunkHeader) error {
	switch {
	case hdr.ID == ChunkFileEntry && hdr.Size > fileEntryNameOffset && int64(hdr.Size) < int64(u.cfg.BlockSize()):
		return u.fileEntry(hdr)

	case hdr.ID == ChunkFileData && u.session != nil && u.session.size != 0:
		switch hdr.Options {
		case EncodingStored:
			return u.storedData(hdr)
		case EncodingCompressed:
			return u.compressedData(hdr)
		default:
			u.abandon(fmt.Errorf("%w: %d", ErrUnknownEncoding, hdr.Options))
			return nil
		}
	}

	u.td.ChunksIgnored++
	u.cfg.Logger().Debug("ignore chunk", "offset", u.pos, "chunk", hdr)
	return nil
}

// fileEntry closes the current output file and opens the one announced by hdr.
func (u *unpacker) fileEntry(hdr ChunkHeader) error {
	u.closeSession()

	payload := u.window[:hdr.Size]
	if _, err := io.ReadFull(u.src, payload); err != nil {
		return fmt.Errorf("%w: file entry at offset %d: %w", ErrTruncatedChunk, u.pos, err)
	}
	if sum := adler32.Checksum(payload); sum != hdr.Checksum {
		u.cfg.Logger().Error("file entry corrupt", "offset", u.pos, "got", fmt.Sprintf("%08X", sum), "expecting", fmt.Sprintf("%08X", hdr.Checksum))
		return fmt.Errorf("%w: file entry at offset %d: got %08X expecting %08X", ErrChecksumMismatch, u.pos, sum, hdr.Checksum)
	}
	entry, err := ParseFileEntry(payload)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTruncatedChunk, err)
	}

	u.files++
	if err := u.cfg.CheckMaxFiles(u.files); err != nil {
		return fmt.Errorf("%w: %d", err, u.files)
	}

	path, err := outputPath(u.t, u.dst, entry.Name)
	if err != nil {
		u.skip(entry.Name, fmt.Errorf("cannot create file %q: %w", entry.Name, err))
		return nil
	}

	if !u.cfg.Overwrite() {
		if _, err := u.t.Lstat(path); err == nil {
			u.td.SkippedFiles++
			u.td.LastSkippedFile = entry.Name
			u.cfg.Logger().Info("file already exists, skipped", "name", entry.Name)
			return nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			u.skip(entry.Name, fmt.Errorf("cannot check file %q: %w", entry.Name, err))
			return nil
		}
	}

	w, err := createFile(u.t, u.dst, path, u.cfg)
	if err != nil {
		u.skip(entry.Name, fmt.Errorf("cannot create file %q: %w", entry.Name, err))
		return nil
	}

	u.td.ExtractedFiles++
	u.session = &session{name: entry.Name, size: int64(entry.Size), w: w}
	u.cfg.Logger().Debug("extract file", "name", entry.Name, "size", entry.Size)
	return nil
}

// storedData copies the payload of hdr to the output file in windows of
// the configured block size.
func (u *unpacker) storedData(hdr ChunkHeader) error {
	s := u.session
	s.extracted += int64(hdr.Size)

	sum := adler32.Init
	remaining := int64(hdr.Size)
	for remaining > 0 {
		n := int64(len(u.window))
		if remaining < n {
			n = remaining
		}

		read, readErr := io.ReadFull(u.src, u.window[:n])
		if read > 0 {
			if err := u.checkExtractionSize(int64(read)); err != nil {
				return err
			}
			if err := u.write(u.window[:read]); err != nil {
				u.abandon(err)
				return nil
			}
			sum = adler32.Update(sum, u.window[:read])
		}
		remaining -= int64(read)

		if readErr != nil {
			u.cfg.Logger().Warn("stored chunk truncated", "offset", u.pos, "missing", remaining)
			break
		}
	}

	if sum != hdr.Checksum {
		u.abandon(fmt.Errorf("%w: got %08X expecting %08X", ErrDataChecksumMismatch, sum, hdr.Checksum))
		return nil
	}
	u.progress()
	return nil
}

// compressedData decompresses the payload of hdr into the output file.
func (u *unpacker) compressedData(hdr ChunkHeader) error {
	in, err := u.pool.compressedBuffer(hdr.Size)
	if err != nil {
		return err
	}
	out, err := u.pool.decompressedBuffer(hdr.Extra)
	if err != nil {
		return err
	}

	read, err := io.ReadFull(u.src, in)
	u.session.extracted += int64(hdr.Extra)
	switch {
	case errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF):
		u.cfg.Logger().Warn("compressed chunk truncated", "offset", u.pos, "missing", len(in)-read)
	case err != nil:
		u.abandon(fmt.Errorf("cannot read compressed chunk at offset %d: %w", u.pos, err))
		return nil
	}

	if sum := adler32.Checksum(in[:read]); read < len(in) || sum != hdr.Checksum {
		u.abandon(fmt.Errorf("%w: got %08X expecting %08X", ErrDataChecksumMismatch, sum, hdr.Checksum))
		return nil
	}

	n, err := u.cfg.Decompressor().Decompress(in, out)
	if err != nil {
		u.abandon(fmt.Errorf("%w: %w", ErrDecompressionFailed, err))
		return nil
	}
	if n != len(out) {
		u.abandon(fmt.Errorf("%w: got %d bytes expecting %d", ErrDecompressionFailed, n, len(out)))
		return nil
	}

	if err := u.checkExtractionSize(int64(n)); err != nil {
		return err
	}
	if err := u.write(out); err != nil {
		u.abandon(err)
		return nil
	}
	u.progress()
	return nil
}

// checkExtractionSize checks whether n more bytes fit into the extraction limit.
func (u *unpacker) checkExtractionSize(n int64) error {
	if err := u.cfg.CheckExtractionSize(u.td.ExtractionSize + n); err != nil {
		return fmt.Errorf("%w: %d", err, u.td.ExtractionSize+n)
	}
	return nil
}

// write writes p to the output file.
func (u *unpacker) write(p []byte) error {
	n, err := u.session.w.Write(p)
	u.td.ExtractionSize += int64(n)
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", u.session.name, err)
	}
	return nil
}

// progress reports the state of the current output file.
func (u *unpacker) progress() {
	u.cfg.ProgressHook()(u.session.name, u.session.extracted, u.session.size)
}

// skip records a file entry without an output file.
func (u *unpacker) skip(name string, err error) {
	u.td.SkippedFiles++
	u.td.LastSkippedFile = name
	handleError(u.cfg, u.td, "file skipped", err)
}

// abandon closes the current output file early. The partial file stays in
// the target.
func (u *unpacker) abandon(err error) {
	u.td.AbandonedFiles++
	handleError(u.cfg, u.td, fmt.Sprintf("file %s abandoned", u.session.name), err)
	u.closeSession()
}

// closeSession closes the current output file, if any.
func (u *unpacker) closeSession() {
	if u.session == nil {
		return
	}
	if err := u.session.w.Close(); err != nil {
		handleError(u.cfg, u.td, "cannot close file", fmt.Errorf("%s: %w", u.session.name, err))
	}
	u.session = nil
}

// release closes the current output file and drops the buffers.
func (u *unpacker) release() {
	u.closeSession()
	u.pool.release()
	u.window = nil
}

// abort ends the extraction with a fatal error.
func (u *unpacker) abort(msg string, err error) error {
	u.setState(stateAborted)
	return handleFatal(u.cfg, u.td, msg, err)
}

func (u *unpacker) setState(s state) {
	u.cfg.Logger().Debug("extraction state", "from", u.state, "to", s)
	u.state = s
}

// handleError records a recoverable error in the telemetry data and logs it.
func handleError(c *Config, td *TelemetryData, msg string, err error) {
	td.ExtractionErrors++
	td.LastExtractionError = fmt.Errorf("%s: %w", msg, err)
	c.Logger().Error(msg, "error", err)
}

// handleFatal records a fatal error and returns it wrapped with msg.
func handleFatal(c *Config, td *TelemetryData, msg string, err error) error {
	handleError(c, td, msg, err)
	return td.LastExtractionError
}
