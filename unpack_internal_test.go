// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/hashicorp/go-sixpack/internal/adler32"
)

func TestStateString(t *testing.T) {
	cases := map[state]string{
		stateScanning:  "scanning",
		stateIterating: "iterating",
		stateDone:      "done",
		stateAborted:   "aborted",
		state(42):      "state(42)",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Errorf("String() = %q, want %q", s.String(), want)
		}
	}
}

// recordingLogger captures the messages of an extraction
type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) record(level, msg string, keysAndValues ...interface{}) {
	l.messages = append(l.messages, fmt.Sprint(level, " ", msg, keysAndValues))
}
func (l *recordingLogger) Debug(msg string, kv ...interface{}) { l.record("DEBUG", msg, kv...) }
func (l *recordingLogger) Info(msg string, kv ...interface{})  { l.record("INFO", msg, kv...) }
func (l *recordingLogger) Warn(msg string, kv ...interface{})  { l.record("WARN", msg, kv...) }
func (l *recordingLogger) Error(msg string, kv ...interface{}) { l.record("ERROR", msg, kv...) }

// TestUnpackerStates runs the state machine and checks the final state
// and that all resources are released
func TestUnpackerStates(t *testing.T) {
	archive := append(append([]byte{}, magicBytes...), ChunkHeader{ID: 99}.AppendBinary(nil)...)

	cases := []struct {
		name   string
		input  []byte
		expect state
	}{
		{name: "archive", input: archive, expect: stateDone},
		{name: "invalid", input: []byte("invalid input"), expect: stateAborted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log := &recordingLogger{}
			cfg := NewConfig(WithLogger(log))
			td := &TelemetryData{}
			u := &unpacker{
				t:      NewTargetMemory(),
				dst:    ".",
				src:    bytes.NewReader(tc.input),
				cfg:    cfg,
				td:     td,
				pool:   newBufferPool(cfg.MaxBufferSize()),
				window: make([]byte, cfg.BlockSize()),
			}
			err := u.run(context.Background())
			if (err != nil) != (tc.expect == stateAborted) {
				t.Fatalf("run() error = %v", err)
			}
			if u.state != tc.expect {
				t.Errorf("state = %s, want %s", u.state, tc.expect)
			}
			if u.session != nil || u.window != nil {
				t.Errorf("resources not released")
			}
			if c, d := u.pool.capacity(); c != 0 || d != 0 {
				t.Errorf("buffers not released: %d, %d", c, d)
			}
			if len(log.messages) == 0 {
				t.Errorf("nothing logged")
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	td := &TelemetryData{}
	cfg := NewConfig()

	handleError(cfg, td, "first", errors.New("a"))
	err := handleFatal(cfg, td, "second", ErrNotSixpack)

	if td.ExtractionErrors != 2 {
		t.Errorf("ExtractionErrors = %d, want 2", td.ExtractionErrors)
	}
	if !errors.Is(err, ErrNotSixpack) || err.Error() != "second: not a 6pack archive" {
		t.Errorf("handleFatal() = %v", err)
	}
	if td.LastExtractionError != err {
		t.Errorf("LastExtractionError = %v, want %v", td.LastExtractionError, err)
	}
}

// brokenReadSeeker fails every read at or behind failAt
type brokenReadSeeker struct {
	*bytes.Reader
	failAt int64
	err    error
}

func (b *brokenReadSeeker) Read(p []byte) (int, error) {
	pos, _ := b.Seek(0, io.SeekCurrent)
	if pos >= b.failAt {
		return 0, b.err
	}
	if rem := b.failAt - pos; int64(len(p)) > rem {
		p = p[:rem]
	}
	return b.Reader.Read(p)
}

func TestCompressedDataReadError(t *testing.T) {
	entry := FileEntry{Size: 100, Name: "a.txt"}.AppendBinary(nil)
	payload := bytes.Repeat([]byte{0x1f}, 33)

	archive := append([]byte{}, magicBytes...)
	archive = ChunkHeader{ID: ChunkFileEntry, Size: uint32(len(entry)), Checksum: adler32.Checksum(entry)}.AppendBinary(archive)
	archive = append(archive, entry...)
	archive = ChunkHeader{ID: ChunkFileData, Options: EncodingCompressed, Size: uint32(len(payload)), Checksum: adler32.Checksum(payload), Extra: 100}.AppendBinary(archive)
	payloadOffset := int64(len(archive))
	archive = append(archive, payload...)

	errBroken := errors.New("device gone")
	src := &brokenReadSeeker{Reader: bytes.NewReader(archive), failAt: payloadOffset + 2, err: errBroken}

	td := &TelemetryData{}
	cfg := NewConfig(WithTelemetryHook(func(_ context.Context, d *TelemetryData) { *td = *d }))
	if err := UnpackTo(context.Background(), NewTargetMemory(), ".", src, cfg); err != nil {
		t.Fatalf("UnpackTo() error = %v", err)
	}

	if td.AbandonedFiles != 1 {
		t.Errorf("AbandonedFiles = %d, want 1", td.AbandonedFiles)
	}
	if !errors.Is(td.LastExtractionError, errBroken) {
		t.Errorf("LastExtractionError = %v, want %v", td.LastExtractionError, errBroken)
	}
	if errors.Is(td.LastExtractionError, ErrDataChecksumMismatch) {
		t.Errorf("read error reported as checksum mismatch: %v", td.LastExtractionError)
	}
}
