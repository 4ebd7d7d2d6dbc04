// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config provides a configuration struct and options to adjust the configuration.
//
// The configuration struct holds all configuration options for the extraction process.
// The configuration options can be adjusted using the option pattern style.
type Config struct {
	// blockSize is the size of the streaming window for stored chunks and the
	// exclusive upper bound for the size of a file entry chunk
	blockSize int

	// cacheInMemory offers the option to enable/disable caching in memory. This applies only
	// to inputs that cannot seek, which have to be cached before extraction.
	cacheInMemory bool

	// create destination directory if it does not exist
	createDestination bool

	// customCreateDirMode is the file mode for created directories (respecting umask)
	customCreateDirMode fs.FileMode

	// customDecompressFileMode is the file mode for an extracted file (respecting umask)
	customDecompressFileMode fs.FileMode

	// decompressor decodes the payload of compressed data chunks
	decompressor Decompressor

	// logger stream for extraction
	logger logger

	// maxBufferSize is the largest size the compressed and decompressed
	// buffers may grow to
	maxBufferSize int64

	// maxExtractionSize is the maximum size over all extracted files.
	// Set value to -1 to disable the check.
	maxExtractionSize int64

	// maxFiles is the maximum of file entries in an archive.
	// Set value to -1 to disable the check.
	maxFiles int64

	// maxInputSize is the maximum size of the input
	// Set value to -1 to disable the check.
	maxInputSize int64

	// Define if files should be overwritten in the destination
	overwrite bool

	// progressHook is called after every data chunk that has been written
	progressHook ProgressHook

	// telemetryHook is a function to consume telemetry data after finished extraction
	// Important: do not adjust this value after extraction started
	telemetryHook TelemetryHook
}

// ProgressHook is a function type that is called after a data chunk has been
// written to the file called name. extracted is the number of bytes extracted
// for that file so far, total the size announced by its file entry.
type ProgressHook func(name string, extracted int64, total int64)

const (
	defaultBlockSize                = 65536    // 64 KiB
	defaultCacheInMemory            = false    // cache on disk
	defaultCreateDestination        = false    // don't create destination directory
	defaultCustomCreateDirMode      = 0750     // default directory permissions rwxr-x---
	defaultCustomDecompressFileMode = 0644     // default file permissions rw-r--r--
	defaultMaxBufferSize            = 64 << 20 // 64 MiB
	defaultMaxExtractionSize        = -1       // unlimited
	defaultMaxFiles                 = -1       // unlimited
	defaultMaxInputSize             = -1       // unlimited
	defaultOverwrite                = false    // skip existing files

	// MinBlockSize is the smallest accepted block size.
	MinBlockSize = 256

	// MaxBlockSize is the largest accepted block size.
	MaxBlockSize = 2621440
)

var (
	// slog to discard
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	// no operation telemetry hook
	defaultTelemetryHook = func(ctx context.Context, d *TelemetryData) {
		// noop
	}
	// no operation progress hook
	defaultProgressHook = func(name string, extracted int64, total int64) {
		// noop
	}
)

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style.
func NewConfig(opts ...ConfigOption) *Config {

	// setup default values
	config := &Config{
		blockSize:                defaultBlockSize,
		cacheInMemory:            defaultCacheInMemory,
		createDestination:        defaultCreateDestination,
		customCreateDirMode:      defaultCustomCreateDirMode,
		customDecompressFileMode: defaultCustomDecompressFileMode,
		decompressor:             FastLZ,
		logger:                   defaultLogger,
		maxBufferSize:            defaultMaxBufferSize,
		maxExtractionSize:        defaultMaxExtractionSize,
		maxFiles:                 defaultMaxFiles,
		maxInputSize:             defaultMaxInputSize,
		overwrite:                defaultOverwrite,
		progressHook:             defaultProgressHook,
		telemetryHook:            defaultTelemetryHook,
	}

	// Loop through each option
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// Validate checks the configuration for values that cannot be used for an extraction.
func (c *Config) Validate() error {
	if c.blockSize < MinBlockSize || c.blockSize > MaxBlockSize {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBlockSize, c.blockSize, MinBlockSize, MaxBlockSize)
	}
	return nil
}

// BlockSize returns the size of the streaming window for stored chunks. File
// entry chunks must be smaller than the block size.
func (c *Config) BlockSize() int {
	return c.blockSize
}

// CacheInMemory returns true if caching in memory is enabled. This applies only to
// inputs that cannot seek.
//
// If set to false, the cache is stored on disk to avoid memory exhaustion.
func (c *Config) CacheInMemory() bool {
	return c.cacheInMemory
}

// CheckMaxFiles checks if counter exceeds the configured maximum. If the maximum is exceeded,
// a [ErrMaxFilesExceeded] error is returned.
func (c *Config) CheckMaxFiles(counter int64) error {

	// check if disabled
	if c.MaxFiles() == -1 {
		return nil
	}

	// check value
	if counter > c.MaxFiles() {
		return ErrMaxFilesExceeded
	}
	return nil
}

// CheckExtractionSize checks if size exceeds configured maximum. If the maximum is exceeded,
// a [ErrMaxExtractionSizeExceeded] error is returned.
func (c *Config) CheckExtractionSize(size int64) error {

	// check if disabled
	if c.MaxExtractionSize() == -1 {
		return nil
	}

	// check value
	if size > c.MaxExtractionSize() {
		return ErrMaxExtractionSizeExceeded
	}
	return nil
}

// CheckInputSize checks if size exceeds configured maximum. If the maximum is exceeded,
// a [ErrMaxInputSizeExceeded] error is returned.
func (c *Config) CheckInputSize(size int64) error {
	if c.MaxInputSize() == -1 {
		return nil
	}
	if size > c.MaxInputSize() {
		return ErrMaxInputSizeExceeded
	}
	return nil
}

// CreateDestination returns true if the destination directory should be
// created if it does not exist.
func (c *Config) CreateDestination() bool {
	return c.createDestination
}

// CustomCreateDirMode returns the file mode for created directories.
// (respecting umask)
func (c *Config) CustomCreateDirMode() fs.FileMode {
	return c.customCreateDirMode
}

// CustomDecompressFileMode returns the file mode for an extracted file.
// (respecting umask)
func (c *Config) CustomDecompressFileMode() fs.FileMode {
	return c.customDecompressFileMode
}

// Decompressor returns the decompressor for compressed data chunks.
func (c *Config) Decompressor() Decompressor {
	return c.decompressor
}

// Logger returns the logger.
func (c *Config) Logger() logger {
	return c.logger
}

// MaxBufferSize returns the largest size a chunk buffer may grow to.
func (c *Config) MaxBufferSize() int64 {
	return c.maxBufferSize
}

// MaxExtractionSize returns the maximum size over all extracted files.
func (c *Config) MaxExtractionSize() int64 {
	return c.maxExtractionSize
}

// MaxFiles returns the maximum of file entries in an archive.
func (c *Config) MaxFiles() int64 {
	return c.maxFiles
}

// MaxInputSize returns the maximum size of the input.
func (c *Config) MaxInputSize() int64 {
	return c.maxInputSize
}

// Overwrite returns true if files should be overwritten in the destination.
// Otherwise existing files are skipped.
func (c *Config) Overwrite() bool {
	return c.overwrite
}

// ProgressHook returns the progress hook.
func (c *Config) ProgressHook() ProgressHook {
	if c.progressHook == nil {
		return defaultProgressHook
	}
	return c.progressHook
}

// TelemetryHook returns the telemetry hook.
func (c *Config) TelemetryHook() TelemetryHook {
	if c.telemetryHook == nil {
		return defaultTelemetryHook
	}
	return c.telemetryHook
}

// WithBlockSize options pattern function to set the block size. The value has to be
// in the range [MinBlockSize, MaxBlockSize] and must match the block size the archive
// has been created with.
func WithBlockSize(size int) ConfigOption {
	return func(c *Config) {
		c.blockSize = size
	}
}

// WithCacheInMemory options pattern function to enable/disable caching in memory.
// This applies only to inputs that cannot seek.
//
// If set to false, the cache is stored on disk to avoid memory exhaustion.
func WithCacheInMemory(cache bool) ConfigOption {
	return func(c *Config) {
		c.cacheInMemory = cache
	}
}

// WithCreateDestination options pattern function to create
// destination directory if it does not exist.
func WithCreateDestination(create bool) ConfigOption {
	return func(c *Config) {
		c.createDestination = create
	}
}

// WithCustomCreateDirMode options pattern function to set the file mode
// for created directories. (respecting umask)
func WithCustomCreateDirMode(mode fs.FileMode) ConfigOption {
	return func(c *Config) {
		c.customCreateDirMode = mode
	}
}

// WithCustomDecompressFileMode options pattern function to set the file mode for an
// extracted file. (respecting umask)
func WithCustomDecompressFileMode(mode fs.FileMode) ConfigOption {
	return func(c *Config) {
		c.customDecompressFileMode = mode
	}
}

// WithDecompressor options pattern function to replace the decompressor for
// compressed data chunks. A nil value keeps the current decompressor.
func WithDecompressor(d Decompressor) ConfigOption {
	return func(c *Config) {
		if d != nil {
			c.decompressor = d
		}
	}
}

// WithLogger options pattern function to set a custom logger.
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxBufferSize options pattern function to set the largest size the chunk
// buffers may grow to. Chunks demanding more abort the extraction with
// [ErrBufferAllocation].
func WithMaxBufferSize(size int64) ConfigOption {
	return func(c *Config) {
		c.maxBufferSize = size
	}
}

// WithMaxExtractionSize options pattern function to set maximum size over all
// extracted files. (-1 to disable check)
func WithMaxExtractionSize(maxExtractionSize int64) ConfigOption {
	return func(c *Config) {
		c.maxExtractionSize = maxExtractionSize
	}
}

// WithMaxFiles options pattern function to set maximum number of file entries
// in an archive. (-1 to disable check)
func WithMaxFiles(maxFiles int64) ConfigOption {
	return func(c *Config) {
		c.maxFiles = maxFiles
	}
}

// WithMaxInputSize options pattern function to set MaxInputSize for extraction input file. (-1 to disable check)
func WithMaxInputSize(maxInputSize int64) ConfigOption {
	return func(c *Config) {
		c.maxInputSize = maxInputSize
	}
}

// WithOverwrite options pattern function specify if files should be overwritten in the destination.
func WithOverwrite(enable bool) ConfigOption {
	return func(c *Config) {
		c.overwrite = enable
	}
}

// WithProgressHook options pattern function to set a [ProgressHook], which is
// called after every written data chunk.
func WithProgressHook(hook ProgressHook) ConfigOption {
	return func(c *Config) {
		c.progressHook = hook
	}
}

// WithTelemetryHook options pattern function to set a [TelemetryHook], which is called after extraction.
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}
