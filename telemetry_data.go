// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"context"
	"encoding/json"
	"time"
)

// TelemetryData holds all telemetry data of an extraction.
type TelemetryData struct {
	// AbandonedFiles is the number of files that have been closed early
	// due to a corrupt data chunk
	AbandonedFiles int64 `json:"abandoned_files"`

	// ChunksIgnored is the number of chunks that have been skipped over
	ChunksIgnored int64 `json:"chunks_ignored"`

	// ChunksRead is the number of chunk headers that have been decoded
	ChunksRead int64 `json:"chunks_read"`

	// ExtractionDuration is the time it took to extract the archive
	ExtractionDuration time.Duration `json:"extraction_duration"`

	// ExtractionErrors is the number of errors during extraction
	ExtractionErrors int64 `json:"extraction_errors"`

	// ExtractedFiles is the number of output files that have been created
	ExtractedFiles int64 `json:"extracted_files"`

	// ExtractionSize is the number of bytes written to output files
	ExtractionSize int64 `json:"extraction_size"`

	// ExtractedType is the type of the archive
	ExtractedType string `json:"extracted_type"`

	// InputSize is the size of the input
	InputSize int64 `json:"input_size"`

	// LastExtractionError is the last error during extraction
	LastExtractionError error `json:"last_extraction_error"`

	// SkippedFiles is the number of file entries without output, because the
	// file already exists or cannot be created
	SkippedFiles int64 `json:"skipped_files"`

	// LastSkippedFile is the name of the last skipped file
	LastSkippedFile string `json:"last_skipped_file"`
}

// String returns a string representation of [TelemetryData].
func (m TelemetryData) String() string {
	b, _ := json.Marshal(m)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (m TelemetryData) MarshalJSON() ([]byte, error) {
	var lastError string
	if m.LastExtractionError != nil {
		lastError = m.LastExtractionError.Error()
	}

	type Alias TelemetryData
	return json.Marshal(&struct {
		LastExtractionError string `json:"last_extraction_error"`
		*Alias
	}{
		LastExtractionError: lastError,
		Alias:               (*Alias)(&m),
	})
}

// TelemetryHook is a function type that performs operations on [TelemetryData]
// after an extraction has finished which can be used to submit the [TelemetryData]
// to a telemetry service, for example.
type TelemetryHook func(context.Context, *TelemetryData)

// Equals returns true if the given [TelemetryData] is equal to the receiver.
// Duration and error are not compared.
func (td *TelemetryData) Equals(other *TelemetryData) bool {
	if td == nil && other == nil {
		return true
	}
	if td == nil || other == nil {
		return false
	}
	return td.AbandonedFiles == other.AbandonedFiles &&
		td.ChunksIgnored == other.ChunksIgnored &&
		td.ChunksRead == other.ChunksRead &&
		td.ExtractionErrors == other.ExtractionErrors &&
		td.ExtractedFiles == other.ExtractedFiles &&
		td.ExtractionSize == other.ExtractionSize &&
		td.ExtractedType == other.ExtractedType &&
		td.InputSize == other.InputSize &&
		td.SkippedFiles == other.SkippedFiles &&
		td.LastSkippedFile == other.LastSkippedFile
}

// now is a function point that returns time.Now to the caller.
var now = time.Now

// captureExtractionDuration captures the duration of the extraction
func captureExtractionDuration(td *TelemetryData, start time.Time) {
	td.ExtractionDuration = now().Sub(start)
}
