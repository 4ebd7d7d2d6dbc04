// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package sixpack extracts files from 6pack archives.
//
// A 6pack archive starts with an 8 byte signature followed by a sequence of
// chunks. Every chunk has a 16 byte little-endian header and a payload. A
// file entry chunk announces the name and size of the next output file, the
// data chunks that follow carry its content either stored or compressed with
// FastLZ. Every chunk payload is protected by an Adler-32 checksum.
//
// Configuration is done using the [Config], which is created with [NewConfig]
// and adjusted with options in the option pattern style. Extracted files are
// written to a [Target], either the local filesystem ([TargetDisk]) or memory
// ([TargetMemory]). Telemetry data is captured during the extraction and
// handed to the configured [TelemetryHook] once the run is finished.
package sixpack
