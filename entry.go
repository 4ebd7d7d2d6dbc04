// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"encoding/binary"
	"fmt"
)

// fileEntryNameOffset is the offset of the name in a file entry payload.
// It is also the smallest payload, a file entry with an empty name.
const fileEntryNameOffset = 10

// FileEntry is the payload of a file entry chunk.
//
//	offset 0  u32 decompressed size
//	offset 4  4 reserved bytes
//	offset 8  u16 name length
//	offset 10 name
type FileEntry struct {
	Size uint32
	Name string
}

// ParseFileEntry decodes a file entry payload. A name length that runs past
// the end of the payload is cut to the available bytes.
func ParseFileEntry(payload []byte) (FileEntry, error) {
	if len(payload) < fileEntryNameOffset {
		return FileEntry{}, fmt.Errorf("file entry needs at least %d bytes, got %d", fileEntryNameOffset, len(payload))
	}

	nameLength := int(binary.LittleEndian.Uint16(payload[8:10]))
	if available := len(payload) - fileEntryNameOffset; nameLength > available {
		nameLength = available
	}

	return FileEntry{
		Size: binary.LittleEndian.Uint32(payload[0:4]),
		Name: string(payload[fileEntryNameOffset : fileEntryNameOffset+nameLength]),
	}, nil
}

// AppendBinary appends the encoded entry to b. Names longer than 65535
// bytes are cut.
func (e FileEntry) AppendBinary(b []byte) []byte {
	name := e.Name
	if len(name) > 0xffff {
		name = name[:0xffff]
	}
	b = binary.LittleEndian.AppendUint32(b, e.Size)
	b = append(b, 0, 0, 0, 0)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(name)))
	return append(b, name...)
}
