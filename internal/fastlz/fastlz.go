// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package fastlz implements the decoder of the FastLZ block format
// (byte-aligned LZ77, levels 1 and 2).
//
// The decoder never writes past len(dst) and accepts blocks produced at
// either compression level; the level is encoded in the three most
// significant bits of the first byte.
package fastlz

import (
	"errors"
	"fmt"
)

// Version is the FastLZ format revision understood by this package.
const Version = "0.5.0"

// maxL2Distance is the largest distance reachable without the 16-bit
// distance extension of level 2.
const maxL2Distance = 8191

var (
	// ErrCorrupt is returned when the input refers outside of the
	// decoded data or ends in the middle of an instruction.
	ErrCorrupt = errors.New("fastlz: corrupt input")

	// ErrTooSmall is returned when the decoded data does not fit into dst.
	ErrTooSmall = errors.New("fastlz: output buffer too small")

	// ErrUnknownLevel is returned when the block header names a level
	// other than 1 or 2.
	ErrUnknownLevel = errors.New("fastlz: unknown compression level")
)

// Level returns the compression level recorded in the first byte of a block.
func Level(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	return int(src[0]>>5) + 1
}

// Decompress decodes the block in src into dst and returns the number of
// bytes written. At most len(dst) bytes are written.
func Decompress(src, dst []byte) (int, error) {
	if len(src) == 0 {
		return 0, ErrCorrupt
	}
	switch level := Level(src); level {
	case 1:
		return decompress1(src, dst)
	case 2:
		return decompress2(src, dst)
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownLevel, level)
	}
}

func decompress1(src, dst []byte) (int, error) {
	ip, op := 0, 0
	ipBound := len(src) - 2
	ctrl := int(src[ip] & 31)
	ip++

	for {
		if ctrl >= 32 {
			length := (ctrl >> 5) - 1
			ref := op - ((ctrl & 31) << 8) - 1
			if length == 7-1 {
				if ip > ipBound {
					return op, ErrCorrupt
				}
				length += int(src[ip])
				ip++
			}
			if ip >= len(src) {
				return op, ErrCorrupt
			}
			ref -= int(src[ip])
			ip++
			length += 3
			if op+length > len(dst) {
				return op, ErrTooSmall
			}
			if ref < 0 {
				return op, ErrCorrupt
			}
			op = copyMatch(dst, op, ref, length)
		} else {
			ctrl++
			if op+ctrl > len(dst) {
				return op, ErrTooSmall
			}
			if ip+ctrl > len(src) {
				return op, ErrCorrupt
			}
			op += copy(dst[op:], src[ip:ip+ctrl])
			ip += ctrl
		}

		if ip > ipBound {
			break
		}
		ctrl = int(src[ip])
		ip++
	}

	return op, nil
}

func decompress2(src, dst []byte) (int, error) {
	ip, op := 0, 0
	ipBound := len(src) - 2
	ctrl := int(src[ip] & 31)
	ip++

	for {
		if ctrl >= 32 {
			length := (ctrl >> 5) - 1
			ofs := (ctrl & 31) << 8
			ref := op - ofs - 1

			if length == 7-1 {
				for {
					if ip > ipBound {
						return op, ErrCorrupt
					}
					code := src[ip]
					ip++
					length += int(code)
					if code != 255 {
						break
					}
				}
			}
			if ip >= len(src) {
				return op, ErrCorrupt
			}
			code := src[ip]
			ip++
			ref -= int(code)
			length += 3

			// 16-bit distance
			if code == 255 && ofs == 31<<8 {
				if ip >= ipBound {
					return op, ErrCorrupt
				}
				ofs = int(src[ip])<<8 | int(src[ip+1])
				ip += 2
				ref = op - ofs - maxL2Distance - 1
			}

			if op+length > len(dst) {
				return op, ErrTooSmall
			}
			if ref < 0 {
				return op, ErrCorrupt
			}
			op = copyMatch(dst, op, ref, length)
		} else {
			ctrl++
			if op+ctrl > len(dst) {
				return op, ErrTooSmall
			}
			if ip+ctrl > len(src) {
				return op, ErrCorrupt
			}
			op += copy(dst[op:], src[ip:ip+ctrl])
			ip += ctrl
		}

		if ip >= len(src) {
			break
		}
		ctrl = int(src[ip])
		ip++
	}

	return op, nil
}

// copyMatch copies length bytes from dst[ref:] to dst[op:] one byte at a
// time, so that overlapping references repeat the pattern.
func copyMatch(dst []byte, op, ref, length int) int {
	for i := 0; i < length; i++ {
		dst[op+i] = dst[ref+i]
	}
	return op + length
}
