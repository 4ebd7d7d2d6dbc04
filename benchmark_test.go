// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack_test

import (
	"bytes"
	"context"
	"testing"

	sixpack "github.com/hashicorp/go-sixpack"
)

func benchmarkArchive(size int, compressed bool) []byte {
	data := randomBytes(1, size)
	a := newTestArchive().file("bench.bin", size)
	for len(data) > 0 {
		n := len(data)
		if n > 65536 {
			n = 65536
		}
		if compressed {
			a.compressed(fastlzLiterals(data[:n]), n)
		} else {
			a.stored(data[:n])
		}
		data = data[n:]
	}
	return a.bytes()
}

func BenchmarkUnpack(b *testing.B) {
	for _, bc := range []struct {
		name       string
		compressed bool
	}{
		{name: "stored", compressed: false},
		{name: "compressed", compressed: true},
	} {
		archive := benchmarkArchive(4<<20, bc.compressed)
		b.Run(bc.name, func(b *testing.B) {
			b.SetBytes(4 << 20)
			for i := 0; i < b.N; i++ {
				err := sixpack.UnpackTo(context.Background(), sixpack.NewTargetMemory(), ".", bytes.NewReader(archive), nil)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
