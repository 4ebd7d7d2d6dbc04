// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package adler32 implements the Adler-32 checksum (RFC 1950, section 8.2)
// as a seedable update function, so that a checksum can be carried across
// several calls over consecutive byte ranges.
package adler32

const (
	// mod is the largest prime smaller than 65536.
	mod = 65521

	// nmax is the largest n such that 255n(n+1)/2 + (n+1)(mod-1) <= 2^32-1.
	// Both sums have to be reduced at least every nmax bytes.
	nmax = 5552
)

// Init is the seed for a fresh checksum.
const Init uint32 = 1

// Update returns the Adler-32 checksum of p appended to the data already
// summarized by checksum. Use [Init] as the seed for a new computation.
func Update(checksum uint32, p []byte) uint32 {
	s1, s2 := checksum&0xffff, checksum>>16
	for len(p) > 0 {
		var q []byte
		if len(p) > nmax {
			p, q = p[:nmax], p[nmax:]
		}
		for len(p) >= 8 {
			s1 += uint32(p[0])
			s2 += s1
			s1 += uint32(p[1])
			s2 += s1
			s1 += uint32(p[2])
			s2 += s1
			s1 += uint32(p[3])
			s2 += s1
			s1 += uint32(p[4])
			s2 += s1
			s1 += uint32(p[5])
			s2 += s1
			s1 += uint32(p[6])
			s2 += s1
			s1 += uint32(p[7])
			s2 += s1
			p = p[8:]
		}
		for _, b := range p {
			s1 += uint32(b)
			s2 += s1
		}
		s1 %= mod
		s2 %= mod
		p = q
	}
	return s2<<16 | s1
}

// Checksum returns the Adler-32 checksum of p.
func Checksum(p []byte) uint32 {
	return Update(Init, p)
}
