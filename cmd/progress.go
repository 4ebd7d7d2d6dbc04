// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"
)

const (
	progressWidth = 50 // columns between the brackets
	progressLabel = 16 // columns for the file name
)

// progressBar renders one line per extracted file:
//
//	hello.txt       [##########################                        ]
type progressBar struct {
	w       io.Writer
	name    string
	printed int
	started bool
}

func newProgressBar(w io.Writer) *progressBar {
	return &progressBar{w: w}
}

// label returns the name padded or cut to the label width, followed by "[".
func label(name string) string {
	if len(name) < progressLabel {
		return name + strings.Repeat(" ", progressLabel-len(name)) + "["
	}
	return name[:progressLabel-3] + ".. ["
}

// percent returns extracted relative to total in steps of two percent.
func percent(extracted, total int64) int {
	if total <= 0 {
		return 0
	}
	var p int64
	if total < 1<<24 {
		p = extracted * 100 / total
	} else {
		p = extracted / 256 * 100 / (total >> 8)
	}
	p >>= 1
	if p > progressWidth {
		p = progressWidth
	}
	return int(p)
}

// update is a [sixpack.ProgressHook].
func (b *progressBar) update(name string, extracted, total int64) {
	if !b.started || name != b.name {
		b.started = true
		b.name = name
		b.printed = 0
		l := label(name)
		fmt.Fprintf(b.w, "\n%s%s]\r%s", l, strings.Repeat(".", progressWidth), l)
	}

	p := percent(extracted, total)
	if p > b.printed {
		fmt.Fprint(b.w, strings.Repeat("#", p-b.printed))
		b.printed = p
	}
}

// finish terminates the output.
func (b *progressBar) finish() {
	fmt.Fprint(b.w, "\n\n")
}
