// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package channelview draws the channel mask of an I²C multiplexer on a
// terminal using ANSI color codes.
//
// Each channel is one colored block, channel 0 on the left.
package channelview

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for the view.
type Opts struct {
	// Channels is the number of channels to draw. Defaults to 8.
	Channels int
	// On and Off are the block colors. The zero value selects green and dark
	// gray.
	On  color.NRGBA
	Off color.NRGBA
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Labels, if set, prints the channel index under each block.
	Labels bool

	_ struct{}
}

// Dev renders channel masks to a writer.
type Dev struct {
	w        io.Writer
	channels int
	on, off  string
	labels   bool

	buf bytes.Buffer
}

// New returns a Dev that writes to the console.
func New(opts *Opts) *Dev {
	return NewWriter(colorable.NewColorableStdout(), opts)
}

// NewWriter returns a Dev that writes to w.
func NewWriter(w io.Writer, opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	on, off := opts.On, opts.Off
	if on == (color.NRGBA{}) {
		on = color.NRGBA{0x00, 0xd0, 0x00, 0xff}
	}
	if off == (color.NRGBA{}) {
		off = color.NRGBA{0x30, 0x30, 0x30, 0xff}
	}
	n := opts.Channels
	if n <= 0 || n > 8 {
		n = 8
	}
	return &Dev{
		w:        w,
		channels: n,
		on:       p.Block(on),
		off:      p.Block(off),
		labels:   opts.Labels,
	}
}

func (d *Dev) String() string {
	return "ChannelView"
}

// Halt resets the terminal colors.
func (d *Dev) Halt() error {
	_, err := d.w.Write([]byte("\033[0m\n"))
	return err
}

// Show draws mask on a single line, overwriting the current line.
func (d *Dev) Show(mask byte) error {
	d.buf.Reset()
	_, _ = d.buf.WriteString("\r\033[0m")
	for i := 0; i < d.channels; i++ {
		if mask&(1<<uint(i)) != 0 {
			_, _ = d.buf.WriteString(d.on)
		} else {
			_, _ = d.buf.WriteString(d.off)
		}
	}
	_, _ = fmt.Fprintf(&d.buf, "\033[0m %#04x", mask)
	if d.labels {
		_, _ = d.buf.WriteString("\n")
		for i := 0; i < d.channels; i++ {
			_, _ = d.buf.WriteString(strconv.Itoa(i))
		}
	}
	_, err := d.buf.WriteTo(d.w)
	return err
}

var _ fmt.Stringer = &Dev{}
