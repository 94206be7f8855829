// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package channelview

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func TestShow(t *testing.T) {
	on := color.NRGBA{0xff, 0x00, 0x00, 0xff}
	off := color.NRGBA{0x00, 0x00, 0xff, 0xff}
	buf := bytes.Buffer{}
	d := NewWriter(&buf, &Opts{On: on, Off: off})
	if err := d.Show(0x81); err != nil {
		t.Fatal(err)
	}
	s := buf.String()
	if n := strings.Count(s, ansi256.Default.Block(on)); n != 2 {
		t.Errorf("got %d enabled blocks, want 2: %q", n, s)
	}
	if n := strings.Count(s, ansi256.Default.Block(off)); n != 6 {
		t.Errorf("got %d disabled blocks, want 6: %q", n, s)
	}
	if !strings.HasSuffix(s, " 0x81") {
		t.Errorf("missing mask suffix: %q", s)
	}
	if !strings.HasPrefix(s, "\r\033[0m") {
		t.Errorf("missing line reset: %q", s)
	}
}

func TestShow_labels(t *testing.T) {
	buf := bytes.Buffer{}
	d := NewWriter(&buf, &Opts{Channels: 4, Labels: true})
	if err := d.Show(0x00); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(buf.String(), " 0x00\n0123") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestShow_default_colors(t *testing.T) {
	buf := bytes.Buffer{}
	d := NewWriter(&buf, &Opts{On: color.NRGBA{0x00, 0x00, 0xff, 0xff}})
	if err := d.Show(0x01); err != nil {
		t.Fatal(err)
	}
	off := ansi256.Default.Block(color.NRGBA{0x30, 0x30, 0x30, 0xff})
	if n := strings.Count(buf.String(), off); n != 7 {
		t.Errorf("got %d default disabled blocks, want 7: %q", n, buf.String())
	}
}

func TestHalt(t *testing.T) {
	buf := bytes.Buffer{}
	d := NewWriter(&buf, nil)
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m\n" {
		t.Errorf("Halt() wrote %q", buf.String())
	}
	if d.String() != "ChannelView" {
		t.Errorf("String() = %q", d.String())
	}
}
