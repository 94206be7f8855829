// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sample = `
bus: "1"
address: 0x71
channels:
  0: imu
  3: display
  7: gps
`

func TestParseConfig(t *testing.T) {
	c, err := parseConfig([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	want := &config{
		Bus:      "1",
		Address:  0x71,
		Channels: map[int]string{0: "imu", 3: "display", 7: "gps"},
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Errorf("parseConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseConfig_errors(t *testing.T) {
	for _, data := range []string{
		"address: 0x65\n",
		"channels:\n  8: nope\n",
		"channels:\n  1: a\n  2: a\n",
		"channels:\n  1: \"\"\n",
		"speed: 100\n",
	} {
		if _, err := parseConfig([]byte(data)); err == nil {
			t.Errorf("parseConfig(%q) succeeded", data)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	p := filepath.Join(t.TempDir(), "mux.yaml")
	if err := os.WriteFile(p, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := loadConfig(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Address != 0x71 {
		t.Errorf("Address = %#x", c.Address)
	}
	if _, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMask(t *testing.T) {
	c, err := parseConfig([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	m, err := c.mask([]string{"imu", "2", "gps"})
	if err != nil {
		t.Fatal(err)
	}
	if m != 0x85 {
		t.Errorf("mask() = %#x, want 0x85", m)
	}
	for _, arg := range []string{"8", "-1", "radio"} {
		if _, err := c.channel(arg); err == nil {
			t.Errorf("channel(%q) succeeded", arg)
		}
	}
	if diff := cmp.Diff([]string{"0:imu", "7:gps"}, c.labels(0x83)); diff != "" {
		t.Errorf("labels() mismatch (-want +got):\n%s", diff)
	}
}
