// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/yaml.v2"

	"github.com/GermanBionicSystems/i2cmux/pca9848"
)

// config is the optional YAML file given with -c.
//
//	bus: "1"
//	address: 0x71
//	channels:
//	  0: imu
//	  3: display
type config struct {
	Bus      string         `yaml:"bus"`
	Address  uint16         `yaml:"address"`
	Channels map[int]string `yaml:"channels"`
}

func loadConfig(path string) (*config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (*config, error) {
	c := &config{}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, err
	}
	if c.Address != 0 && !pca9848.IsAddressValid(c.Address) {
		return nil, fmt.Errorf("invalid address %#x", c.Address)
	}
	seen := map[string]int{}
	for ch, label := range c.Channels {
		if ch < 0 || ch >= pca9848.NumChannels {
			return nil, fmt.Errorf("invalid channel %d", ch)
		}
		if label == "" {
			return nil, fmt.Errorf("empty label for channel %d", ch)
		}
		if other, ok := seen[label]; ok {
			return nil, fmt.Errorf("label %q used by channels %d and %d", label, other, ch)
		}
		seen[label] = ch
	}
	return c, nil
}

// channel resolves a channel number or label.
func (c *config) channel(arg string) (int, error) {
	if ch, err := strconv.Atoi(arg); err == nil {
		if ch < 0 || ch >= pca9848.NumChannels {
			return 0, fmt.Errorf("invalid channel %d", ch)
		}
		return ch, nil
	}
	for ch, label := range c.Channels {
		if label == arg {
			return ch, nil
		}
	}
	return 0, fmt.Errorf("unknown channel %q", arg)
}

// mask resolves a list of channel numbers or labels into a mask.
func (c *config) mask(args []string) (byte, error) {
	var m byte
	for _, arg := range args {
		ch, err := c.channel(arg)
		if err != nil {
			return 0, err
		}
		m |= 1 << uint(ch)
	}
	return m, nil
}

// labels returns "N:label" for every labelled channel enabled in mask.
func (c *config) labels(mask byte) []string {
	var out []string
	for ch, label := range c.Channels {
		if mask&(1<<uint(ch)) != 0 {
			out = append(out, strconv.Itoa(ch)+":"+label)
		}
	}
	sort.Strings(out)
	return out
}
