// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9848

import (
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
)

// ChannelBus is an i2c.Bus that reaches the devices behind one channel of the
// multiplexer.
//
// Each Tx selects the channel first unless it is already the only channel
// enabled in the mask last read or written.
type ChannelBus struct {
	d  *Dev
	ch int
}

// Bus returns the bus behind channel ch.
func (d *Dev) Bus(ch int) (*ChannelBus, error) {
	if !validChannel(ch) {
		return nil, fmt.Errorf("pca9848: invalid channel %d", ch)
	}
	return &ChannelBus{d: d, ch: ch}, nil
}

// Channel returns the channel number.
func (c *ChannelBus) Channel() int {
	return c.ch
}

// Tx implements i2c.Bus.
func (c *ChannelBus) Tx(addr uint16, w, r []byte) error {
	if addr == c.d.Addr() {
		return fmt.Errorf("pca9848: address %#x is the multiplexer itself", addr)
	}
	if err := c.selectChannel(); err != nil {
		return err
	}
	return c.d.bus.Tx(addr, w, r)
}

// SetSpeed implements i2c.Bus. It changes the speed of the parent bus.
func (c *ChannelBus) SetSpeed(f physic.Frequency) error {
	if c.d.bus == nil {
		return ErrNotAttached
	}
	return c.d.bus.SetSpeed(f)
}

// Close implements i2c.BusCloser. The parent bus is left open.
func (c *ChannelBus) Close() error {
	return nil
}

func (c *ChannelBus) String() string {
	return c.d.String() + "/ch" + strconv.Itoa(c.ch)
}

func (c *ChannelBus) selectChannel() error {
	want := byte(1) << uint(c.ch)
	if c.d.OK() && c.d.known == want {
		return nil
	}
	return c.d.SetChannels(want)
}

// RegisterBuses registers the eight channel buses in i2creg as
// "<prefix>_ch0" to "<prefix>_ch7".
func (d *Dev) RegisterBuses(prefix string) error {
	for ch := 0; ch < NumChannels; ch++ {
		c, _ := d.Bus(ch)
		opener := func() (i2c.BusCloser, error) { return c, nil }
		if err := i2creg.Register(busName(prefix, ch), nil, -1, opener); err != nil {
			return err
		}
	}
	return nil
}

// UnregisterBuses removes the buses added by RegisterBuses.
func (d *Dev) UnregisterBuses(prefix string) error {
	var errs []error
	for ch := 0; ch < NumChannels; ch++ {
		if err := i2creg.Unregister(busName(prefix, ch)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func busName(prefix string, ch int) string {
	return prefix + "_ch" + strconv.Itoa(ch)
}

var _ i2c.BusCloser = &ChannelBus{}
