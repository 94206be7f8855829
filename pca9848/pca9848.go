// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package pca9848

import (
	"errors"
	"fmt"
	"math/bits"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
)

const (
	// DefaultAddr is the address with A0 and A1 both tied to GND.
	DefaultAddr uint16 = 0x70
	// NumChannels is the number of downstream channels.
	NumChannels = 8

	// ChannelsNone disables every channel.
	ChannelsNone byte = 0x00
	// ChannelsAll enables every channel.
	ChannelsAll byte = 0xff
)

// Status is the outcome of the last bus transaction.
type Status int

const (
	// StatusOK means the last transaction succeeded.
	StatusOK Status = 0
	// StatusUnavailable means no bus is attached or the bus reported an error.
	StatusUnavailable Status = 4
	// StatusNotAttempted means no transaction was attempted yet.
	StatusNotAttempted Status = -1
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusNotAttempted:
		return "not attempted"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ErrNotAttached is returned when an operation needs the bus and none is
// attached.
var ErrNotAttached = errors.New("pca9848: no bus attached")

// Dev is a handle to a PCA9848.
//
// The bus is borrowed. Dev never closes it.
type Dev struct {
	bus  i2c.Bus
	addr uint16
	// last is the last mask successfully written.
	last byte
	// known is the last mask successfully written or read back.
	known  byte
	status Status
	err    error
	tried  bool
}

// New returns a Dev bound to bus at addr. No transaction occurs.
//
// bus may be nil, in which case Attach must be called before use. An invalid
// addr is replaced by DefaultAddr.
func New(bus i2c.Bus, addr uint16) *Dev {
	d := &Dev{}
	d.Attach(bus, addr)
	return d
}

// Attach binds the bus and sets the address. No transaction occurs.
func (d *Dev) Attach(bus i2c.Bus, addr uint16) {
	d.bus = bus
	d.SetAddr(addr)
}

// Attached reports whether a bus is bound.
func (d *Dev) Attached() bool {
	return d.bus != nil
}

// IsAddressValid returns true if addr is one of the 16 addresses the PCA9848
// can be strapped to.
func IsAddressValid(addr uint16) bool {
	return (addr >= 0x58 && addr <= 0x5f) || (addr >= 0x70 && addr <= 0x77)
}

// Addresses returns the 16 valid addresses in scan order.
func Addresses() []uint16 {
	out := make([]uint16, 0, 16)
	for a := uint16(0x58); a <= 0x5f; a++ {
		out = append(out, a)
	}
	for a := uint16(0x70); a <= 0x77; a++ {
		out = append(out, a)
	}
	return out
}

// AddrFromPins returns the address selected when A0 and A1 are tied to fixed
// logic levels. Straps to SCL or SDA can't be expressed this way.
func AddrFromPins(a0, a1 bool) uint16 {
	addr := DefaultAddr
	if a0 {
		addr |= 0x01
	}
	if a1 {
		addr |= 0x02
	}
	return addr
}

// SetAddr changes the target address. An invalid address silently falls back
// to DefaultAddr.
func (d *Dev) SetAddr(addr uint16) {
	if !IsAddressValid(addr) {
		addr = DefaultAddr
	}
	d.addr = addr
}

// SetAddrPins sets the address from the A0 and A1 logic levels.
func (d *Dev) SetAddrPins(a0, a1 bool) {
	d.addr = AddrFromPins(a0, a1)
}

// Addr returns the target address.
func (d *Dev) Addr() uint16 {
	if d.addr == 0 {
		return DefaultAddr
	}
	return d.addr
}

// Detect probes the 16 valid addresses on bus, 0x58 to 0x5f first, with a one
// byte read of the control register. Responding addresses are stored in out
// until it is full.
//
// A zero length transaction is not used since some hosts, like Linux sysfs,
// accept it without putting anything on the wire.
//
// The returned count is the number of devices that responded, which may be
// larger than len(out).
func Detect(bus i2c.Bus, out []uint16) int {
	if bus == nil {
		return 0
	}
	n := 0
	r := [1]byte{}
	for _, a := range Addresses() {
		if err := bus.Tx(a, nil, r[:]); err != nil {
			continue
		}
		if n < len(out) {
			out[n] = a
		}
		n++
	}
	return n
}

// EnableChannel enables channel ch and leaves the others as they are.
//
// ch outside 0 to 7 is ignored.
func (d *Dev) EnableChannel(ch int) error {
	if !validChannel(ch) {
		return nil
	}
	return d.modify(func(v byte) byte { return v | 1<<uint(ch) })
}

// DisableChannel disables channel ch and leaves the others as they are.
//
// ch outside 0 to 7 is ignored.
func (d *Dev) DisableChannel(ch int) error {
	if !validChannel(ch) {
		return nil
	}
	return d.modify(func(v byte) byte { return v &^ (1 << uint(ch)) })
}

// SetChannels writes mask to the control register without reading it first.
func (d *Dev) SetChannels(mask byte) error {
	return d.writeControl(mask)
}

// EnableChannels enables the channels set in mask.
func (d *Dev) EnableChannels(mask byte) error {
	return d.modify(func(v byte) byte { return v | mask })
}

// DisableChannels disables the channels set in mask.
func (d *Dev) DisableChannels(mask byte) error {
	return d.modify(func(v byte) byte { return v &^ mask })
}

// EnableAll enables all channels.
func (d *Dev) EnableAll() error {
	return d.writeControl(ChannelsAll)
}

// DisableAll disables all channels.
func (d *Dev) DisableAll() error {
	return d.writeControl(ChannelsNone)
}

// ReadControl reads the control register.
func (d *Dev) ReadControl() (byte, error) {
	if d.bus == nil {
		return 0, d.fail(ErrNotAttached)
	}
	r := [1]byte{}
	if err := d.bus.Tx(d.Addr(), nil, r[:]); err != nil {
		return 0, d.fail(err)
	}
	d.succeed()
	d.known = r[0]
	return r[0], nil
}

// Channels returns the current channel mask.
//
// When the read fails, the mask last read or written successfully is returned
// along with the error.
func (d *Dev) Channels() (byte, error) {
	v, err := d.ReadControl()
	if err != nil {
		return d.known, err
	}
	return v, nil
}

// IsChannelEnabled reports whether channel ch is enabled. ch outside 0 to 7 is
// always disabled and causes no transaction.
func (d *Dev) IsChannelEnabled(ch int) (bool, error) {
	if !validChannel(ch) {
		return false, nil
	}
	v, err := d.Channels()
	return v&(1<<uint(ch)) != 0, err
}

// EnabledChannelCount returns the number of enabled channels.
func (d *Dev) EnabledChannelCount() (int, error) {
	v, err := d.Channels()
	return bits.OnesCount8(v), err
}

// Status returns the outcome of the last transaction.
func (d *Dev) Status() Status {
	if !d.tried {
		return StatusNotAttempted
	}
	return d.status
}

// OK returns true if the last transaction succeeded.
func (d *Dev) OK() bool {
	return d.Status() == StatusOK
}

// Err returns the error of the last transaction, or nil.
func (d *Dev) Err() error {
	return d.err
}

// LastCtrl returns the last mask successfully written to the device.
func (d *Dev) LastCtrl() byte {
	return d.last
}

// Halt implements conn.Resource.
//
// It disables all channels.
func (d *Dev) Halt() error {
	return d.DisableAll()
}

func (d *Dev) String() string {
	if d.bus == nil {
		return fmt.Sprintf("PCA9848{unattached, %#x}", d.Addr())
	}
	return fmt.Sprintf("PCA9848{%s, %#x}", d.bus, d.Addr())
}

// modify does a read-modify-write of the control register. Nothing is written
// if the read fails.
func (d *Dev) modify(f func(byte) byte) error {
	v, err := d.ReadControl()
	if err != nil {
		return err
	}
	return d.writeControl(f(v))
}

func (d *Dev) writeControl(mask byte) error {
	if d.bus == nil {
		return d.fail(ErrNotAttached)
	}
	if err := d.bus.Tx(d.Addr(), []byte{mask}, nil); err != nil {
		return d.fail(err)
	}
	d.succeed()
	d.last = mask
	d.known = mask
	return nil
}

func (d *Dev) succeed() {
	d.tried = true
	d.status = StatusOK
	d.err = nil
}

func (d *Dev) fail(err error) error {
	err = wrap(err)
	d.tried = true
	d.status = StatusUnavailable
	d.err = err
	return err
}

func wrap(err error) error {
	if err == nil || errors.Is(err, ErrNotAttached) {
		return err
	}
	return fmt.Errorf("pca9848: %w", err)
}

func validChannel(ch int) bool {
	return ch >= 0 && ch < NumChannels
}

var _ conn.Resource = &Dev{}
var _ fmt.Stringer = &Dev{}
