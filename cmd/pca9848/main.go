// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// pca9848 controls a PCA9848 I²C multiplexer.
//
// Usage:
//
//	pca9848 [flags] detect
//	pca9848 [flags] get
//	pca9848 [flags] set <mask>
//	pca9848 [flags] enable <channel|label>...
//	pca9848 [flags] disable <channel|label>...
//	pca9848 [flags] all
//	pca9848 [flags] none
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/dikkadev/prettyslog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/GermanBionicSystems/i2cmux/channelview"
	"github.com/GermanBionicSystems/i2cmux/pca9848"
)

func mainImpl() error {
	busName := flag.String("b", "", "I²C bus to use")
	addr := flag.Uint("a", 0, "I²C address of the multiplexer (default 0x70)")
	a0 := flag.Bool("a0", false, "A0 tied high; ignored when -a is set")
	a1 := flag.Bool("a1", false, "A1 tied high; ignored when -a is set")
	cfgPath := flag.String("c", "", "YAML file with bus, address and channel labels")
	verbose := flag.Bool("v", false, "verbose mode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: pca9848 [flags] detect|get|set <mask>|enable <ch>...|disable <ch>...|all|none\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(prettyslog.NewPrettyslogHandler("pca9848",
		prettyslog.WithLevel(level),
	)))

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		return errors.New("missing command")
	}

	cfg := &config{}
	if *cfgPath != "" {
		var err error
		if cfg, err = loadConfig(*cfgPath); err != nil {
			return err
		}
		slog.Debug("loaded config", "path", *cfgPath, "labels", len(cfg.Channels))
	}
	if *busName == "" {
		*busName = cfg.Bus
	}

	if _, err := host.Init(); err != nil {
		return err
	}
	bus, err := i2creg.Open(*busName)
	if err != nil {
		return err
	}
	defer bus.Close()
	slog.Debug("opened bus", "bus", bus.String())

	if args[0] == "detect" {
		if len(args) != 1 {
			return errors.New("detect takes no argument")
		}
		return detect(bus)
	}

	mux := pca9848.New(bus, pca9848.DefaultAddr)
	switch {
	case *addr != 0:
		if !pca9848.IsAddressValid(uint16(*addr)) {
			return fmt.Errorf("invalid address %#x", *addr)
		}
		mux.SetAddr(uint16(*addr))
	case *a0 || *a1:
		mux.SetAddrPins(*a0, *a1)
	case cfg.Address != 0:
		mux.SetAddr(cfg.Address)
	}
	slog.Debug("using multiplexer", "dev", mux.String())
	return run(mux, cfg, args[0], args[1:])
}

func detect(bus i2c.Bus) error {
	found := make([]uint16, len(pca9848.Addresses()))
	n := pca9848.Detect(bus, found)
	if n == 0 {
		return errors.New("no PCA9848 found")
	}
	for _, a := range found[:n] {
		fmt.Printf("%#x\n", a)
	}
	return nil
}

func run(mux *pca9848.Dev, cfg *config, cmd string, args []string) error {
	var err error
	switch cmd {
	case "get":
		if len(args) != 0 {
			return errors.New("get takes no argument")
		}
		return show(mux, cfg)
	case "set":
		if len(args) != 1 {
			return errors.New("set takes exactly one mask")
		}
		var v uint64
		if v, err = strconv.ParseUint(args[0], 0, 8); err != nil {
			return fmt.Errorf("invalid mask %q", args[0])
		}
		err = mux.SetChannels(byte(v))
	case "enable", "disable":
		if len(args) == 0 {
			return fmt.Errorf("%s needs at least one channel", cmd)
		}
		var m byte
		if m, err = cfg.mask(args); err != nil {
			return err
		}
		if cmd == "enable" {
			err = mux.EnableChannels(m)
		} else {
			err = mux.DisableChannels(m)
		}
	case "all":
		err = mux.EnableAll()
	case "none":
		err = mux.DisableAll()
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		slog.Error("command failed", "cmd", cmd, "status", mux.Status().String(), "err", err)
		return err
	}
	slog.Info("control register written", "cmd", cmd, "mask", fmt.Sprintf("%#04x", mux.LastCtrl()))
	return show(mux, cfg)
}

func show(mux *pca9848.Dev, cfg *config) error {
	mask, err := mux.Channels()
	if err != nil {
		return err
	}
	v := channelview.New(&channelview.Opts{Labels: true})
	if err := v.Show(mask); err != nil {
		return err
	}
	if err := v.Halt(); err != nil {
		return err
	}
	if l := cfg.labels(mask); len(l) != 0 {
		fmt.Println(strings.Join(l, " "))
	}
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "pca9848: %s.\n", err)
		os.Exit(1)
	}
}
