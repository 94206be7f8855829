// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package pca9848 controls the NXP PCA9848 8-channel I²C multiplexer.
//
// The device has a single 8 bit control register. Bit N enables downstream
// channel N; any combination of channels may be enabled at once.
//
// The two address pins A0 and A1 can each be tied to GND, VDD, SCL or SDA
// which gives 16 addresses: 0x58 to 0x5f and 0x70 to 0x77.
//
// Every operation performs at most one read and one write on the bus and is
// never retried. The outcome of the last transaction is returned as an error
// and is also kept for Dev.Status and Dev.OK.
//
// Dev does no locking. The caller must serialize access to the bus.
//
// # Datasheet
//
// https://www.nxp.com/docs/en/data-sheet/PCA9848.pdf
package pca9848
