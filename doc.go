// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package i2cmux is a container for the PCA9848 I²C multiplexer driver and
// its tools.
//
// See periph.io/x/conn/v3/i2c for the bus interface the driver builds on.
package i2cmux
