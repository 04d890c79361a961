// SPDX-License-Identifier: Apache-2.0
// This file is part of the entity-bin project.

package entitybin

// LogFunc receives a trace message during decode/encode when verbose
// logging is enabled. The core package stays a pure byte-in/byte-out
// transform with no logging library dependency of its own; the CLI
// layer (which does use log/slog) is the only place these messages
// need a structured sink.
type LogFunc func(format string, args ...any)

// Options configures a Codec.
type Options struct {
	// Verbose enables LogCb calls at each major decode/encode stage.
	Verbose bool
	// LogCb receives trace messages when Verbose is set. Defaults to a
	// no-op if nil.
	LogCb LogFunc
}

func (o *Options) logf(format string, args ...any) {
	if o == nil || !o.Verbose || o.LogCb == nil {
		return
	}
	o.LogCb(format, args...)
}
