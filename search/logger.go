// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// logger.go keeps the teacher's small Logger interface shape
// (engine.Logger, zurichess/uci.go's uciLogger) so a Driver can report
// search lifecycle events without search importing an I/O or logging
// library directly (spec.md §7, SPEC_FULL.md §1.1). cmd/harrier adapts
// a logr.Logger into this interface; search itself stays free of any
// concrete logging dependency.
package search

// Logger receives search lifecycle notifications.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(info Info)
}

// NopLogger discards every notification; it is the default a Driver
// uses until SetLogger is called.
type NopLogger struct{}

func (NopLogger) BeginSearch()  {}
func (NopLogger) EndSearch()    {}
func (NopLogger) PrintPV(Info) {}
