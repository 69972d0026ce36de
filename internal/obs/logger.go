// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package obs provides the structured logging sink cmd/harrier installs
// into search.Driver, mirroring the teacher's
// log.SetPrefix("info string ") convention (zurichess/uci.go) but
// backed by a real structured-logging front end, go-logr/logr, per
// SPEC_FULL.md §1.1. search itself never imports logr; cmd/harrier
// adapts the logr.Logger this package returns into search.Logger.
package obs

import (
	"fmt"
	"io"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// New returns a logr.Logger that writes one "info string ..." line per
// record to w, safe for concurrent use by multiple search workers.
func New(w io.Writer) logr.Logger {
	var mu sync.Mutex
	return funcr.New(func(prefix, args string) {
		mu.Lock()
		defer mu.Unlock()
		if prefix != "" {
			fmt.Fprintf(w, "info string %s %s\n", prefix, args)
			return
		}
		fmt.Fprintf(w, "info string %s\n", args)
	}, funcr.Options{})
}
