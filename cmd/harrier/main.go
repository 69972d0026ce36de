// Copyright 2014-2016 The Zurichess Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command harrier is a UCI chess engine, adapted from zurichess/main.go:
// the flag parsing and stdin read loop keep the teacher's shape; logging
// is now routed through go-logr/logr (internal/obs) instead of the
// stdlib log package the teacher used directly.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/harrier-engine/harrier/board"
	"github.com/harrier-engine/harrier/eval"
	"github.com/harrier-engine/harrier/internal/obs"
)

var (
	buildVersion = "(devel)"
	buildTime    = "(just now)"

	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	version    = flag.Bool("version", false, "only print version and exit")
)

// evaluate adapts eval.Evaluate's White-relative score into the
// side-to-move-relative convention search.Driver's negamax pipeline
// expects.
func evaluate(pos *board.Position) int32 {
	score := eval.Evaluate(pos)
	if pos.ActiveSide() == board.Black {
		return -score
	}
	return score
}

func main() {
	fmt.Printf("harrier %v, built with %v at %v, running on %v\n",
		buildVersion, runtime.Version(), buildTime, runtime.GOARCH)

	flag.Parse()
	if *version {
		return
	}
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log := obs.New(os.Stdout)

	bio := bufio.NewReader(os.Stdin)
	u := newHarrierUCI(log)
	for {
		line, _, err := bio.ReadLine()
		if err != nil {
			log.Info("stdin closed", "error", err)
			break
		}
		if err := u.Execute(string(line)); err != nil {
			if err == errQuit {
				break
			}
			log.Info("command error", "line", string(line), "error", err.Error())
		}
	}
}
