// Command puzzle tries to solve tactics puzzles from an EPD file,
// adapted from the teacher's puzzle/puzzle.go: same file-driven
// solve-and-report loop, now wired onto search.Driver. A puzzle counts
// as solved when the driver's single best move is one of the EPD's bm
// moves.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/harrier-engine/harrier/board"
	"github.com/harrier-engine/harrier/eval"
	"github.com/harrier-engine/harrier/notation"
	"github.com/harrier-engine/harrier/search"
)

var (
	input      = flag.String("input", "", "file with EPD lines")
	output     = flag.String("output", "", "file to write EPD with solutions")
	deadline   = flag.Duration("deadline", 0, "how much time to spend for each move")
	maxDepth   = flag.Int("max_depth", 0, "search up to max_depth plies")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	quiet      = flag.Bool("quiet", false, "don't print individual tests")
	threads    = flag.Int("threads", 1, "number of search workers")
	maxNodes   = flag.Uint64("max_nodes", 0, "maximum nodes to search")
)

func evaluate(pos *board.Position) int32 {
	score := eval.Evaluate(pos)
	if pos.ActiveSide() == board.Black {
		return -score
	}
	return score
}

func main() {
	log.SetFlags(log.Lshortfile)

	flag.Parse()
	if *input == "" {
		log.Fatal("--input not specified")
	}
	if *cpuprofile != "" {
		fin, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(fin)
		defer pprof.StopCPUProfile()
	}

	fin, err := os.Open(*input)
	if err != nil {
		log.Fatalf("cannot open %s for reading: %v", *input, err)
	}
	defer fin.Close()

	var fout *os.File
	if *output != "" {
		if fout, err = os.Create(*output); err != nil {
			log.Fatalf("cannot open %s for writing: %v", *output, err)
		}
		defer fout.Close()
	}

	opts := search.DefaultOptions()
	opts.Threads = *threads
	driver := search.NewDriver(opts, evaluate)

	var limits search.Limits
	if *deadline != 0 {
		limits.MoveTime = *deadline
	} else if *maxDepth != 0 {
		limits.Depth = *maxDepth
	} else {
		log.Fatal("--deadline or --max_depth must be specified")
	}

	var totalNodes uint64
	solvedTests, numTests := 0, 0

	buf := bufio.NewReader(fin)
	for i, o := 0, 0; ; i++ {
		line, err := buf.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				log.Fatal(err)
			}
			break
		}

		line = strings.SplitN(line, "#", 2)[0]
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		epd, err := notation.ParseEPD(line)
		if err != nil {
			log.Println("error:", err)
			log.Println("skipping", line)
			continue
		}

		actual, _ := driver.Search(context.Background(), epd.Position, limits)
		nodes := driver.Nodes()
		totalNodes += nodes

		numTests++
		for _, expected := range epd.BestMove {
			if expected == actual {
				solvedTests++
				break
			}
		}

		if !*quiet {
			if o%25 == 0 {
				fmt.Println()
				fmt.Println("line    bm actual  nodes  correct  epd")
				fmt.Println("----+------+------+------+--------+---")
			}
			fmt.Printf("%4d %6s %6s %5dK %4d/%4d %s\n",
				i+1, firstMoveString(epd.BestMove), actual.UCI(),
				nodes/1000, solvedTests, numTests, line)
			o++
		}

		if fout != nil {
			epd.BestMove = []board.Move{actual}
			fmt.Fprintln(fout, epd.String())
		}

		if *maxNodes != 0 && totalNodes > *maxNodes {
			break
		}
	}

	fmt.Printf("%s solved %d out of %d ; nodes %d\n", *input, solvedTests, numTests, totalNodes)
}

func firstMoveString(moves []board.Move) string {
	if len(moves) == 0 {
		return "-"
	}
	return moves[0].UCI()
}
