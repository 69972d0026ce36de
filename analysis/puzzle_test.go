package main

import (
	"context"
	"testing"

	"github.com/harrier-engine/harrier/notation"
	"github.com/harrier-engine/harrier/search"
)

// mateIn asserts driver finds one of epd's best moves within depth
// plies, grounded on the teacher's internal mates_test.go helper. The
// teacher read its EPD cases from testdata/mateIn{1,2}.epd; those files
// were never part of the retrieved pack, so the cases are inlined here
// instead of reading from disk.
func mateIn(t *testing.T, line string, depth int) {
	t.Helper()
	epd, err := notation.ParseEPD(line)
	if err != nil {
		t.Fatalf("invalid EPD %q: %v", line, err)
	}

	driver := search.NewDriver(search.DefaultOptions(), evaluate)
	best, _ := driver.Search(context.Background(), epd.Position, search.Limits{Depth: depth})

	for _, expected := range epd.BestMove {
		if expected == best {
			return
		}
	}
	t.Errorf("position %v: expected one of %v, got %v", epd.Position, epd.BestMove, best)
}

func TestMateInOneScholarsMate(t *testing.T) {
	// The position right before Qxf7# in Scholar's mate.
	mateIn(t, `r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - bm h5f7; hmvc 4; fmvn 4;`, 3)
}

func TestMateInOneQueenEndgame(t *testing.T) {
	// King+queen vs lone king: Kb6 confines Ka8 to a7/b7/b8, Qd1-d8#
	// covers b8 along the rank while the king covers a7 and b7.
	mateIn(t, `k7/8/1K6/8/8/8/8/3Q4 w - - bm d1d8;`, 3)
}
