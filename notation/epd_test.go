package notation

import (
	"testing"

	"github.com/harrier-engine/harrier/board"
)

func testFENHelper(t *testing.T, expected *board.Position, fen string) {
	epd, err := ParseFEN(fen)
	if err != nil {
		t.Error(err)
		return
	}

	actual := epd.Position
	for sq := board.A1; sq < board.SquareArraySize; sq++ {
		epi := expected.Get(sq)
		api := actual.Get(sq)
		if epi != api {
			t.Errorf("expected %v at %v, got %v", epi, sq, api)
		}
	}
	if expected.SideToMove != actual.SideToMove {
		t.Errorf("expected to move %v, got %v", expected.SideToMove, actual.SideToMove)
	}
	if expected.CastlingAbility() != actual.CastlingAbility() {
		t.Errorf("expected castling rights %v, got %v", expected.CastlingAbility(), actual.CastlingAbility())
	}
	if expected.EnpassantSquare() != actual.EnpassantSquare() {
		t.Errorf("expected enpassant square %v, got %v", expected.EnpassantSquare(), actual.EnpassantSquare())
	}
}

func TestFENStartPosition(t *testing.T) {
	expected, err := board.PositionFromFEN(board.FENStartPos)
	if err != nil {
		t.Fatal(err)
	}
	testFENHelper(t, expected, board.FENStartPos)
}

func TestFENKiwipete(t *testing.T) {
	const fenKiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	expected, err := board.PositionFromFEN(fenKiwipete)
	if err != nil {
		t.Fatal(err)
	}
	testFENHelper(t, expected, fenKiwipete)
}

func TestEPDParser(t *testing.T) {
	// An EPD taken from http://www.stmintz.com/ccc/index.php?id=20631
	line := `rnb2r1k/pp2p2p/2pp2p1/q2P1p2/8/1Pb2NP1/PB2PPBP/R2Q1RK1 w - - bm Qd2 Qe1; fmvn 123; hmvc 15; id "BK.14"; c9 "draw";`
	epd, err := ParseEPD(line)
	if err != nil {
		t.Fatal(err)
	}

	if expected := "BK.14"; expected != epd.Id {
		t.Fatalf("expected id %s, got %s", expected, epd.Id)
	}

	if len(epd.BestMove) != 2 {
		t.Fatalf("expected 2 best moves, got %d", len(epd.BestMove))
	}
	expectedBestMove := []string{"d1d2", "d1e1"}
	for i, bm := range epd.BestMove {
		if bm.UCI() != expectedBestMove[i] {
			t.Errorf("#%d expected best move %v, got %v", i, expectedBestMove[i], bm.UCI())
		}
	}

	if epd.Position.FullMoveNumber != 123 {
		t.Errorf("expected fullmove number %d, got %d", 123, epd.Position.FullMoveNumber)
	}
	if int(epd.Position.ClockPly()) != 15 {
		t.Errorf("expected halfmove clock %d, got %d", 15, epd.Position.ClockPly())
	}
	if epd.Comment["c9"] != "draw" {
		t.Errorf("expected comment %s, got %s", "draw", epd.Comment["c9"])
	}
}

func TestEPDString(t *testing.T) {
	line := `r3r1k1/ppqb1ppp/8/4p1NQ/8/2P5/PP3PPP/R3R1K1 b - - bm d7f5; id "BK.12";`

	epd, err := ParseEPD(line)
	if err != nil {
		t.Fatal(err)
	}

	if actual := epd.String(); actual != line {
		t.Errorf("invalid string:\n     got: %s\nexpected: %s\n", actual, line)
	}
}
