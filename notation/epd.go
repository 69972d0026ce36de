// Package notation implements parsing of chess positions.
//
// Current supported formats are FEN and EPD notations.
package notation

import (
	"strings"

	"github.com/harrier-engine/harrier/board"
)

// EPD is an Extended Position Description: a position plus a set of
// named operations (best move, id, comments) used by test suites.
type EPD struct {
	Position *board.Position
	Id       string
	BestMove []board.Move
	Comment  map[string]string
}

func parse(what int, line string) (*EPD, error) {
	lex := &epdLexer{
		what:   what,
		line:   line,
		pos:    -1,
		result: new(*epdNode),
	}
	if yyParse(lex) != 0 {
		return nil, lex.error
	}
	epd := &EPD{
		Comment: make(map[string]string),
	}
	if err := handleEPDNode(epd, *lex.result); err != nil {
		return nil, err
	}
	return epd, nil
}

// ParseFEN parses a FEN string and returns an EPD with no operations.
func ParseFEN(line string) (*EPD, error) {
	return parse(_hiddenFEN, line)
}

// ParseEPD parses an EPD string and returns an EPD.
func ParseEPD(line string) (*EPD, error) {
	return parse(_hiddenEPD, line)
}

func (e *EPD) String() string {
	fields := strings.Fields(e.Position.String())
	s := strings.Join(fields[:4], " ")

	for _, bm := range e.BestMove {
		s += " bm " + bm.UCI() + ";"
	}
	if e.Id != "" {
		s += ` id "` + e.Id + `";`
	}
	for k, v := range e.Comment {
		s += " " + k + ` "` + v + `";`
	}
	return s
}
