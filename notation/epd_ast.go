// epd_ast.go interprets the ast tree parsed from an EPD line.
// *Node structures correspond to grammar nodes in epd_parser.y.

package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/harrier-engine/harrier/board"
)

type epdNode struct {
	position   *positionNode
	operations *operationNode
}

type positionNode struct {
	piecePlacement  *tokenNode
	sideToMove      *tokenNode
	castlingAbility *tokenNode
	enpassantSquare *tokenNode
}

type operationNode struct {
	operator  *tokenNode
	arguments *argumentNode
	next      *operationNode
}

type argumentNode struct {
	param *tokenNode
	next  *argumentNode
}

type tokenNode struct {
	pos int
	str string
}

func newLeafError(n *tokenNode, err error) error {
	return fmt.Errorf("at %d %s: %v", n.pos, n.str, err)
}

func trimQuotes(str string) string {
	l := len(str)
	switch {
	case l < 2:
		return str
	case str[0] == '"' && str[l-1] == '"':
		return str[1 : l-1]
	default:
		return str
	}
}

// epdOperations collects the handful of operations handleEPDNode must
// see before the position can be built (fmvn/hmvc feed the FEN's last
// two fields, which board.PositionFromFEN requires up front).
type epdOperations struct {
	fullMoveNumber string
	halfMoveClock  string
}

func handleEPDNode(epd *EPD, n *epdNode) error {
	ops, err := scanOperations(n.operations)
	if err != nil {
		return err
	}

	pos, err := buildPosition(n.position, ops)
	if err != nil {
		return err
	}
	epd.Position = pos

	return handleOperationNode(epd, n.operations)
}

func scanOperations(n *operationNode) (epdOperations, error) {
	ops := epdOperations{fullMoveNumber: "1", halfMoveClock: "0"}
	for ; n != nil; n = n.next {
		ptr := n.arguments
		switch n.operator.str {
		case "fmvn":
			if ptr == nil || ptr.next != nil {
				return ops, newLeafError(n.operator, fmt.Errorf("fmvn expects exactly one argument"))
			}
			ops.fullMoveNumber = ptr.param.str
		case "hmvc":
			if ptr == nil || ptr.next != nil {
				return ops, newLeafError(n.operator, fmt.Errorf("hmvc expects exactly one argument"))
			}
			ops.halfMoveClock = ptr.param.str
		}
	}
	return ops, nil
}

func buildPosition(n *positionNode, ops epdOperations) (*board.Position, error) {
	fen := strings.Join([]string{
		n.piecePlacement.str,
		n.sideToMove.str,
		n.castlingAbility.str,
		n.enpassantSquare.str,
		ops.halfMoveClock,
		ops.fullMoveNumber,
	}, " ")
	pos, err := board.PositionFromFEN(fen)
	if err != nil {
		return nil, newLeafError(n.piecePlacement, err)
	}
	return pos, nil
}

// handleId handles the "id" operator.
func handleId(epd *EPD, n *operationNode) error {
	ptr := n.arguments
	if ptr == nil || ptr.next != nil {
		return newLeafError(ptr.param, fmt.Errorf("id expects exactly one argument"))
	}
	epd.Id = trimQuotes(ptr.param.str)
	return nil
}

// handleBestMove handles the "bm" operator.
func handleBestMove(epd *EPD, n *operationNode) error {
	for ptr := n.arguments; ptr != nil; ptr = ptr.next {
		move, err := SANToMove(epd.Position, ptr.param.str)
		if err != nil {
			uciMove, uciErr := epd.Position.MoveFromUCI(ptr.param.str)
			if uciErr != nil {
				return newLeafError(ptr.param, fmt.Errorf("invalid move: %v", err))
			}
			move = uciMove
		}
		epd.BestMove = append(epd.BestMove, move)
	}
	return nil
}

// fmvn/hmvc are consumed by scanOperations before the position exists;
// handleOperationNode still walks them here, and their handlers only
// check that the single argument is an integer.
func handleFullMoveNumber(epd *EPD, n *operationNode) error {
	ptr := n.arguments
	if ptr == nil || ptr.next != nil {
		return newLeafError(ptr.param, fmt.Errorf("fmvn expects exactly one argument"))
	}
	_, err := strconv.Atoi(ptr.param.str)
	return err
}

func handleHalfMoveClock(epd *EPD, n *operationNode) error {
	ptr := n.arguments
	if ptr == nil || ptr.next != nil {
		return newLeafError(ptr.param, fmt.Errorf("hmvc expects exactly one argument"))
	}
	_, err := strconv.Atoi(ptr.param.str)
	return err
}

func handleComment(epd *EPD, n *operationNode) error {
	ptr := n.arguments
	if ptr == nil || ptr.next != nil {
		return newLeafError(ptr.param, fmt.Errorf("%s expects exactly one argument", n.operator.str))
	}
	epd.Comment[n.operator.str] = trimQuotes(ptr.param.str)
	return nil
}

// handleMap is a map from operator to a function handling the node.
var handleMap = map[string]func(edp *EPD, n *operationNode) error{
	"id":   handleId,
	"bm":   handleBestMove,
	"fmvn": handleFullMoveNumber,
	"hmvc": handleHalfMoveClock,
	"c0":   handleComment,
	"c1":   handleComment,
	"c2":   handleComment,
	"c3":   handleComment,
	"c4":   handleComment,
	"c5":   handleComment,
	"c6":   handleComment,
	"c7":   handleComment,
	"c8":   handleComment,
	"c9":   handleComment,
}

func handleOperationNode(epd *EPD, n *operationNode) error {
	for ; n != nil; n = n.next {
		f, ok := handleMap[n.operator.str]
		if !ok {
			continue
		}
		if err := f(epd, n); err != nil {
			return err
		}
	}
	return nil
}
