// Package eval provides a reference static evaluation function for the
// engine package's pluggable engine.Evaluator hook (spec.md §1 treats
// static evaluation as external to the search core).
//
// Grounded on original_source/evaluate.c's pieceValue tables (material plus
// a per-square positional bonus), reworked from a flat C array indexed by
// [piece][square] into Go piece-square tables indexed the way
// engine.Square counts squares (A1=0 .. H8=63, rank-major). The teacher's
// own material.go/weights.go implement a much larger, trained evaluation
// function tied to a specific feature-extraction scheme; that is out of
// reach to faithfully reproduce by hand, so this package instead adapts
// the simpler untrained tables of the original source.
package eval

import (
	"github.com/op/go-logging"

	"github.com/corviid/bitchess/engine"
)

var log = logging.MustGetLogger("eval")

// pieceSquareTable holds one value per square, in rank-1-first order (a1,
// b1, ..., h1, a2, ..., h8) to match engine.Square.
type pieceSquareTable [64]int

// whitePawnPST etc. are transcribed from original_source/evaluate.c's
// pieceValue tables, which list squares rank-8-first; flipRank below
// reorders them to rank-1-first.
var whitePawnPST = flipRank(pieceSquareTable{
	0, 0, 0, 0, 0, 0, 0, 0,
	10, 10, 0, -10, -10, 0, 10, 10,
	5, 0, 0, 5, 5, 0, 0, 5,
	0, 0, 10, 20, 20, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	30, 30, 30, 40, 40, 30, 30, 30,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0,
})

var whiteKnightPST = flipRank(pieceSquareTable{
	-10, -10, 0, 0, 0, 0, -10, -10,
	0, 0, 0, 5, 5, 0, 0, 0,
	0, 0, 10, 10, 10, 10, 0, 0,
	0, 5, 10, 20, 20, 10, 5, 0,
	5, 10, 15, 20, 20, 15, 10, 5,
	5, 10, 10, 20, 20, 10, 10, 5,
	0, 0, 5, 10, 10, 5, 0, 0,
	-10, 0, 0, 0, 0, 0, 0, -10,
})

var whiteBishopPST = flipRank(pieceSquareTable{
	-20, 0, -10, 0, 0, -10, 0, -20,
	0, 0, 0, 10, 10, 0, 0, 0,
	0, 0, 10, 15, 15, 10, 0, 0,
	0, 10, 15, 20, 20, 15, 10, 0,
	0, 10, 15, 20, 20, 15, 10, 0,
	0, 0, 10, 15, 15, 10, 0, 0,
	0, 0, 0, 10, 10, 0, 0, 0,
	-20, 0, 0, 0, 0, 0, 0, -20,
})

var whiteRookPST = flipRank(pieceSquareTable{
	0, 0, 5, 10, 10, 5, 0, 0,
	0, 0, 5, 10, 10, 5, 0, 0,
	0, 0, 5, 10, 10, 5, 0, 0,
	0, 0, 5, 10, 10, 5, 0, 0,
	0, 0, 5, 10, 10, 5, 0, 0,
	0, 0, 5, 10, 10, 5, 0, 0,
	25, 25, 25, 25, 25, 25, 25, 25,
	0, 0, 5, 10, 10, 5, 0, 0,
})

// Queen and king have no positional bonus in the original source; material
// value alone scores them.
var zeroPST = pieceSquareTable{}

// flipRank reorders a rank-8-first table (as transcribed directly from
// original_source/evaluate.c) into rank-1-first order.
func flipRank(t pieceSquareTable) pieceSquareTable {
	var out pieceSquareTable
	for r := 0; r < 8; r++ {
		copy(out[r*8:r*8+8], t[(7-r)*8:(7-r)*8+8])
	}
	return out
}

// pieceValue mirrors engine's material values; kept separate so this
// package has no dependency on engine's unexported pieceValue table.
var pieceValue = [6]int{
	engine.Pawn:   100,
	engine.Knight: 320,
	engine.Bishop: 330,
	engine.Rook:   500,
	engine.Queen:  900,
	engine.King:   0,
}

var whitePST = [6]pieceSquareTable{
	engine.Pawn:   whitePawnPST,
	engine.Knight: whiteKnightPST,
	engine.Bishop: whiteBishopPST,
	engine.Rook:   whiteRookPST,
	engine.Queen:  zeroPST,
	engine.King:   zeroPST,
}

func init() {
	log.Debugf("loaded %d piece-square tables", len(whitePST))
}

// pstValue returns the positional bonus for a pt piece of color c on sq,
// mirroring the white table vertically for black (a standard way to reuse
// one table for both colors, since the original source instead listed a
// separate, vertically-mirrored table per color).
func pstValue(c engine.Color, pt engine.PieceType, sq engine.Square) int {
	if c == engine.White {
		return whitePST[pt][sq]
	}
	mirrored := engine.RankFile(7-sq.Rank(), sq.File())
	return whitePST[pt][mirrored]
}

// Evaluate scores pos from the perspective of pos.SideToMove: positive
// means the side to move stands better. It satisfies engine.Evaluator.
func Evaluate(pos *engine.Position) int {
	var score int
	for pt := engine.Pawn; pt <= engine.King; pt++ {
		for bb := pos.ByPiece(engine.White, pt); bb != 0; {
			sq := bb.Pop()
			score += pieceValue[pt] + pstValue(engine.White, pt, sq)
		}
		for bb := pos.ByPiece(engine.Black, pt); bb != 0; {
			sq := bb.Pop()
			score -= pieceValue[pt] + pstValue(engine.Black, pt, sq)
		}
	}
	if pos.SideToMove == engine.Black {
		return -score
	}
	return score
}
