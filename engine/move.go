// move.go implements the packed move encoding of spec.md §3/§4.4: a move is
// a single integer carrying from/to/captured/promoted/flags and an
// ordering score, so move lists never allocate per-field structs.

package engine

// Move packs a single chess move into one integer.
//
//	bits  0-5  from square
//	bits  6-11 to square
//	bits 12-15 captured piece type nybble (0xF = none)
//	bits 16-19 promoted-to piece type nybble (0xF = none)
//	bit   20   capture flag
//	bit   21   promotion flag
//	bit   22   castle flag
//	bit   23   en-passant flag
//	bit   24   pawn-start (double push) flag
//	bits  25+  move-ordering score
type Move int32

const noPieceNybble = 0xF

const (
	moveFromShift      = 0
	moveToShift        = 6
	moveCapturedShift  = 12
	movePromotedShift  = 16
	moveCaptureFlag    = 1 << 20
	movePromotionFlag  = 1 << 21
	moveCastleFlag     = 1 << 22
	moveEnPassantFlag  = 1 << 23
	movePawnStartFlag  = 1 << 24
	moveScoreShift     = 25
	moveSquareMask     = 0x3F
	moveNybbleMask     = 0xF
)

// MoveFlags selects which of the mutually-exclusive special-move bits (at
// most one of castle/en-passant/pawn-start) is set on a move.
type MoveFlags int32

const (
	FlagCapture   MoveFlags = moveCaptureFlag
	FlagPromotion MoveFlags = movePromotionFlag
	FlagCastle    MoveFlags = moveCastleFlag
	FlagEnPassant MoveFlags = moveEnPassantFlag
	FlagPawnStart MoveFlags = movePawnStartFlag
)

// NoPieceType is the sentinel figure value used in the captured/promoted
// nybbles of a packed move when no piece is present.
const NoPieceType PieceType = noPieceNybble

// EncodeMove packs a move from its fields. Pass NoPieceType for
// captured/promoted when the move is not a capture/promotion.
func EncodeMove(from, to Square, captured, promoted PieceType, flags MoveFlags) Move {
	m := Move(int(from)&moveSquareMask) << moveFromShift
	m |= Move(int(to)&moveSquareMask) << moveToShift
	m |= Move(int(captured)&moveNybbleMask) << moveCapturedShift
	m |= Move(int(promoted)&moveNybbleMask) << movePromotedShift
	m |= Move(flags)
	return m
}

// From returns the origin square.
func (m Move) From() Square { return Square((m >> moveFromShift) & moveSquareMask) }

// To returns the destination square.
func (m Move) To() Square { return Square((m >> moveToShift) & moveSquareMask) }

// CapturedType returns the captured piece's type, or NoPieceType if the
// move is not a capture.
func (m Move) CapturedType() PieceType { return PieceType((m >> moveCapturedShift) & moveNybbleMask) }

// PromotedType returns the promoted-to piece type, or NoPieceType if the
// move is not a promotion.
func (m Move) PromotedType() PieceType { return PieceType((m >> movePromotedShift) & moveNybbleMask) }

// IsCapture reports whether m captures a piece (including en passant).
func (m Move) IsCapture() bool { return m&moveCaptureFlag != 0 }

// IsPromotion reports whether m promotes a pawn.
func (m Move) IsPromotion() bool { return m&movePromotionFlag != 0 }

// IsCastle reports whether m is a castling move.
func (m Move) IsCastle() bool { return m&moveCastleFlag != 0 }

// IsEnPassant reports whether m is an en-passant capture.
func (m Move) IsEnPassant() bool { return m&moveEnPassantFlag != 0 }

// IsPawnStart reports whether m is a pawn double push.
func (m Move) IsPawnStart() bool { return m&movePawnStartFlag != 0 }

// IsQuiet reports whether m is neither a capture nor a promotion.
func (m Move) IsQuiet() bool { return !m.IsCapture() && !m.IsPromotion() }

// Move packs its ordering score into the top 7 bits of a 32-bit int, so
// only scores in this range survive WithScore/Score round-tripping.
const (
	maxMoveScore int32 = 63
	minMoveScore int32 = -64
)

// Score returns m's move-ordering score.
func (m Move) Score() int32 { return int32(m >> moveScoreShift) }

// WithScore returns m with its ordering score replaced by score, clamped to
// the range the packed field can hold ([-64,63]): a score outside that
// range would silently lose its high bits on encode (e.g. a score whose low
// 7 bits happen to be zero packs as an indistinguishable-from-quiet 0).
func (m Move) WithScore(score int32) Move {
	if score > maxMoveScore {
		score = maxMoveScore
	} else if score < minMoveScore {
		score = minMoveScore
	}
	return m&(1<<moveScoreShift-1) | Move(score)<<moveScoreShift
}

// NullMove is the zero move, used as a probe-miss / no-move sentinel. It
// decodes to from==to==A1 with no flags, which never occurs for a real
// move since from != to always.
const NullMove Move = 0

// promotionSymbol maps a promoted PieceType to its lowercase move-string
// letter.
var promotionSymbol = map[PieceType]byte{
	Knight: 'n',
	Bishop: 'b',
	Rook:   'r',
	Queen:  'q',
}

var symbolToPromotion = map[byte]PieceType{
	'n': Knight,
	'b': Bishop,
	'r': Rook,
	'q': Queen,
}

// String renders m in long algebraic move-string format: "e2e4", "a7a8q".
func (m Move) String() string {
	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string([]byte{promotionSymbol[m.PromotedType()]})
	}
	return s
}
