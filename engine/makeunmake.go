// makeunmake.go implements Make/Unmake per spec.md §4.6: Make() applies a
// pseudo-legal move and reports whether it was legal (the mover's own king
// must not be left in check); Unmake() exactly reverses the most recent
// successful Make(). A move Make() rejects as illegal is already undone by
// Make() itself, so the caller must not call Unmake() for it.
//
// Grounded on the teacher's position.go DoMove/UndoMove, adapted to the
// twelve-Piece array model and to an explicit undo-record stack rather than
// the teacher's single-slot "temp" undo state, since spec.md's Unmake must
// work through arbitrarily deep recursion.

package engine

// pushHistory appends rec to pos.history, panicking if doing so would
// exceed MaxSearchPly. A search or game exceeding that many plies deep is a
// programmer error, not a recoverable condition (spec.md §5).
func (pos *Position) pushHistory(rec undoRecord) {
	if len(pos.history) >= MaxSearchPly {
		panic("engine: history stack exceeded MaxSearchPly")
	}
	pos.history = append(pos.history, rec)
}

// rookCastleSquares maps a king's castling destination square to the
// castling rook's from/to squares.
var rookCastleSquares = map[Square][2]Square{
	SquareG1: {SquareH1, SquareF1},
	SquareC1: {SquareA1, SquareD1},
	SquareG8: {SquareH8, SquareF8},
	SquareC8: {SquareA8, SquareD8},
}

// castleRightsLost maps a square to the castling rights permanently lost
// when a piece leaves (or a rook is captured on) that square.
var castleRightsLost = map[Square]Castle{
	SquareE1: WhiteOO | WhiteOOO,
	SquareA1: WhiteOOO,
	SquareH1: WhiteOO,
	SquareE8: BlackOO | BlackOOO,
	SquareA8: BlackOOO,
	SquareH8: BlackOO,
}

// Make applies m to pos. It returns false, and leaves pos exactly as if
// Make had never been called, if m would leave the mover's own king in
// check (the move was pseudo-legal but not legal). Every call to Make that
// returns true must be paired with exactly one call to Unmake, in LIFO
// order (spec.md §4.6, §8 invariant 1).
func (pos *Position) Make(m Move) bool {
	us := pos.SideToMove
	them := us.Opposite()
	from, to := m.From(), m.To()
	mover := pos.pieceAt[from]

	pos.pushHistory(undoRecord{
		move:         m,
		castleRights: pos.castleRights,
		halfmove:     pos.halfmove,
		epSquare:     pos.epSquare,
		key:          pos.key,
	})

	if pos.epSquare != noEnPassant {
		pos.key ^= zobristEnPassant[pos.epSquare]
	}
	pos.epSquare = noEnPassant

	if m.IsCapture() {
		capSq := to
		if m.IsEnPassant() {
			capSq = Square(int(to) - pawnDir(us))
		}
		pos.remove(capSq, pos.pieceAt[capSq])
		pos.halfmove = 0
	} else if mover.Type() == Pawn {
		pos.halfmove = 0
	} else {
		pos.halfmove++
	}

	pos.remove(from, mover)
	if m.IsPromotion() {
		pos.put(to, MakePiece(us, m.PromotedType()))
	} else {
		pos.put(to, mover)
	}

	if m.IsCastle() {
		rk := rookCastleSquares[to]
		pos.remove(rk[0], MakePiece(us, Rook))
		pos.put(rk[1], MakePiece(us, Rook))
	}

	if m.IsPawnStart() {
		pos.epSquare = Square(int(from) + pawnDir(us))
		pos.key ^= zobristEnPassant[pos.epSquare]
	}

	pos.key ^= zobristCastle[pos.castleRights]
	pos.castleRights &^= castleRightsLost[from]
	pos.castleRights &^= castleRightsLost[to]
	pos.key ^= zobristCastle[pos.castleRights]

	pos.key ^= zobristColor
	pos.SideToMove = them
	pos.Ply++

	if isAttacked(pos, pos.ByPiece(us, King), them) {
		pos.unmakeLast()
		return false
	}
	return true
}

// Unmake reverses the most recent successful Make call.
func (pos *Position) Unmake(m Move) {
	pos.unmakeLast()
}

func (pos *Position) unmakeLast() {
	n := len(pos.history)
	rec := pos.history[n-1]
	pos.history = pos.history[:n-1]
	m := rec.move

	pos.Ply--
	them := pos.SideToMove
	us := them.Opposite()
	pos.SideToMove = us

	from, to := m.From(), m.To()

	if m.IsCastle() {
		rk := rookCastleSquares[to]
		pos.remove(rk[1], MakePiece(us, Rook))
		pos.put(rk[0], MakePiece(us, Rook))
	}

	if m.IsPromotion() {
		pos.remove(to, MakePiece(us, m.PromotedType()))
		pos.put(from, MakePiece(us, Pawn))
	} else {
		mover := pos.pieceAt[to]
		pos.remove(to, mover)
		pos.put(from, mover)
	}

	if m.IsCapture() {
		capSq := to
		if m.IsEnPassant() {
			capSq = Square(int(to) - pawnDir(us))
		}
		pos.put(capSq, MakePiece(them, m.CapturedType()))
	}

	pos.castleRights = rec.castleRights
	pos.epSquare = rec.epSquare
	pos.halfmove = rec.halfmove
	pos.key = rec.key
}

// MakeNull plays a null move: the side to move passes, only the en-passant
// square and side to move change. Used by search extensions that probe
// "what if I didn't have to move" (spec.md §4.10 notes null-move pruning as
// an allowed but non-mandatory technique); never called for a position
// where the side to move is in check.
func (pos *Position) MakeNull() {
	pos.pushHistory(undoRecord{
		move:         NullMove,
		castleRights: pos.castleRights,
		halfmove:     pos.halfmove,
		epSquare:     pos.epSquare,
		key:          pos.key,
	})
	if pos.epSquare != noEnPassant {
		pos.key ^= zobristEnPassant[pos.epSquare]
		pos.epSquare = noEnPassant
	}
	pos.key ^= zobristColor
	pos.SideToMove = pos.SideToMove.Opposite()
	pos.Ply++
}

// UnmakeNull reverses the most recent MakeNull call.
func (pos *Position) UnmakeNull() {
	n := len(pos.history)
	rec := pos.history[n-1]
	pos.history = pos.history[:n-1]
	pos.Ply--
	pos.SideToMove = pos.SideToMove.Opposite()
	pos.epSquare = rec.epSquare
	pos.key = rec.key
}
