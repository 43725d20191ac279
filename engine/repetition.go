// repetition.go implements the draw detection of spec.md §4.9: repetition
// by Zobrist key equality within the game's move history (one earlier
// occurrence counts), and the fifty-move rule via the halfmove clock.
//
// Grounded on the teacher's time_control.go / engine.go draw checks, which
// walk the same kind of key history rather than maintaining a running
// repetition counter on Position.

package engine

// IsRepetition reports whether currentKey has occurred before in history, at
// a ply with the same side to move (so the occurrence is reachable again).
// history holds the ancestor keys only (the current position's key is not
// yet in it); the caller pushes its own key after this check and before
// recursing into children (spec.md §4.9). A single prior match is treated
// as a draw during search, matching original_source/search.c's isRepetition,
// which returns as soon as one equal key is found rather than waiting for a
// third occurrence: a search node that can reach a position already on its
// own path is pruned as a draw, independent of the game's overall
// (game-history-wide) threefold count.
func IsRepetition(history []uint64, currentKey uint64) bool {
	// Walk backward two plies at a time: repetition requires both sides to
	// return to the same position, which only happens an even number of
	// plies apart. The current position is ply len(history), so the first
	// candidate of matching parity is len(history)-2.
	for i := len(history) - 2; i >= 0; i -= 2 {
		if history[i] == currentKey {
			return true
		}
	}
	return false
}

// IsFiftyMoveDraw reports whether pos's halfmove clock has reached the
// fifty-move limit (100 halfmoves without a capture or pawn move). A
// halfmove clock of exactly 100 is a legal, drawn position (spec.md §9
// open question): the clock may equal or exceed 100, parsing never
// rejects it, only this function's callers (search, game-result queries)
// treat it as a draw.
func (pos *Position) IsFiftyMoveDraw() bool {
	return pos.halfmove >= 100
}
