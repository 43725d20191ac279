// search.go implements the negamax alpha-beta search with iterative
// deepening of spec.md §4.10: static evaluation is supplied by the caller
// (spec.md §1 treats evaluation as external to the core), the search only
// knows how to order, prune and recurse.
//
// Grounded on the teacher's engine.go, but deliberately simpler: the
// teacher layers PVS, null-move pruning, late-move reductions, aspiration
// windows and a killer/history table on top of the same alpha-beta
// skeleton. Of those, only null-move pruning is kept here (see negamax);
// the others are not part of spec.md §4.10's contract, so they are left
// out. The skeleton (iterative
// deepening driving a recursive negamax, a Logger reporting each
// completed depth, a cooperatively-checked Stopped flag) is kept as the
// teacher builds it.

package engine

import (
	"time"
)

// Mate-related scores. MateValue is the score attributed to delivering
// mate on the current move; scores between MateThreshold and MateValue
// encode "mate in N plies" per spec.md §4.10, so they can be adjusted for
// ply and still compared normally by alpha-beta.
const (
	MateValue     = 30000
	MateThreshold = MateValue - 1000
	DrawValue     = 0
)

// Null-move pruning parameters (spec.md §4.10).
const (
	nullMoveMinDepth  = 3
	nullMoveReduction = 2
)

// hasNonPawnMaterial reports whether c has any piece besides pawns and its
// king, the standard guard against null-move pruning misfiring in a
// zugzwang position (king-and-pawn endgames, where passing is never free).
func hasNonPawnMaterial(pos *Position, c Color) bool {
	return pos.ByPiece(c, Knight)|pos.ByPiece(c, Bishop)|pos.ByPiece(c, Rook)|pos.ByPiece(c, Queen) != 0
}

// Evaluator scores pos from the perspective of the side to move: positive
// favors pos.SideToMove (spec.md §1's externally-supplied static
// evaluation).
type Evaluator func(pos *Position) int

// Stats accumulates counters for one search, reported through Logger.
type Stats struct {
	Nodes    int64
	TTHits   int64
	Depth    int
	Score    int
	PV       []Move
	Elapsed  time.Duration
}

// Logger receives progress reports during a search. NulLogger discards
// everything; it is the zero value of no interest to most callers.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(stats Stats)
}

// NulLogger is a Logger that does nothing.
type NulLogger struct{}

func (NulLogger) BeginSearch()  {}
func (NulLogger) EndSearch()    {}
func (NulLogger) PrintPV(Stats) {}

// SearchInfo carries everything one Search call needs beyond the position
// itself: how deep/long to search, where to report progress, and the
// cooperative stop flag a caller on another goroutine can raise to abort
// early (spec.md §5 concurrency model: one search goroutine, stoppable
// from outside).
type SearchInfo struct {
	MaxDepth int           // 0 means a depth limit of 64 (and Deadline, if set)
	Deadline time.Time     // zero means unlimited (bounded only by MaxDepth)
	HashMB   int           // transposition table size; 0 uses DefaultHashTableSizeMB
	Eval     Evaluator
	Log      Logger
	History  []uint64 // game key history, for repetition detection

	// NoQuiescence, if set, makes the search a pure fixed-depth negamax
	// (static evaluation at depth 0, no capture extension, no null-move
	// pruning), which is what spec.md §8's negamax-symmetry property is
	// stated against. Normal play always leaves this false: quiescence and
	// null-move pruning both trade exact fixed-depth equivalence for
	// strength/speed.
	NoQuiescence bool

	Stopped bool // set by Stop(); checked cooperatively between nodes

	nodes   int64
	tt      HashTable
	rootPly int // pos.Ply at the start of the current rootSearch call
}

// Stop requests the current or next Search call to return as soon as
// possible. Safe to call from another goroutine.
func (si *SearchInfo) Stop() {
	si.Stopped = true
}

func (si *SearchInfo) timeUp() bool {
	if si.Stopped {
		return true
	}
	if !si.Deadline.IsZero() && time.Now().After(si.Deadline) {
		si.Stopped = true
		return true
	}
	return false
}

// Search runs iterative deepening negamax alpha-beta on pos starting from
// depth 1 up to si.MaxDepth (or until si.Deadline passes), reporting each
// completed iteration through si.Log, and returns the best move found at
// the last fully-completed depth along with its score. Search never
// mutates pos once it returns: every Make is paired with an Unmake before
// Search returns (spec.md §4.6, §8 invariant 1).
func Search(pos *Position, si *SearchInfo) (Move, int) {
	if si.Log == nil {
		si.Log = NulLogger{}
	}
	hashMB := si.HashMB
	if hashMB <= 0 {
		hashMB = DefaultHashTableSizeMB
	}
	si.tt = NewHashTable(hashMB)
	si.nodes = 0

	maxDepth := si.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 64
	}

	var bestMove Move
	bestScore := -MateValue
	start := time.Now()

	si.Log.BeginSearch()
	defer si.Log.EndSearch()

	for depth := 1; depth <= maxDepth; depth++ {
		score, pv := rootSearch(pos, si, depth)
		if si.Stopped && depth > 1 {
			// The partially-searched depth's result is unreliable; keep
			// the previous iteration's move (spec.md §4.10: iterative
			// deepening only trusts a depth it fully completed).
			break
		}
		bestScore = score
		if len(pv) > 0 {
			bestMove = pv[0]
		}
		si.Log.PrintPV(Stats{
			Nodes:   si.nodes,
			Depth:   depth,
			Score:   score,
			PV:      pv,
			Elapsed: time.Since(start),
		})
		if si.Stopped {
			break
		}
		if bestScore > MateThreshold || bestScore < -MateThreshold {
			// A forced mate has been found; deepening further cannot
			// improve the result.
			break
		}
	}
	return bestMove, bestScore
}

// rootSearch runs one full-width negamax pass at depth and reconstructs
// the principal variation by re-probing the transposition table, since the
// simple direct-indexed table (spec.md §4.8) doesn't carry a PV array of
// its own.
func rootSearch(pos *Position, si *SearchInfo, depth int) (int, []Move) {
	si.rootPly = pos.Ply
	score := negamax(pos, si, depth, -MateValue, MateValue)
	if si.Stopped {
		return score, nil
	}
	return score, extractPV(pos, si, depth)
}

func extractPV(pos *Position, si *SearchInfo, maxLen int) []Move {
	var pv []Move
	seen := make(map[uint64]bool)
	for len(pv) < maxLen {
		m, ok := si.tt.Probe(pos.Key())
		if !ok || seen[pos.Key()] {
			break
		}
		seen[pos.Key()] = true
		if !pos.Make(m) {
			break
		}
		pv = append(pv, m)
	}
	for i := len(pv) - 1; i >= 0; i-- {
		pos.Unmake(pv[i])
	}
	return pv
}

// negamax is the recursive search core: a standard fail-hard alpha-beta
// negamax with transposition-table move ordering (spec.md §4.10).
func negamax(pos *Position, si *SearchInfo, depth, alpha, beta int) int {
	si.nodes++
	if si.nodes&1023 == 0 && si.timeUp() {
		return 0
	}

	if pos.IsFiftyMoveDraw() || IsRepetition(si.History, pos.Key()) {
		return DrawValue
	}

	if depth <= 0 {
		if si.NoQuiescence {
			return si.Eval(pos)
		}
		return quiescence(pos, si, alpha, beta)
	}

	us := pos.SideToMove
	inCheck := isAttacked(pos, pos.ByPiece(us, King), us.Opposite())

	// Null-move pruning (spec.md §4.10 lists it as an allowed, non-mandatory
	// technique): if passing the move entirely still fails high, a real move
	// will too. Skipped in check (a null move there is illegal), at the
	// search root (there is no move to report if it cuts off), for
	// NoQuiescence callers (it breaks the fixed-depth minimax equivalence
	// they test for), and in likely zugzwang positions (no non-pawn
	// material), per the guard hailam-chessplay's worker.go uses.
	if depth >= nullMoveMinDepth && !inCheck && !si.NoQuiescence &&
		pos.Ply > si.rootPly && hasNonPawnMaterial(pos, us) {
		pos.MakeNull()
		score := -negamax(pos, si, depth-1-nullMoveReduction, -beta, -beta+1)
		pos.UnmakeNull()
		if si.Stopped {
			return 0
		}
		if score >= beta {
			return beta
		}
	}

	moves := orderedMoves(pos, si, GenerateMoves(pos, nil))

	legalMoves := 0
	best := -MateValue
	var bestMove Move

	si.History = append(si.History, pos.Key())
	for _, m := range moves {
		if !pos.Make(m) {
			continue
		}
		legalMoves++
		score := -negamax(pos, si, depth-1, -beta, -alpha)
		pos.Unmake(m)

		if si.Stopped {
			si.History = si.History[:len(si.History)-1]
			return 0
		}

		if score > best {
			best = score
			bestMove = m
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	si.History = si.History[:len(si.History)-1]

	if legalMoves == 0 {
		if inCheck {
			return -MateValue + pos.Ply
		}
		return DrawValue
	}

	si.tt.Store(pos.Key(), bestMove)
	if alpha >= beta {
		return beta
	}
	return alpha
}

// quiescence extends the search with captures and promotions only, to
// avoid the horizon effect of evaluating a position where a capture is
// about to happen (spec.md §4.10's note that a leaf evaluation should be
// "quiet").
func quiescence(pos *Position, si *SearchInfo, alpha, beta int) int {
	si.nodes++
	if si.nodes&1023 == 0 && si.timeUp() {
		return 0
	}

	standPat := si.Eval(pos)
	if standPat >= beta {
		return beta
	}
	if standPat > alpha {
		alpha = standPat
	}

	moves := orderedMoves(pos, si, GenerateCaptures(pos, nil))
	for _, m := range moves {
		if !pos.Make(m) {
			continue
		}
		score := -quiescence(pos, si, -beta, -alpha)
		pos.Unmake(m)

		if si.Stopped {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// orderedMoves sorts moves best-score-first, preferring the transposition
// table's stored move above everything else (spec.md §4.5, §4.8).
func orderedMoves(pos *Position, si *SearchInfo, moves []Move) []Move {
	if ttMove, ok := si.tt.Probe(pos.Key()); ok {
		for i, m := range moves {
			if m.From() == ttMove.From() && m.To() == ttMove.To() && m.PromotedType() == ttMove.PromotedType() {
				moves[i] = m.WithScore(maxMoveScore)
				break
			}
		}
	}
	insertionSortMoves(moves)
	return moves
}

// insertionSortMoves sorts moves descending by score. Move lists are short
// (typically under 40), so insertion sort beats the allocation and
// overhead of sort.Slice.
func insertionSortMoves(moves []Move) {
	for i := 1; i < len(moves); i++ {
		m := moves[i]
		j := i - 1
		for j >= 0 && moves[j].Score() < m.Score() {
			moves[j+1] = moves[j]
			j--
		}
		moves[j+1] = m
	}
}
