// Package perft counts leaf nodes of the legal-move game tree to a fixed
// depth, the standard move-generator correctness/speed test (spec.md §8's
// testable properties are exactly perft node counts at small depths).
//
// Grounded on the teacher's perft/perft.go, ported from the teacher's
// GenerateMoves/DoMove/UndoMove/IsChecked API to engine.GenerateMoves and
// Position.Make/Unmake, and from the teacher's move-buffer-stack style
// (a single growing slice, moves popped off the end) which this keeps
// since it is still the cheapest way to avoid allocating per ply.
package perft

import "github.com/corviid/bitchess/engine"

// Counters tallies the leaf-level breakdown of a perft run: total nodes,
// and how many of the leaves were captures, en-passant captures,
// castles or promotions.
type Counters struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
}

// Add accumulates other into c.
func (c *Counters) Add(other Counters) {
	c.Nodes += other.Nodes
	c.Captures += other.Captures
	c.EnPassant += other.EnPassant
	c.Castles += other.Castles
	c.Promotions += other.Promotions
}

type hashEntry struct {
	key      uint64
	depth    int
	counters Counters
}

// Count runs perft from pos to depth, using a scratch move buffer and a
// 1<<20-entry transposition cache allocated per call (CountUncached runs
// without the cache).
func Count(pos *engine.Position, depth int) Counters {
	cache := make([]hashEntry, 1<<20)
	moves := make([]engine.Move, 0, 256)
	return count(pos, depth, cache, &moves)
}

// CountUncached is Count without the transposition cache, for benchmarking
// raw move generation/make/unmake cost.
func CountUncached(pos *engine.Position, depth int) Counters {
	moves := make([]engine.Move, 0, 256)
	return count(pos, depth, nil, &moves)
}

func count(pos *engine.Position, depth int, cache []hashEntry, moves *[]engine.Move) Counters {
	if depth == 0 {
		return Counters{Nodes: 1}
	}

	if cache != nil {
		idx := pos.Key() % uint64(len(cache))
		if cache[idx].depth == depth && cache[idx].key == pos.Key() {
			return cache[idx].counters
		}
	}

	var r Counters
	start := len(*moves)
	*moves = engine.GenerateMoves(pos, *moves)
	for start < len(*moves) {
		last := len(*moves) - 1
		move := (*moves)[last]
		*moves = (*moves)[:last]

		if !pos.Make(move) {
			continue
		}

		if depth == 1 {
			switch {
			case move.IsEnPassant():
				r.EnPassant++
				r.Captures++
			case move.IsCapture():
				r.Captures++
			case move.IsCastle():
				r.Castles++
			}
			if move.IsPromotion() {
				r.Promotions++
			}
		}

		r.Add(count(pos, depth-1, cache, moves))
		pos.Unmake(move)
	}

	if cache != nil {
		idx := pos.Key() % uint64(len(cache))
		cache[idx] = hashEntry{key: pos.Key(), depth: depth, counters: r}
	}
	return r
}

// Known starting positions used by spec.md §8's perft node-count table.
const (
	StartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	Kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	Duplain  = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
)
