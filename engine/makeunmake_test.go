package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUnmakeRestoresPosition(t *testing.T) {
	pos, err := PositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	before := pos.String()

	for _, m := range GenerateMoves(pos, nil) {
		ok := pos.Make(m)
		if ok {
			pos.Unmake(m)
		}
		require.NoError(t, pos.verify(), "move %s, legal=%v", m, ok)
		assert.Equal(t, before, pos.String(), "move %s did not restore position", m)
	}
}

func TestMakeRejectsMoveIntoCheck(t *testing.T) {
	// Black rook on h2 attacks all of rank 2, so the white king must not be
	// allowed to step from e1 to e2.
	pos, err := PositionFromFEN("4k3/8/8/8/8/8/7r/4K3 w - - 0 1")
	require.NoError(t, err)
	require.False(t, isAttacked(pos, pos.ByPiece(White, King), Black), "king should not start in check")

	checked := false
	for _, m := range GenerateMoves(pos, nil) {
		if m.From() == SquareE1 && m.To() == RankFile(1, 4) {
			checked = true
			ok := pos.Make(m)
			assert.False(t, ok, "king must not be allowed to step into an attacked square")
			if ok {
				pos.Unmake(m)
			}
		}
	}
	assert.True(t, checked, "expected Ke1-e2 to be pseudo-legally generated")
}

func TestMakeCastleMovesRook(t *testing.T) {
	pos, err := PositionFromFEN("4k3/8/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)
	var castle Move
	for _, m := range GenerateMoves(pos, nil) {
		if m.IsCastle() {
			castle = m
		}
	}
	require.NotEqual(t, NullMove, castle)

	ok := pos.Make(castle)
	require.True(t, ok)
	assert.Equal(t, WhiteKing, pos.PieceAt(SquareG1))
	assert.Equal(t, WhiteRook, pos.PieceAt(SquareF1))
	assert.Equal(t, NoPiece, pos.PieceAt(SquareE1))
	assert.Equal(t, NoPiece, pos.PieceAt(SquareH1))
	assert.Equal(t, NoCastle, pos.castleRights&(WhiteOO|WhiteOOO))

	pos.Unmake(castle)
	assert.Equal(t, WhiteKing, pos.PieceAt(SquareE1))
	assert.Equal(t, WhiteRook, pos.PieceAt(SquareH1))
}

func TestMakeEnPassantRemovesCapturedPawn(t *testing.T) {
	pos, err := PositionFromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	require.NoError(t, err)
	var ep Move
	for _, m := range GenerateMoves(pos, nil) {
		if m.IsEnPassant() {
			ep = m
		}
	}
	require.NotEqual(t, NullMove, ep)

	ok := pos.Make(ep)
	require.True(t, ok)
	assert.Equal(t, NoPiece, pos.PieceAt(RankFile(4, 3))) // captured black pawn on d5 removed
	assert.Equal(t, WhitePawn, pos.PieceAt(RankFile(5, 3)))

	pos.Unmake(ep)
	assert.Equal(t, BlackPawn, pos.PieceAt(RankFile(4, 3)))
	assert.Equal(t, WhitePawn, pos.PieceAt(RankFile(4, 4)))
}

func TestMakePromotionReplacesPawn(t *testing.T) {
	pos, err := PositionFromFEN("8/4P3/8/8/8/8/8/4k2K w - - 0 1")
	require.NoError(t, err)
	var promo Move
	for _, m := range GenerateMoves(pos, nil) {
		if m.IsPromotion() && m.PromotedType() == Queen {
			promo = m
		}
	}
	require.NotEqual(t, NullMove, promo)

	ok := pos.Make(promo)
	require.True(t, ok)
	assert.Equal(t, WhiteQueen, pos.PieceAt(promo.To()))

	pos.Unmake(promo)
	assert.Equal(t, WhitePawn, pos.PieceAt(RankFile(6, 4)))
}
