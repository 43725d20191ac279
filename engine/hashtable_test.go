package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashTableStoreProbe(t *testing.T) {
	tt := NewHashTable(1)
	m := EncodeMove(SquareE1, RankFile(1, 4), NoPieceType, NoPieceType, 0)

	_, ok := tt.Probe(42)
	assert.False(t, ok)

	tt.Store(42, m)
	got, ok := tt.Probe(42)
	assert.True(t, ok)
	assert.Equal(t, m.From(), got.From())
	assert.Equal(t, m.To(), got.To())
}

func TestHashTableClear(t *testing.T) {
	tt := NewHashTable(1)
	tt.Store(7, EncodeMove(SquareA1, SquareB1, NoPieceType, NoPieceType, 0))
	tt.Clear()
	_, ok := tt.Probe(7)
	assert.False(t, ok)
}

func TestHashTableLenIsPowerOfTwo(t *testing.T) {
	tt := NewHashTable(1)
	n := tt.Len()
	assert.Greater(t, n, 0)
	assert.Equal(t, 0, n&(n-1), "table length must be a power of two")
}

func TestHashTableCollisionDoesNotReturnWrongMove(t *testing.T) {
	tt := NewHashTable(1)
	mask := tt.mask
	key1 := uint64(5)
	key2 := key1 + mask + 1 // same slot index, different lock
	m := EncodeMove(SquareA1, SquareB1, NoPieceType, NoPieceType, 0)

	tt.Store(key1, m)
	_, ok := tt.Probe(key2)
	assert.False(t, ok, "a different key hashing to the same slot must not probe-hit")
}
