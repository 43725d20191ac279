package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLSB(t *testing.T) {
	assert.Equal(t, 0, lsb(1))
	assert.Equal(t, 3, lsb(0b1000))
	assert.Equal(t, 0, lsb(0b1011))
}

func TestMSB(t *testing.T) {
	assert.Equal(t, 0, msb(1))
	assert.Equal(t, 3, msb(0b1111))
	assert.Equal(t, 63, msb(1<<63))
}

func TestPopcount(t *testing.T) {
	assert.Equal(t, 0, popcount(0))
	assert.Equal(t, 1, popcount(1))
	assert.Equal(t, 64, popcount(^uint64(0)))
}

func TestMinMax(t *testing.T) {
	assert.Equal(t, 3, min(3, 5))
	assert.Equal(t, 5, max(3, 5))
	assert.Equal(t, -5, min(-5, -3))
}
