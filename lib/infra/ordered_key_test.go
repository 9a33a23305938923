package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAscCompare(t *testing.T) {
	assert.Equal(t, int64(0), AscCompare[int](3, 3))
	assert.Equal(t, int64(-1), AscCompare[int](1, 3))
	assert.Equal(t, int64(1), AscCompare[int](5, 3))
	assert.Equal(t, int64(-1), AscCompare[string]("a", "b"))
	assert.Equal(t, int64(1), AscCompare[float64](math.Pi, math.E))
}

func TestDescCompare(t *testing.T) {
	assert.Equal(t, int64(0), DescCompare[uint8](7, 7))
	assert.Equal(t, int64(1), DescCompare[uint8](1, 7))
	assert.Equal(t, int64(-1), DescCompare[uint8](9, 7))
}

func TestOrderedKeyComparatorType(t *testing.T) {
	var cmp OrderedKeyComparator[int64] = AscCompare[int64]
	assert.Equal(t, int64(-1), cmp(-10, 10))
	cmp = DescCompare[int64]
	assert.Equal(t, int64(1), cmp(-10, 10))
}
