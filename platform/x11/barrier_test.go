package x11

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alia5/nativeinput/geom"
)

func TestBarriersFor(t *testing.T) {
	got := barriersFor(geom.Rect{X: 100, Y: 50, Width: 800, Height: 600})
	assert.Equal(t, [4]barrier{
		{x1: 100, y1: 50, x2: 100, y2: 649, directions: barrierPositiveX},
		{x1: 899, y1: 50, x2: 899, y2: 649, directions: barrierNegativeX},
		{x1: 100, y1: 50, x2: 899, y2: 50, directions: barrierPositiveY},
		{x1: 100, y1: 649, x2: 899, y2: 649, directions: barrierNegativeY},
	}, got)
}

func TestBarriersForEmptyRect(t *testing.T) {
	for _, b := range barriersFor(geom.Rect{X: 10, Y: 20}) {
		assert.Equal(t, int32(10), b.x1)
		assert.Equal(t, int32(10), b.x2)
		assert.Equal(t, int32(20), b.y1)
		assert.Equal(t, int32(20), b.y2)
	}
}
