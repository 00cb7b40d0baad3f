package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSolidColors(t *testing.T) {
	src := Solid()
	for i := 0; i < 5; i++ {
		assert.Equal(t, White, src.Next())
	}
	var nilSrc *ColorSource
	assert.Equal(t, White, nilSrc.Next())
}

func TestRandomColorsAreBinary(t *testing.T) {
	src := RandomColors(0)
	for i := 0; i < 100; i++ {
		c := src.Next()
		for _, ch := range []float32{c.X, c.Y, c.Z} {
			assert.Contains(t, []float32{0, 1}, ch)
		}
	}
}

func TestRandomColorsSeeded(t *testing.T) {
	a, b := RandomColors(42), RandomColors(42)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Next(), b.Next(), "color %d", i)
	}
}

func TestColorsFor(t *testing.T) {
	assert.False(t, ColorsFor(false, 7).random)
	assert.True(t, ColorsFor(true, 7).random)
}
