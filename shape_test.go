package triface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShape_Arity(t *testing.T) {
	s := NewShape(5)
	assert.Equal(t, 5, s.NumParts())
	assert.Len(t, s, 10)
}

func TestShape_PointRoundTrip(t *testing.T) {
	s := NewShape(3)
	s.SetPoint(1, 0.25, 0.75)
	x, y := s.Point(1)
	assert.Equal(t, float32(0.25), x)
	assert.Equal(t, float32(0.75), y)
}

func TestShape_CloneIsIndependent(t *testing.T) {
	s := NewShape(2)
	s.SetPoint(0, 1, 1)
	clone := s.Clone()
	clone.SetPoint(0, 9, 9)

	x, y := s.Point(0)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(1), y)

	cx, cy := clone.Point(0)
	assert.Equal(t, float32(9), cx)
	assert.Equal(t, float32(9), cy)
}

func TestShape_AddSubScale(t *testing.T) {
	a := Shape{1, 2, 3, 4}
	b := Shape{10, 10, 10, 10}

	sum := a.Add(b)
	assert.Equal(t, Shape{11, 12, 13, 14}, sum)

	diff := sum.Sub(b)
	assert.Equal(t, a, diff)

	scaled := a.Scale(2)
	assert.Equal(t, Shape{2, 4, 6, 8}, scaled)
}

func TestShape_AddInPlaceMutates(t *testing.T) {
	a := Shape{1, 1}
	a.AddInPlace(Shape{2, 3})
	assert.Equal(t, Shape{3, 4}, a)
}

func TestShape_MismatchedLengthPanics(t *testing.T) {
	assert.Panics(t, func() {
		Shape{1, 2}.Add(Shape{1, 2, 3})
	})
}

func TestLerp_Endpoints(t *testing.T) {
	a := Shape{0, 0}
	b := Shape{10, 10}

	assert.Equal(t, a, Lerp(a, b, 1))
	assert.Equal(t, b, Lerp(a, b, 0))

	mid := Lerp(a, b, 0.5)
	assert.Equal(t, Shape{5, 5}, mid)
}

func TestMeanShape(t *testing.T) {
	shapes := []Shape{
		{0, 0, 0, 0},
		{2, 2, 2, 2},
		{4, 4, 4, 4},
	}
	mean := MeanShape(shapes)
	assert.Equal(t, Shape{2, 2, 2, 2}, mean)
}
