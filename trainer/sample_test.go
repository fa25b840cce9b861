package trainer

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/triface"
)

type stubImage struct {
	bounds triface.Rectangle
}

func (s stubImage) At(x, y int) uint8        { return 0 }
func (s stubImage) Bounds() triface.Rectangle { return s.bounds }

func makeObject(rect triface.Rectangle, pts []triface.Point) Object {
	return Object{Image: stubImage{bounds: rect}, Rect: rect, Landmarks: pts}
}

func TestPopulate_RejectsEmptyCorpus(t *testing.T) {
	_, _, err := populate(nil, rand.New(rand.NewSource(1)), 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, triface.ErrEmptyCorpus))
}

func TestPopulate_RejectsInconsistentParts(t *testing.T) {
	rect := triface.Rect(0, 0, 10, 10)
	objects := []Object{
		makeObject(rect, []triface.Point{{X: 1, Y: 1}, {X: 2, Y: 2}, {X: 3, Y: 3}}),
		makeObject(rect, []triface.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}),
	}
	_, _, err := populate(objects, rand.New(rand.NewSource(1)), 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, triface.ErrInconsistentParts))
}

func TestPopulate_OversamplesAndFirstSlotIsMeanShape(t *testing.T) {
	rect := triface.Rect(0, 0, 10, 10)
	objects := []Object{
		makeObject(rect, []triface.Point{{X: 2, Y: 2}, {X: 8, Y: 2}, {X: 2, Y: 8}}),
		makeObject(rect, []triface.Point{{X: 3, Y: 3}, {X: 7, Y: 3}, {X: 3, Y: 7}}),
	}

	const oversampling = 4
	samples, meanShape, err := populate(objects, rand.New(rand.NewSource(1)), oversampling)
	require.NoError(t, err)
	assert.Len(t, samples, len(objects)*oversampling)
	assert.Equal(t, 3, meanShape.NumParts())

	for i := range objects {
		first := samples[i*oversampling]
		assert.Equal(t, meanShape, first.current)
		assert.Equal(t, objects[i].Rect, first.rect)
	}
}
