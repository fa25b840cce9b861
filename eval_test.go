package triface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate_PerfectPredictionHasZeroError(t *testing.T) {
	rect := Rect(0, 0, 10, 10)
	// initial shape already sits at the normalised midpoint of the rect,
	// and with zero cascades Predict returns it unchanged.
	initial := Shape{0.5, 0.5}
	p := NewPredictor(initial, nil, nil)

	img := solidImage{bounds: rect, value: 0}
	images := []Image{img}
	objects := []LabeledObject{
		{Rect: rect, Landmarks: []Point{{X: 5, Y: 5}}},
	}

	result := Evaluate(p, images, objects)
	assert.InDelta(t, 0.0, result.Mean, 1e-6)
	assert.InDelta(t, 0.0, result.PerLandmark[0], 1e-6)
}

func TestEvaluate_KnownOffsetError(t *testing.T) {
	rect := Rect(0, 0, 10, 10)
	initial := Shape{0.5, 0.5}
	p := NewPredictor(initial, nil, nil)

	img := solidImage{bounds: rect, value: 0}
	images := []Image{img}
	objects := []LabeledObject{
		{Rect: rect, Landmarks: []Point{{X: 8, Y: 5}}}, // 3px off in X
	}

	result := Evaluate(p, images, objects)
	assert.InDelta(t, 3.0, result.Mean, 1e-6)
}

func TestEvaluate_ScaleNormalisesError(t *testing.T) {
	rect := Rect(0, 0, 10, 10)
	initial := Shape{0.5, 0.5}
	p := NewPredictor(initial, nil, nil)

	img := solidImage{bounds: rect, value: 0}
	images := []Image{img}
	objects := []LabeledObject{
		{Rect: rect, Landmarks: []Point{{X: 8, Y: 5}}, Scale: 3},
	}

	result := Evaluate(p, images, objects)
	assert.InDelta(t, 1.0, result.Mean, 1e-6)
}

func TestEvaluate_EmptyObjectsIsZeroValued(t *testing.T) {
	p := NewPredictor(Shape{0.5, 0.5}, nil, nil)
	result := Evaluate(p, nil, nil)
	assert.Equal(t, 0.0, result.Mean)
	assert.Equal(t, 1, len(result.PerLandmark))
}
