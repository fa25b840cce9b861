package trainer

import (
	"fmt"
	"math/rand"

	"github.com/esimov/triface"
)

// Object is one annotated ground-truth instance: a detection rectangle
// and its landmark points in pixel space, both measured against the image
// at Image.
type Object struct {
	Image     triface.Image
	Rect      triface.Rectangle
	Landmarks []triface.Point
}

// sample is one working training example. OversamplingAmount copies of
// each Object become one sample each, all sharing the same target but
// starting from independently perturbed initial shapes.
type sample struct {
	image    triface.Image
	rect     triface.Rectangle
	target   triface.Shape
	current  triface.Shape
	features []float32
}

// populate normalises every object's landmarks into target shapes, then
// oversamples them into working samples whose initial current shape is
// either the corpus mean shape or a random convex combination of two
// other targets -- exactly the first-slot/else split the reference
// trainer uses to diversify starting poses.
func populate(objects []Object, rng *rand.Rand, oversamplingAmount int) (samples []sample, meanShape triface.Shape, err error) {
	if len(objects) == 0 {
		return nil, nil, fmt.Errorf("%w", triface.ErrEmptyCorpus)
	}

	targets := make([]triface.Shape, len(objects))
	numParts := len(objects[0].Landmarks)
	for i, obj := range objects {
		if len(obj.Landmarks) == 0 || len(obj.Landmarks) != numParts {
			return nil, nil, fmt.Errorf("%w: object %d has %d parts, want %d", triface.ErrInconsistentParts, i, len(obj.Landmarks), numParts)
		}
		targets[i] = triface.NormalizeShape(obj.Rect, obj.Landmarks)
	}

	meanShape = triface.MeanShape(targets)

	samples = make([]sample, 0, len(objects)*oversamplingAmount)
	for i, obj := range objects {
		for s := 0; s < oversamplingAmount; s++ {
			var current triface.Shape
			if s == 0 {
				current = meanShape.Clone()
			} else {
				r1 := rng.Intn(len(targets))
				r2 := rng.Intn(len(targets))
				alpha := float32(rng.Float64())
				current = triface.Lerp(targets[r1], targets[r2], alpha)
			}
			samples = append(samples, sample{
				image:   obj.Image,
				rect:    obj.Rect,
				target:  targets[i],
				current: current,
			})
		}
	}

	return samples, meanShape, nil
}
