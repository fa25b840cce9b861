package triface

import "math"

// LabeledObject pairs a detection rectangle with its ground-truth landmarks
// in pixel space, for use as evaluation input.
type LabeledObject struct {
	Rect      Rectangle
	Landmarks []Point
	// Scale normalises the per-landmark error (e.g. inter-ocular distance).
	// A zero value is treated as 1, i.e. no normalisation.
	Scale float64
}

// Result is the outcome of evaluating a predictor over a labelled set: the
// overall mean per-landmark error and the mean error broken down by
// landmark index.
type Result struct {
	Mean        float64
	PerLandmark []float64
}

// Evaluate runs predictor over every (image, object) pair and accumulates
// the normalised per-landmark distance between prediction and ground
// truth. images[i] supplies the pixel data for objects[i]; a scale of 0 on
// an object is treated as 1.
func Evaluate(predictor *Predictor, images []Image, objects []LabeledObject) Result {
	n := predictor.NumParts()
	perLandmark := make([]float64, n)
	var total float64
	var count int

	for i, obj := range objects {
		scale := obj.Scale
		if scale == 0 {
			scale = 1
		}

		predicted := predictor.Predict(images[i], obj.Rect)
		for k := 0; k < n && k < len(obj.Landmarks); k++ {
			dx := predicted[k].X - obj.Landmarks[k].X
			dy := predicted[k].Y - obj.Landmarks[k].Y
			d := math.Hypot(dx, dy) / scale

			perLandmark[k] += d
			total += d
			count++
		}
	}

	if count == 0 {
		return Result{PerLandmark: perLandmark}
	}

	samples := len(objects)
	if samples > 0 {
		for k := range perLandmark {
			perLandmark[k] /= float64(samples)
		}
	}

	return Result{
		Mean:        total / float64(count),
		PerLandmark: perLandmark,
	}
}
