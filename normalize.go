package triface

// NormalizeShape maps pixel-space landmark points into rect-relative
// normalised shape coordinates, the form every Shape in this package is
// expected to be in. It is the trainer's entry point onto the same
// normalising transform Predict uses in reverse.
func NormalizeShape(rect Rectangle, points []Point) Shape {
	toNormalized := normalising(rect)
	s := NewShape(len(points))
	for i, p := range points {
		x, y := toNormalized.Apply(p.X, p.Y)
		s.SetPoint(i, float32(x), float32(y))
	}
	return s
}
