package triface

// Forest is the collection of T trees fit at one cascade stage. All trees
// in a stage share the stage's TripletIndex.
type Forest []RegressionTree

// Predictor is an immutable, trained TIF shape predictor: a mean initial
// shape refined by C cascade stages, each pairing a forest of trees with
// the triplet index used to extract its features.
//
// A Predictor owns its forests and indices exclusively; once returned by
// trainer.Train or Decode, nothing else holds a reference to its internal
// slices. Predict never mutates the receiver, so a single Predictor may be
// shared across goroutines.
type Predictor struct {
	initialShape Shape
	forests      []Forest
	indices      []TripletIndex
}

// NewPredictor assembles a Predictor from its constituent parts. Callers
// normally get a Predictor from trainer.Train or Decode rather than calling
// this directly; it is exported for tests and for hand-assembling
// predictors (e.g. the zero-cascade identity case of S1/S2).
func NewPredictor(initialShape Shape, forests []Forest, indices []TripletIndex) *Predictor {
	if len(forests) != len(indices) {
		panic("triface: forests/indices length mismatch")
	}
	return &Predictor{
		initialShape: initialShape.Clone(),
		forests:      forests,
		indices:      indices,
	}
}

// NumParts reports N, the number of landmark points this predictor emits.
func (p *Predictor) NumParts() int {
	return p.initialShape.NumParts()
}

// CascadeDepth reports the number of cascade stages C baked into the model.
func (p *Predictor) CascadeDepth() int {
	return len(p.forests)
}

// Point is a pixel-space landmark coordinate.
type Point struct {
	X, Y float64
}

// Predict runs every cascade stage against img within rect, starting from
// the model's mean shape, and returns the N resulting landmarks in pixel
// space.
func (p *Predictor) Predict(img Image, rect Rectangle) []Point {
	current := p.initialShape.Clone()

	for stage := range p.forests {
		features := ExtractFeatures(img, rect, current, p.indices[stage])
		for i := range p.forests[stage] {
			current.AddInPlace(p.forests[stage][i].Eval(features))
		}
	}

	toPixel := unnormalising(rect)
	n := current.NumParts()
	points := make([]Point, n)
	for i := 0; i < n; i++ {
		x, y := current.Point(i)
		px, py := toPixel.Apply(float64(x), float64(y))
		points[i] = Point{X: px, Y: py}
	}
	return points
}
