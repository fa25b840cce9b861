package triface

import "math/rand"

// TripletEntry locates one feature-pool sample point as an affine
// combination of three landmarks: P = shape[A] + Alpha*(shape[B]-shape[A])
// + Beta*(shape[C]-shape[A]).
type TripletEntry struct {
	A, B, C     uint32
	Alpha, Beta float64
}

// TripletIndex is a per-cascade-stage table of F triplet entries. It maps a
// shape to a list of sample-point locations that deform non-rigidly with
// the shape, instead of the fixed nearest-landmark-offset scheme used by
// offset-based cascades.
type TripletIndex []TripletEntry

// SampleTripletIndex draws a fresh, independently-random triplet index of
// poolSize entries over numParts landmarks. For each slot it draws anchors
// a,b,c uniformly, rejecting until pairwise distinct, and ratios alpha,beta
// uniformly on [0, 0.5) -- the bias below 0.5 keeps sampled points inside
// the anchor triangle's lower-left half-parallelogram, limiting
// extrapolation outside the shape's convex hull.
func SampleTripletIndex(rng *rand.Rand, numParts, poolSize int) TripletIndex {
	if numParts < 3 {
		panic("triface: SampleTripletIndex requires at least 3 landmark parts")
	}
	idx := make(TripletIndex, poolSize)
	for i := range idx {
		var a, b, c uint32
		for {
			a = uint32(rng.Intn(numParts))
			b = uint32(rng.Intn(numParts))
			c = uint32(rng.Intn(numParts))
			if a != b && b != c && c != a {
				break
			}
		}
		idx[i] = TripletEntry{
			A: a, B: b, C: c,
			Alpha: rng.Float64() * 0.5,
			Beta:  rng.Float64() * 0.5,
		}
	}
	return idx
}

// Locate returns the shape-space point the k-th entry resolves to against
// the given shape.
func (idx TripletIndex) Locate(k int, shape Shape) (x, y float32) {
	e := idx[k]
	ax, ay := shape.Point(int(e.A))
	bx, by := shape.Point(int(e.B))
	cx, cy := shape.Point(int(e.C))

	alpha, beta := float32(e.Alpha), float32(e.Beta)
	x = ax + alpha*(bx-ax) + beta*(cx-ax)
	y = ay + alpha*(by-ay) + beta*(cy-ay)
	return x, y
}

// Len returns the pool size F.
func (idx TripletIndex) Len() int { return len(idx) }
