package trainer

import (
	"math"
	"math/rand"

	"github.com/esimov/triface"
)

// candidate is one randomly generated split test: branch left iff
// feature[i] - feature[j] > thresh.
type candidate struct {
	i, j   uint32
	thresh float32
}

// generateCandidate implements randomlyGenerateSplitFeature: draw a pair of
// distinct feature-pool indices, accept them with probability that decays
// exponentially in their distance (measured against the trainer's fixed
// initial shape, never a sample's current shape) and pair the accepted
// indices with a uniformly drawn threshold.
func generateCandidate(rng *rand.Rand, index triface.TripletIndex, initialShape triface.Shape, lambda float64) candidate {
	f := index.Len()
	for {
		i := uint32(rng.Intn(f))
		j := uint32(rng.Intn(f))
		if i == j {
			continue
		}

		ix, iy := index.Locate(int(i), initialShape)
		jx, jy := index.Locate(int(j), initialShape)
		dx, dy := float64(ix-jx), float64(iy-jy)
		d := math.Sqrt(dx*dx + dy*dy)

		if rng.Float64() >= math.Exp(-d/lambda) {
			continue
		}

		thresh := float32(rng.Float64()*128 - 64)
		return candidate{i: i, j: j, thresh: thresh}
	}
}

// splitResult is a scored candidate together with the accumulated
// left-side residual sum and count needed to build the actual partition
// once it wins.
type splitResult struct {
	candidate
	left   triface.Shape
	nLeft  int
	nRight int
	score  float64
}

// bestSplit scans numTestSplits random candidates for samples[begin:end]
// and returns the one maximising the sum-of-squared-group-means
// criterion, disqualifying any candidate that sends every sample to one
// side. Ties keep the first-seen candidate, matching scan order.
//
// If every candidate is disqualified, the returned splitResult falls
// back to the first candidate generated in the scan -- feats[0] in
// shape_predictor_TIF.h's generate_split, whose best_score/best_feat
// initialization (best_score=-1, best_feat=0) resolves to exactly this
// outcome -- rather than a synthetic split never seen by the RNG
// stream. The bool return reports whether a qualifying (non-degenerate)
// split was found; it is false only in the fallback case.
func bestSplit(rng *rand.Rand, samples []sample, begin, end int, index triface.TripletIndex, initialShape triface.Shape, lambda float64, numTestSplits int, total triface.Shape) (splitResult, bool) {
	var best, first splitResult
	found := false

	for t := 0; t < numTestSplits; t++ {
		c := generateCandidate(rng, index, initialShape, lambda)

		var left triface.Shape
		nLeft := 0
		for k := begin; k < end; k++ {
			f := samples[k].features
			if f[c.i]-f[c.j] > c.thresh {
				residual := samples[k].target.Sub(samples[k].current)
				if left == nil {
					left = residual
				} else {
					left.AddInPlace(residual)
				}
				nLeft++
			}
		}
		nRight := (end - begin) - nLeft

		if t == 0 {
			first = splitResult{candidate: c, left: left, nLeft: nLeft, nRight: nRight}
		}
		if nLeft == 0 || nRight == 0 {
			continue
		}

		score := dot(left, left)/float64(nLeft) + dot(total.Sub(left), total.Sub(left))/float64(nRight)
		if !found || score > best.score {
			best = splitResult{candidate: c, left: left, nLeft: nLeft, nRight: nRight, score: score}
			found = true
		}
	}

	if !found {
		return first, false
	}
	return best, true
}

func dot(a, b triface.Shape) float64 {
	var s float64
	for i := range a {
		s += float64(a[i]) * float64(b[i])
	}
	return s
}
