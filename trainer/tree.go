package trainer

import (
	"math/rand"

	"github.com/esimov/triface"
)

// nodeRange tracks the sample slice [begin, end) and accumulated residual
// sum owned by one node of the tree under construction, indexed by heap
// position.
type nodeRange struct {
	begin, end int
	sum        triface.Shape
}

// growTree grows one full-depth-D regression tree over the given samples,
// breadth-first, and mutates every sample's current shape by the leaf
// value it lands in -- the boosting update that lets the next tree fit
// the new residual.
func growTree(rng *rand.Rand, samples []sample, index triface.TripletIndex, initialShape triface.Shape, numParts int, treeDepth int, lambda float64, numTestSplits int, nu float64) triface.RegressionTree {
	numInternal := (1 << treeDepth) - 1
	numLeaves := 1 << treeDepth
	totalNodes := numInternal + numLeaves

	ranges := make([]nodeRange, totalNodes)
	splits := make([]triface.SplitNode, numInternal)

	root := sumResiduals(samples, 0, len(samples), numParts)
	ranges[0] = nodeRange{begin: 0, end: len(samples), sum: root}

	for i := 0; i < numInternal; i++ {
		r := ranges[i]
		// When no candidate in the scan qualifies (every one sends the
		// whole range to a single side), bestSplit falls back to the
		// first candidate it generated -- matching shape_predictor_TIF.h's
		// generate_split, whose best_score=-1/best_feat=0 initialization
		// resolves to feats[0] rather than a split invented outside the
		// RNG stream.
		best, _ := bestSplit(rng, samples, r.begin, r.end, index, initialShape, lambda, numTestSplits, r.sum)

		splits[i] = triface.SplitNode{I: best.i, J: best.j, Thresh: best.thresh}
		mid := partition(samples, r.begin, r.end, best.i, best.j, best.thresh)

		left := best.left
		if left == nil {
			left = triface.NewShape(numParts)
		}
		right := r.sum.Sub(left)
		assignChild(ranges, i, 2*i+1, r.begin, mid, left, numInternal)
		assignChild(ranges, i, 2*i+2, mid, r.end, right, numInternal)
	}

	leaves := make([]triface.Shape, numLeaves)
	for p := 0; p < numLeaves; p++ {
		nodeIdx := numInternal + p
		r := ranges[nodeIdx]
		if r.end > r.begin {
			leaves[p] = r.sum.Scale(float32(nu) / float32(r.end-r.begin))
		} else {
			leaves[p] = triface.NewShape(numParts)
		}
	}

	for p := 0; p < numLeaves; p++ {
		r := ranges[numInternal+p]
		for k := r.begin; k < r.end; k++ {
			samples[k].current.AddInPlace(leaves[p])
		}
	}

	return triface.RegressionTree{Splits: splits, Leaves: leaves}
}

// assignChild records a child node's range and residual sum. Leaf-level
// children (index >= numInternal) only need their range recorded here;
// their sum still feeds the final leaf-value pass.
func assignChild(ranges []nodeRange, parent, child, begin, end int, sum triface.Shape, numInternal int) {
	ranges[child] = nodeRange{begin: begin, end: end, sum: sum}
}

func sumResiduals(samples []sample, begin, end, numParts int) triface.Shape {
	sum := triface.NewShape(numParts)
	for k := begin; k < end; k++ {
		sum.AddInPlace(samples[k].target.Sub(samples[k].current))
	}
	return sum
}

// partition reorders samples[begin:end] in place so every sample whose
// feature[i]-feature[j] exceeds thresh comes first, and returns the index
// of the first right-going sample.
func partition(samples []sample, begin, end int, i, j uint32, thresh float32) int {
	mid := begin
	for k := begin; k < end; k++ {
		f := samples[k].features
		if f[i]-f[j] > thresh {
			samples[mid], samples[k] = samples[k], samples[mid]
			mid++
		}
	}
	return mid
}
