package trainer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esimov/triface"
)

func TestSumResiduals_EmptyRangeIsZeroVector(t *testing.T) {
	sum := sumResiduals(nil, 0, 0, 2)
	assert.Equal(t, triface.NewShape(2), sum)
}

func TestPartition_GroupsLeftBeforeRight(t *testing.T) {
	samples := []sample{
		{features: []float32{10, 0}},
		{features: []float32{-10, 0}},
		{features: []float32{5, 0}},
		{features: []float32{-5, 0}},
	}
	mid := partition(samples, 0, len(samples), 0, 1, 0)
	assert.Equal(t, 2, mid)
	for _, s := range samples[:mid] {
		assert.Greater(t, s.features[0]-s.features[1], float32(0))
	}
	for _, s := range samples[mid:] {
		assert.LessOrEqual(t, s.features[0]-s.features[1], float32(0))
	}
}

func TestGrowTree_ShapeInvariants(t *testing.T) {
	numParts := 1
	mk := func(f0, f1, target float32) sample {
		return sample{
			target:   triface.Shape{target, 0},
			current:  triface.Shape{0, 0},
			features: []float32{f0, f1},
		}
	}
	samples := []sample{
		mk(100, 0, 1),
		mk(90, 0, 1),
		mk(-100, 0, -1),
		mk(-90, 0, -1),
	}
	index := triface.TripletIndex{
		{A: 0, B: 0, C: 0},
		{A: 0, B: 0, C: 0},
	}
	initial := triface.Shape{0, 0}
	rng := rand.New(rand.NewSource(9))

	const treeDepth = 1
	tree := growTree(rng, samples, index, initial, numParts, treeDepth, 50, 200, 1.0)

	assert.Len(t, tree.Splits, 1)
	assert.Len(t, tree.Leaves, 2)
	assert.Equal(t, treeDepth, tree.Depth())

	// the boosting update must have mutated every sample's current shape
	for _, s := range samples {
		assert.NotEqual(t, triface.Shape{0, 0}, s.current)
	}
}

func TestGrowTree_LeafResidualsMatchGroupMeans(t *testing.T) {
	numParts := 1
	mk := func(f0, f1, target float32) sample {
		return sample{
			target:   triface.Shape{target, 0},
			current:  triface.Shape{0, 0},
			features: []float32{f0, f1},
		}
	}
	// with nu=1 and a clean two-group split, each leaf residual should
	// equal that group's mean target exactly.
	samples := []sample{
		mk(100, 0, 2),
		mk(90, 0, 2),
		mk(-100, 0, -4),
		mk(-90, 0, -4),
	}
	index := triface.TripletIndex{{A: 0, B: 0, C: 0}, {A: 0, B: 0, C: 0}}
	initial := triface.Shape{0, 0}
	rng := rand.New(rand.NewSource(11))

	tree := growTree(rng, samples, index, initial, numParts, 1, 50, 500, 1.0)

	var leftLeaf, rightLeaf triface.Shape
	for _, leaf := range tree.Leaves {
		if leaf[0] > 0 {
			leftLeaf = leaf
		} else {
			rightLeaf = leaf
		}
	}
	assert.InDelta(t, 2.0, leftLeaf[0], 1e-4)
	assert.InDelta(t, -4.0, rightLeaf[0], 1e-4)
}
