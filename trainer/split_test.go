package trainer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esimov/triface"
)

func TestGenerateCandidate_DistinctIndices(t *testing.T) {
	initial := triface.Shape{0, 0, 1, 0, 0, 1}
	index := triface.TripletIndex{
		{A: 0, B: 1, C: 2, Alpha: 0.1, Beta: 0.1},
		{A: 1, B: 2, C: 0, Alpha: 0.2, Beta: 0.2},
		{A: 2, B: 0, C: 1, Alpha: 0.3, Beta: 0.3},
	}
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		c := generateCandidate(rng, index, initial, 0.1)
		assert.NotEqual(t, c.i, c.j)
		assert.Less(t, c.i, uint32(index.Len()))
		assert.Less(t, c.j, uint32(index.Len()))
	}
}

func TestBestSplit_FindsSeparatingThreshold(t *testing.T) {
	// Two groups of samples with a clean gap in feature[0]-feature[1] and
	// opposite residual signs, so the best split should isolate them.
	numParts := 1
	mkSample := func(f0, f1 float32, target float32) sample {
		return sample{
			target:   triface.Shape{target, 0},
			current:  triface.Shape{0, 0},
			features: []float32{f0, f1},
		}
	}

	samples := []sample{
		mkSample(100, 0, 5),
		mkSample(90, 0, 5),
		mkSample(-100, 0, -5),
		mkSample(-90, 0, -5),
	}

	index := triface.TripletIndex{
		{A: 0, B: 1, C: 0},
		{A: 1, B: 0, C: 1},
	}
	initial := triface.Shape{0, 0, 1, 0}

	total := sumResiduals(samples, 0, len(samples), numParts)
	rng := rand.New(rand.NewSource(5))

	best, ok := bestSplit(rng, samples, 0, len(samples), index, initial, 50, 200, total)
	if !ok {
		t.Fatal("expected at least one valid split among 200 candidates")
	}
	assert.Equal(t, 2, best.nLeft)
	assert.Equal(t, 2, best.nRight)
}
