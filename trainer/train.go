package trainer

import (
	"github.com/esimov/triface"
)

// Train fits a cascaded TIF shape predictor from a corpus of annotated
// objects. Given a fixed RandomSeed, Train is deterministic: the RNG is
// consumed in three strictly sequential global phases -- initial-shape
// perturbation, then every cascade stage's triplet index sampled in one
// upfront pass, then per-tree per-node split candidates -- mirroring the
// original's randomly_sample_pixel_coordinates, which fills the whole
// pixel_coordinates[cascade_depth] array before the per-cascade tree-
// training loop begins. Two runs with the same seed and inputs produce
// bit-identical predictors.
//
// progress may be nil, in which case a NopProgress is used.
func Train(objects []Object, cfg Config, progress Progress) (*triface.Predictor, error) {
	if progress == nil {
		progress = NopProgress{}
	}

	rng := newRand(cfg.RandomSeed())

	samples, meanShape, err := populate(objects, rng, cfg.OversamplingAmount())
	if err != nil {
		return nil, err
	}
	numParts := meanShape.NumParts()

	cascadeDepth := cfg.CascadeDepth()
	treesPerCascade := cfg.TreesPerCascade()
	treesTotal := cascadeDepth * treesPerCascade

	indices := make([]triface.TripletIndex, cascadeDepth)
	for c := 0; c < cascadeDepth; c++ {
		indices[c] = triface.SampleTripletIndex(rng, numParts, cfg.FeaturePoolSize())
	}

	forests := make([]triface.Forest, cascadeDepth)
	treesFitted := 0

	for c := 0; c < cascadeDepth; c++ {
		index := indices[c]

		for i := range samples {
			samples[i].features = triface.ExtractFeatures(samples[i].image, samples[i].rect, samples[i].current, index)
		}

		forest := make(triface.Forest, treesPerCascade)
		for t := 0; t < treesPerCascade; t++ {
			tree := growTree(rng, samples, index, meanShape, numParts, cfg.TreeDepth(), cfg.Lambda(), cfg.NumTestSplits(), cfg.Nu())
			forest[t] = tree

			treesFitted++
			progress.TreeFitted(c, t, treesFitted, treesTotal)
		}
		forests[c] = forest
	}

	return triface.NewPredictor(meanShape, forests, indices), nil
}
