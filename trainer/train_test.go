package trainer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esimov/triface"
)

func tinyObjects() []Object {
	rect := triface.Rect(0, 0, 20, 20)
	return []Object{
		makeObject(rect, []triface.Point{{X: 4, Y: 4}, {X: 16, Y: 4}, {X: 4, Y: 16}}),
		makeObject(rect, []triface.Point{{X: 5, Y: 5}, {X: 15, Y: 5}, {X: 5, Y: 15}}),
		makeObject(rect, []triface.Point{{X: 3, Y: 6}, {X: 17, Y: 6}, {X: 3, Y: 14}}),
	}
}

func tinyConfig(seed string) Config {
	cfg := NewConfig()
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(cfg.SetCascadeDepth(2))
	must(cfg.SetTreeDepth(2))
	must(cfg.SetTreesPerCascade(3))
	must(cfg.SetOversamplingAmount(2))
	must(cfg.SetFeaturePoolSize(10))
	must(cfg.SetNumTestSplits(5))
	must(cfg.SetRandomSeed(seed))
	return cfg
}

func TestTrain_ProducesUsablePredictor(t *testing.T) {
	cfg := tinyConfig("seed-a")
	predictor, err := Train(tinyObjects(), cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, predictor)

	assert.Equal(t, 3, predictor.NumParts())
	assert.Equal(t, 2, predictor.CascadeDepth())

	rect := triface.Rect(0, 0, 20, 20)
	img := stubImage{bounds: rect}
	points := predictor.Predict(img, rect)
	assert.Len(t, points, 3)
}

func TestTrain_DeterministicForSameSeed(t *testing.T) {
	p1, err := Train(tinyObjects(), tinyConfig("repro"), nil)
	require.NoError(t, err)
	p2, err := Train(tinyObjects(), tinyConfig("repro"), nil)
	require.NoError(t, err)

	var buf1, buf2 bytes.Buffer
	require.NoError(t, p1.Encode(&buf1))
	require.NoError(t, p2.Encode(&buf2))
	assert.Equal(t, buf1.Bytes(), buf2.Bytes())
}

func TestTrain_DifferentSeedsDiverge(t *testing.T) {
	p1, err := Train(tinyObjects(), tinyConfig("seed-a"), nil)
	require.NoError(t, err)
	p2, err := Train(tinyObjects(), tinyConfig("seed-b"), nil)
	require.NoError(t, err)

	var buf1, buf2 bytes.Buffer
	require.NoError(t, p1.Encode(&buf1))
	require.NoError(t, p2.Encode(&buf2))
	assert.NotEqual(t, buf1.Bytes(), buf2.Bytes())
}

type recordingProgress struct {
	calls int
	last  struct{ stage, tree, fitted, total int }
}

func (p *recordingProgress) TreeFitted(stage, treeInStage, treesFittedSoFar, treesTotal int) {
	p.calls++
	p.last.stage, p.last.tree, p.last.fitted, p.last.total = stage, treeInStage, treesFittedSoFar, treesTotal
}

func TestTrain_ReportsProgressForEveryTree(t *testing.T) {
	cfg := tinyConfig("progress")
	progress := &recordingProgress{}

	_, err := Train(tinyObjects(), cfg, progress)
	require.NoError(t, err)

	assert.Equal(t, cfg.CascadeDepth()*cfg.TreesPerCascade(), progress.calls)
	assert.Equal(t, progress.calls, progress.last.fitted)
	assert.Equal(t, progress.calls, progress.last.total)
}

func TestTrain_RejectsEmptyCorpus(t *testing.T) {
	_, err := Train(nil, tinyConfig("x"), nil)
	require.Error(t, err)
}
