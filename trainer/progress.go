package trainer

// Progress is the one-way sink Train reports tree-fitting progress
// through. Implementations must return promptly since they are called
// synchronously from the training hot path, once per tree fit.
type Progress interface {
	// TreeFitted is called after each tree finishes growing. stage and
	// treeInStage are both 0-indexed; treesFittedSoFar is a running total
	// across the whole cascade and treesTotal is CascadeDepth*TreesPerCascade.
	TreeFitted(stage, treeInStage, treesFittedSoFar, treesTotal int)
}

// NopProgress discards all progress reports. It is the default used by
// Train when no Progress is supplied.
type NopProgress struct{}

func (NopProgress) TreeFitted(stage, treeInStage, treesFittedSoFar, treesTotal int) {}
