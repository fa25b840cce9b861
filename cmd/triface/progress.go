package main

import (
	"fmt"

	"github.com/esimov/triface/utils"
)

// spinnerProgress reports tree-fitting progress through a utils.Spinner,
// the same start/stop/clear state machine cmd/caire drives its own
// resize-progress indicator with.
type spinnerProgress struct {
	spinner *utils.Spinner
	prefix  string
}

func (p *spinnerProgress) TreeFitted(stage, treeInStage, treesFittedSoFar, treesTotal int) {
	pct := 100 * float64(treesFittedSoFar) / float64(treesTotal)
	p.spinner.SetMessage(fmt.Sprintf("%s cascade %d, tree %d (%d/%d, %.1f%%) ",
		p.prefix, stage, treeInStage, treesFittedSoFar, treesTotal, pct))
}
