package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/esimov/triface/trainer"
)

// modelMetadata is the JSON sidecar a training run writes alongside the
// binary model: bookkeeping that has no business living in the
// byte-exact wire format of triface.Predictor.Encode.
type modelMetadata struct {
	RunID       string    `json:"runId"`
	CreatedAt   time.Time `json:"createdAt"`
	NumParts    int       `json:"numParts"`
	Hyperparams struct {
		CascadeDepth             int     `json:"cascadeDepth"`
		TreeDepth                int     `json:"treeDepth"`
		TreesPerCascade          int     `json:"treesPerCascade"`
		Nu                       float64 `json:"nu"`
		OversamplingAmount       int     `json:"oversamplingAmount"`
		FeaturePoolSize          int     `json:"featurePoolSize"`
		Lambda                   float64 `json:"lambda"`
		NumTestSplits            int     `json:"numTestSplits"`
		FeaturePoolRegionPadding float64 `json:"featurePoolRegionPadding"`
		RandomSeed               string  `json:"randomSeed"`
	} `json:"hyperparameters"`
}

func newModelMetadata(numParts int, cfg trainer.Config) modelMetadata {
	m := modelMetadata{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now(),
		NumParts:  numParts,
	}
	m.Hyperparams.CascadeDepth = cfg.CascadeDepth()
	m.Hyperparams.TreeDepth = cfg.TreeDepth()
	m.Hyperparams.TreesPerCascade = cfg.TreesPerCascade()
	m.Hyperparams.Nu = cfg.Nu()
	m.Hyperparams.OversamplingAmount = cfg.OversamplingAmount()
	m.Hyperparams.FeaturePoolSize = cfg.FeaturePoolSize()
	m.Hyperparams.Lambda = cfg.Lambda()
	m.Hyperparams.NumTestSplits = cfg.NumTestSplits()
	m.Hyperparams.FeaturePoolRegionPadding = cfg.FeaturePoolRegionPadding()
	m.Hyperparams.RandomSeed = cfg.RandomSeed()
	return m
}

func writeModelMetadata(modelPath string, m modelMetadata) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal model metadata: %w", err)
	}
	if err := os.WriteFile(modelPath+".json", data, 0644); err != nil {
		return fmt.Errorf("write model metadata: %w", err)
	}
	return nil
}
