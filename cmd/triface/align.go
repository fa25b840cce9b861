package main

import (
	"fmt"
	"os"

	"github.com/esimov/triface"
	"github.com/esimov/triface/imageio"
	"github.com/esimov/triface/utils"
)

// runAlign is a debug aid: predict landmarks on two images and report the
// similarity transform (rotation, uniform scale, translation) that best
// maps the first prediction onto the reference prediction, the one place
// FindSimilarity is actually exercised.
func runAlign(args []string) error {
	fs := newFlagSet("align")
	modelPath := fs.String("model", "", "Trained model file")
	inPath := fs.String("in", "", "Input image")
	refPath := fs.String("ref", "", "Reference image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *modelPath == "" || *inPath == "" || *refPath == "" {
		fs.Usage()
		return fmt.Errorf("align: -model, -in and -ref are required")
	}

	modelFile, err := os.Open(*modelPath)
	if err != nil {
		return fmt.Errorf("align: %w", err)
	}
	defer modelFile.Close()

	predictor, err := triface.Decode(modelFile)
	if err != nil {
		return fmt.Errorf("align: %w", err)
	}

	img, err := imageio.Open(*inPath)
	if err != nil {
		return fmt.Errorf("align: %w", err)
	}
	ref, err := imageio.Open(*refPath)
	if err != nil {
		return fmt.Errorf("align: %w", err)
	}

	fromPoints := predictor.Predict(img, img.Bounds())
	toPoints := predictor.Predict(ref, ref.Bounds())

	from := triface.NewShape(len(fromPoints))
	to := triface.NewShape(len(toPoints))
	for i, p := range fromPoints {
		from.SetPoint(i, float32(p.X), float32(p.Y))
	}
	for i, p := range toPoints {
		to.SetPoint(i, float32(p.X), float32(p.Y))
	}

	t := triface.FindSimilarity(from, to)

	fmt.Printf("%s similarity transform %s -> %s:\n",
		utils.DecorateText("⚡ triface", utils.StatusMessage), *inPath, *refPath)
	fmt.Printf("  a=%.4f b=%.4f tx=%.4f\n", t.A, t.B, t.TX)
	fmt.Printf("  c=%.4f d=%.4f ty=%.4f\n", t.C, t.D, t.TY)
	return nil
}
