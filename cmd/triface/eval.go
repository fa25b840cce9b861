package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/esimov/triface"
	"github.com/esimov/triface/utils"
)

func runEval(args []string) error {
	fs := newFlagSet("eval")
	modelPath := fs.String("model", "", "Trained model file")
	inPath := fs.String("in", "", "Annotation CSV file, or a directory of annotation CSV files, to evaluate against")
	workers := fs.Int("conc", runtime.NumCPU(), "Number of annotation files to evaluate concurrently in batch mode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *modelPath == "" || *inPath == "" {
		fs.Usage()
		return fmt.Errorf("eval: -model and -in are required")
	}

	modelFile, err := os.Open(*modelPath)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	defer modelFile.Close()

	predictor, err := triface.Decode(modelFile)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}

	info, err := os.Stat(*inPath)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}

	if info.IsDir() {
		return evalBatch(predictor, *inPath, *workers)
	}

	result, err := evalOne(predictor, *inPath)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	printEvalResult(*inPath, result)
	return nil
}

// evalOne loads one annotation CSV and scores predictor against it.
func evalOne(predictor *triface.Predictor, path string) (triface.Result, error) {
	objects, err := loadAnnotations(path)
	if err != nil {
		return triface.Result{}, err
	}

	images := make([]triface.Image, len(objects))
	labeled := make([]triface.LabeledObject, len(objects))
	for i, obj := range objects {
		images[i] = obj.Image
		labeled[i] = triface.LabeledObject{
			Rect:      obj.Rect,
			Landmarks: obj.Landmarks,
		}
	}

	return triface.Evaluate(predictor, images, labeled), nil
}

func printEvalResult(label string, result triface.Result) {
	fmt.Printf("%s %s mean error: %.4f\n",
		utils.DecorateText("⚡ triface", utils.StatusMessage), label, result.Mean)
	for k, e := range result.PerLandmark {
		fmt.Printf("  landmark %3d: %.4f\n", k, e)
	}
}

// evalBatch walks dir for annotation CSV files and scores predictor
// against each concurrently through a bounded worker pool, the same
// walkFiles/runBatch pipeline predictBatch uses for image directories.
func evalBatch(predictor *triface.Predictor, dir string, workers int) error {
	done := make(chan struct{})
	defer close(done)

	paths, errc := walkFiles(done, dir, []string{".csv"})

	var mu sync.Mutex
	byPath := make(map[string]triface.Result)

	results := runBatch(paths, workers, func(path string) error {
		result, err := evalOne(predictor, path)
		if err != nil {
			return err
		}
		mu.Lock()
		byPath[path] = result
		mu.Unlock()
		return nil
	})

	var failed int
	var sum float64
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s %s: %v\n",
				utils.DecorateText("⚡ triface", utils.ErrorMessage), r.path, r.err)
			continue
		}
		result := byPath[r.path]
		printEvalResult(filepath.Base(r.path), result)
		sum += result.Mean
	}
	if err := <-errc; err != nil {
		return fmt.Errorf("eval: walk %s: %w", dir, err)
	}

	if n := len(results) - failed; n > 0 {
		fmt.Printf("%s overall mean error across %d files: %.4f\n",
			utils.DecorateText("⚡ triface", utils.StatusMessage), n, sum/float64(n))
	}
	if failed > 0 {
		return fmt.Errorf("eval: %d of %d annotation files failed", failed, len(results))
	}
	return nil
}
