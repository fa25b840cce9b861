package main

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/term"

	"github.com/esimov/triface/trainer"
	"github.com/esimov/triface/utils"
)

func runTrain(args []string) error {
	fs := newFlagSet("train")
	in := fs.String("in", "", "Annotation CSV file (image,x0,y0,x1,y1,landmark pairs...)")
	out := fs.String("out", "model.bin", "Output model file")
	configPath := fs.String("config", "", "Training hyperparameters YAML file (optional)")
	quiet := fs.Bool("quiet", false, "Disable the progress spinner")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *in == "" {
		fs.Usage()
		return fmt.Errorf("train: -in is required")
	}

	cfg := trainer.NewConfig()
	if *configPath != "" {
		loaded, err := trainer.LoadConfigYAML(*configPath)
		if err != nil {
			return fmt.Errorf("train: %w", err)
		}
		cfg = loaded
	}

	objects, err := loadAnnotations(*in)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	var progress trainer.Progress = trainer.NopProgress{}
	var spinner *utils.Spinner
	if !*quiet && term.IsTerminal(int(os.Stderr.Fd())) {
		msg := fmt.Sprintf("%s %s",
			utils.DecorateText("⚡ triface", utils.StatusMessage),
			utils.DecorateText("⇢ training in progress...", utils.DefaultMessage),
		)
		spinner = utils.NewSpinner(msg, time.Millisecond*80, true)
		spinner.Start()
		progress = &spinnerProgress{spinner: spinner, prefix: "⚡ triface"}
	}

	now := time.Now()
	predictor, err := trainer.Train(objects, cfg, progress)
	if spinner != nil {
		spinner.StopMsg = fmt.Sprintf("%s %s\n",
			utils.DecorateText("⚡ triface", utils.StatusMessage),
			utils.DecorateText("⇢ training finished", utils.SuccessMessage),
		)
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	f, err := os.OpenFile(*out, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("train: create %s: %w", *out, err)
	}
	defer f.Close()

	if err := predictor.Encode(f); err != nil {
		return fmt.Errorf("train: encode model: %w", err)
	}

	meta := newModelMetadata(predictor.NumParts(), cfg)
	if err := writeModelMetadata(*out, meta); err != nil {
		return fmt.Errorf("train: %w", err)
	}

	fmt.Fprintf(os.Stderr, "model written to %s (%s)\n", *out, utils.FormatTime(time.Since(now)))
	return nil
}
