package main

import (
	"fmt"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	pigo "github.com/esimov/pigo/core"

	"github.com/esimov/triface"
	"github.com/esimov/triface/imageio"
	"github.com/esimov/triface/utils"
)

// predictOptions bundles the per-image flags predictOne needs, shared
// between single-file mode and every worker in batch mode.
type predictOptions struct {
	rect    string
	useFace bool
	cascade string
	color   color.NRGBA
}

func runPredict(args []string) error {
	fs := newFlagSet("predict")
	modelPath := fs.String("model", "", "Trained model file")
	inPath := fs.String("in", "", "Input image, a directory of images, or a URL")
	outPath := fs.String("out", "prediction.jpg", "Output image (or output directory, in batch mode) with landmarks drawn")
	rectFlag := fs.String("rect", "", "Detection rectangle as x0,y0,x1,y1 (skip -face); single-image mode only")
	useFace := fs.Bool("face", false, "Detect the face with pigo instead of -rect")
	cascadePath := fs.String("cascade", "", "Pigo cascade classifier file (required with -face)")
	markColor := fs.String("color", "#ff0000", "Landmark marker color")
	workers := fs.Int("conc", runtime.NumCPU(), "Number of images to process concurrently in batch mode")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *modelPath == "" || *inPath == "" {
		fs.Usage()
		return fmt.Errorf("predict: -model and -in are required")
	}

	modelFile, err := os.Open(*modelPath)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	defer modelFile.Close()

	predictor, err := triface.Decode(modelFile)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	opts := predictOptions{
		rect:    *rectFlag,
		useFace: *useFace,
		cascade: *cascadePath,
		color:   utils.HexToRGBA(*markColor),
	}

	// A remote source is downloaded once to a temporary file and treated
	// as a single image, the same URL/local-path dispatch cmd/caire's
	// execute() performs via utils.IsValidUrl/utils.DownloadImage.
	if utils.IsValidUrl(*inPath) {
		src, err := utils.DownloadImage(*inPath)
		if err != nil {
			return fmt.Errorf("predict: %w", err)
		}
		defer os.Remove(src.Name())
		defer src.Close()
		return predictOne(predictor, src.Name(), *outPath, opts)
	}

	info, err := os.Stat(*inPath)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	if info.IsDir() {
		if *rectFlag != "" {
			return fmt.Errorf("predict: -rect is not supported in batch mode, use -face instead")
		}
		if err := os.MkdirAll(*outPath, 0755); err != nil {
			return fmt.Errorf("predict: create output directory %s: %w", *outPath, err)
		}
		return predictBatch(predictor, *inPath, *outPath, opts, *workers)
	}

	return predictOne(predictor, *inPath, *outPath, opts)
}

// predictOne runs the predictor against one image file, draws the
// resulting landmarks and writes the annotated JPEG to outPath.
func predictOne(predictor *triface.Predictor, inPath, outPath string, opts predictOptions) error {
	gray, err := imageio.Open(inPath)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	var rect triface.Rectangle
	switch {
	case opts.useFace:
		if opts.cascade == "" {
			return fmt.Errorf("predict: -cascade is required with -face")
		}
		rect, err = detectFace(inPath, opts.cascade)
		if err != nil {
			return fmt.Errorf("predict: %w", err)
		}
	case opts.rect != "":
		rect, err = parseRect(opts.rect)
		if err != nil {
			return fmt.Errorf("predict: %w", err)
		}
	default:
		rect = gray.Bounds()
	}

	points := predictor.Predict(gray, rect)

	src, err := imaging.Open(inPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	nrgba := imaging.Clone(src)
	drawLandmarks(nrgba, points, opts.color, 2)

	out, err := os.OpenFile(outPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}
	defer out.Close()

	if err := jpeg.Encode(out, nrgba, &jpeg.Options{Quality: 95}); err != nil {
		return fmt.Errorf("predict: encode output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "%s %s %d landmarks -> %s\n",
		utils.DecorateText("⚡ triface", utils.StatusMessage),
		utils.DecorateText("⇢", utils.DefaultMessage),
		len(points), outPath)
	return nil
}

// predictBatch walks dir for image files and runs predictOne over each
// concurrently through a bounded worker pool -- structurally identical to
// cmd/caire's directory-mode walkDir/consumer/sync.WaitGroup pipeline,
// generalised here into walkFiles/runBatch.
func predictBatch(predictor *triface.Predictor, dir, outDir string, opts predictOptions, workers int) error {
	validExtensions := []string{".jpg", ".jpeg", ".png", ".bmp"}

	done := make(chan struct{})
	defer close(done)

	paths, errc := walkFiles(done, dir, validExtensions)

	results := runBatch(paths, workers, func(path string) error {
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		dst := filepath.Join(outDir, base+".jpg")
		return predictOne(predictor, path, dst, opts)
	})

	var failed int
	for _, r := range results {
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "%s %s: %v\n",
				utils.DecorateText("⚡ triface", utils.ErrorMessage), r.path, r.err)
		}
	}
	if err := <-errc; err != nil {
		return fmt.Errorf("predict: walk %s: %w", dir, err)
	}
	if failed > 0 {
		return fmt.Errorf("predict: %d of %d images failed", failed, len(results))
	}
	return nil
}

// detectFace runs pigo as a detection collaborator, never a landmark
// source, mirroring the role caire gives it: mask out an important
// region, not find points.
func detectFace(imgPath, cascadePath string) (triface.Rectangle, error) {
	cascadeFile, err := os.ReadFile(cascadePath)
	if err != nil {
		return triface.Rectangle{}, fmt.Errorf("read cascade file: %w", err)
	}

	src, err := pigo.GetImage(imgPath)
	if err != nil {
		return triface.Rectangle{}, fmt.Errorf("open image file: %w", err)
	}
	pixels := pigo.RgbToGrayscale(src)
	cols, rows := src.Bounds().Max.X, src.Bounds().Max.Y

	classifier := pigo.NewPigo()
	classifier, err = classifier.Unpack(cascadeFile)
	if err != nil {
		return triface.Rectangle{}, fmt.Errorf("unpack cascade file: %w", err)
	}

	maxSize := rows
	if cols > maxSize {
		maxSize = cols
	}
	cParams := pigo.CascadeParams{
		MinSize:     100,
		MaxSize:     maxSize,
		ShiftFactor: 0.1,
		ScaleFactor: 1.1,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	faces := classifier.RunCascade(cParams, 0.0)
	faces = classifier.ClusterDetections(faces, 0.2)
	if len(faces) == 0 {
		return triface.Rectangle{}, fmt.Errorf("no face detected in %s", imgPath)
	}

	best := faces[0]
	for _, f := range faces[1:] {
		if f.Q > best.Q {
			best = f
		}
	}

	half := best.Scale / 2
	return triface.Rect(best.Col-half, best.Row-half, best.Col+half, best.Row+half), nil
}

func parseRect(s string) (triface.Rectangle, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return triface.Rectangle{}, fmt.Errorf("rect must be x0,y0,x1,y1, got %q", s)
	}
	var v [4]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return triface.Rectangle{}, fmt.Errorf("invalid rect value %q: %w", p, err)
		}
		v[i] = n
	}
	return triface.Rect(v[0], v[1], v[2], v[3]), nil
}
