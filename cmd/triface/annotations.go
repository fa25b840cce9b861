package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/esimov/triface"
	"github.com/esimov/triface/imageio"
	"github.com/esimov/triface/trainer"
)

// loadAnnotations reads a minimal CSV annotation file: one row per
// annotated object, columns "image,x0,y0,x1,y1,lx0,ly0,lx1,ly1,...". Rows
// referencing the same image path share one decoded triface.Image.
func loadAnnotations(path string) ([]trainer.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open annotations %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	images := map[string]triface.Image{}
	var objects []trainer.Object

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse annotations %s: %w", path, err)
	}

	for i, row := range rows {
		if len(row) < 5 || (len(row)-5)%2 != 0 {
			return nil, fmt.Errorf("annotations %s: row %d: malformed row (%d columns)", path, i, len(row))
		}

		imgPath := row[0]
		img, ok := images[imgPath]
		if !ok {
			gray, err := imageio.Open(imgPath)
			if err != nil {
				return nil, fmt.Errorf("annotations %s: row %d: %w", path, i, err)
			}
			img = gray
			images[imgPath] = img
		}

		coords := make([]int, 4)
		for k := 0; k < 4; k++ {
			v, err := strconv.Atoi(row[1+k])
			if err != nil {
				return nil, fmt.Errorf("annotations %s: row %d: invalid rect value %q: %w", path, i, row[1+k], err)
			}
			coords[k] = v
		}
		rect := triface.Rect(coords[0], coords[1], coords[2], coords[3])

		numParts := (len(row) - 5) / 2
		landmarks := make([]triface.Point, numParts)
		for k := 0; k < numParts; k++ {
			x, err := strconv.ParseFloat(row[5+2*k], 64)
			if err != nil {
				return nil, fmt.Errorf("annotations %s: row %d: invalid landmark x: %w", path, i, err)
			}
			y, err := strconv.ParseFloat(row[5+2*k+1], 64)
			if err != nil {
				return nil, fmt.Errorf("annotations %s: row %d: invalid landmark y: %w", path, i, err)
			}
			landmarks[k] = triface.Point{X: x, Y: y}
		}

		objects = append(objects, trainer.Object{
			Image:     img,
			Rect:      rect,
			Landmarks: landmarks,
		})
	}

	return objects, nil
}
