package main

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/esimov/triface"
)

// drawLandmarks marks each point onto img as a small filled square in the
// given color, in the style of caire's own circle-marker debug drawing,
// simplified here since there is no GUI renderer to target -- only a
// static image to save to disk.
func drawLandmarks(img *image.NRGBA, points []triface.Point, col color.NRGBA, radius int) {
	for _, p := range points {
		cx, cy := int(p.X), int(p.Y)
		rect := image.Rect(cx-radius, cy-radius, cx+radius+1, cy+radius+1).Intersect(img.Bounds())
		draw.Draw(img, rect, &image.Uniform{C: col}, image.Point{}, draw.Over)
	}
}
