package triface

// ExtractFeatures samples the pool of F pixel intensities that index
// describes against shape, mapping each triplet-interpolated point from
// normalised shape space into rect's pixel space. A sample point that
// lands outside the image contributes 0 rather than failing -- an
// out-of-frame sample is expected, not exceptional, since a perturbed
// initial shape can legitimately fall outside an unusually proportioned
// box.
func ExtractFeatures(img Image, rect Rectangle, shape Shape, index TripletIndex) []float32 {
	toPixel := unnormalising(rect)
	bounds := img.Bounds()

	f := make([]float32, index.Len())
	for k := range f {
		sx, sy := index.Locate(k, shape)
		px, py := toPixel.Apply(float64(sx), float64(sy))

		x, y := int(px), int(py)
		if bounds.Contains(x, y) {
			f[k] = float32(img.At(x, y))
		}
	}
	return f
}
