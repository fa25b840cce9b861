package triface

// solidImage is a fixed-intensity test collaborator implementing Image.
type solidImage struct {
	bounds Rectangle
	value  uint8
}

func (s solidImage) At(x, y int) uint8 { return s.value }
func (s solidImage) Bounds() Rectangle { return s.bounds }

// rampImage varies intensity with x so feature extraction can be asserted
// against a known, non-constant pixel field.
type rampImage struct {
	bounds Rectangle
}

func (r rampImage) At(x, y int) uint8 {
	return uint8((x + y) % 256)
}

func (r rampImage) Bounds() Rectangle { return r.bounds }
