package triface

// Image is the minimal read-only pixel source the core needs: an 8-bit
// luminance lookup and its pixel-space bounds. Decoding a JPEG/PNG/BMP into
// this shape, or adapting a detector's output into a Rectangle, is a
// collaborator's job (see package imageio and cmd/triface) -- the core
// never imports the standard image package.
type Image interface {
	// At returns the grayscale intensity of the pixel at (x, y). The
	// behaviour for (x, y) outside Bounds() is unspecified; callers must
	// check Bounds().Contains first.
	At(x, y int) uint8
	// Bounds returns the image's pixel-space extent.
	Bounds() Rectangle
}
