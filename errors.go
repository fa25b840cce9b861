package triface

import "errors"

// Sentinel errors returned by the core predictor API. Callers should use
// errors.Is to check for a specific kind rather than comparing formatted
// messages, since every error returned here is wrapped with context via
// fmt.Errorf("...: %w", ...).
var (
	// ErrUnsupportedModelVersion is returned by Decode when the stream's
	// version field does not match the single version this package writes.
	ErrUnsupportedModelVersion = errors.New("triface: unsupported model version")

	// ErrShapeMismatch is the text of the panic raised when two shapes that
	// are expected to describe the same number of parts don't.
	ErrShapeMismatch = errors.New("triface: shape length mismatch")

	// ErrEmptyCorpus is returned by trainer.Train when no images or no
	// annotated objects are supplied.
	ErrEmptyCorpus = errors.New("triface: training corpus is empty")

	// ErrInconsistentParts is returned by trainer.Train when annotated
	// objects disagree on the number of landmark parts, or an object has
	// zero parts.
	ErrInconsistentParts = errors.New("triface: inconsistent number of parts across training objects")
)
