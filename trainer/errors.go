package trainer

import "errors"

// ErrInvalidConfig is returned by a Config setter when the supplied value
// violates that hyperparameter's constraint. The Config is left unmodified.
var ErrInvalidConfig = errors.New("trainer: invalid configuration")
