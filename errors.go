package pipenet

import "errors"

// Error kinds shared by every package. Package-level sentinels wrap these.
var (
	// ErrInvalidConfiguration reports missing or inconsistent input data:
	// unknown units, bad table rows, duplicate segment ids, a loop-less
	// analysis network, and the like.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrSingularSystem reports a division by zero in valve, fitting or
	// loop-correction arithmetic.
	ErrSingularSystem = errors.New("singular system")

	// ErrConvergenceFailure reports an iterative solve that hit its cap.
	ErrConvergenceFailure = errors.New("convergence failure")
)
