package arbor

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("arbor: invalid configuration")
	// ErrInvalidArgument signals a precondition violation at a public entry point.
	ErrInvalidArgument = errors.New("arbor: invalid argument")
	// ErrExhausted signals that node or data allocation failed; the operation
	// had no effect and may be retried after removing elements.
	ErrExhausted = errors.New("arbor: allocation failed")
	// ErrDuplicateKey signals an insert of a key already present in the tree.
	ErrDuplicateKey = errors.New("arbor: key already exists")
	// ErrNotFound signals removal of a key not present in the tree.
	ErrNotFound = errors.New("arbor: key not found")
	// ErrRankRange signals an order-statistics rank outside [0, Len()).
	ErrRankRange = errors.New("arbor: rank out of range")
	// ErrCorrupt is reported by Check when a structural invariant does not
	// hold. It indicates a bug in this package, not a usage error.
	ErrCorrupt = errors.New("arbor: structural invariant violated")
)
