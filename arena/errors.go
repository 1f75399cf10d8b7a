package arena

import "errors"

var (
	// ErrPoolFull signals that a fixed-capacity pool has no free slot left.
	ErrPoolFull = errors.New("arena: pool exhausted")
	// ErrInvalidCapacity signals a non-positive capacity or stride.
	ErrInvalidCapacity = errors.New("arena: invalid capacity")
	// ErrBound signals that a pool is already bound to an owner.
	ErrBound = errors.New("arena: pool already bound")
	// ErrHibernated signals an operation on a hibernated pool.
	ErrHibernated = errors.New("arena: pool is hibernated")
)
