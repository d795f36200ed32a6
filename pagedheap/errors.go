package pagedheap

import "errors"

var (
	// ErrInvalidPointer is returned by Free when buf does not address
	// the first page of a live allocation in this heap: misaligned,
	// out of range, or pointing into the interior of a run.
	ErrInvalidPointer = errors.New("pagedheap: invalid pointer")

	// ErrNotOwner is returned by Free when the page at buf's address is
	// owned by a thread other than the caller.
	ErrNotOwner = errors.New("pagedheap: caller does not own this allocation")
)
