package registry

import "errors"

var (
	// ErrNodeNotFound indicates the requested node address is not in the
	// registry.
	ErrNodeNotFound = errors.New("node not found")

	// ErrNodeExists indicates an insert collided with an existing node at
	// the same address.
	ErrNodeExists = errors.New("node already exists")

	// ErrEmptyAddress indicates an identifier reduced to an empty address.
	ErrEmptyAddress = errors.New("derived address is empty")
)
