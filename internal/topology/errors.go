package topology

import "errors"

// Discovery errors for the topology package.
//
// These errors can be checked using errors.Is():
//
//	if errors.Is(err, topology.ErrUnknownRoom) {
//	    // device referenced a room discovery hasn't seen
//	}
var (
	// ErrMalformedName is returned when an activity name is missing the
	// "Room: Activity" separator. It fails the whole ingestion batch.
	ErrMalformedName = errors.New("topology: malformed activity name")

	// ErrUnknownRoom is recorded when a device references a room UUID the
	// topology does not contain. The device is skipped; the batch continues.
	ErrUnknownRoom = errors.New("topology: unknown room")
)
