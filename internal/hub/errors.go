package hub

import "errors"

// Failure taxonomy for hub exchanges.
//
// Any of these aborts the discovery cycle it occurs in (partial hub data is
// not trusted for artifact generation). Use errors.Is() to classify:
//
//	if errors.Is(err, hub.ErrProtocol) {
//	    // hub rejected the request
//	}
var (
	// ErrNoHost indicates the hub address has not been configured.
	ErrNoHost = errors.New("hub: no host configured")

	// ErrEmptyID indicates a required identifier was empty.
	ErrEmptyID = errors.New("hub: empty identifier")

	// ErrTransport indicates a connection or timeout failure.
	ErrTransport = errors.New("hub: transport failure")

	// ErrProtocol indicates the hub answered with a non-success status.
	ErrProtocol = errors.New("hub: unexpected status")

	// ErrPayload indicates the hub's response body could not be decoded.
	ErrPayload = errors.New("hub: malformed payload")
)
