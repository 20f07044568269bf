package controller

import "errors"

var (
	// ErrHubNotConfigured indicates no hub address is configured yet.
	// Discovery and commands are refused with an operator notice until
	// one is set.
	ErrHubNotConfigured = errors.New("hub address not configured")

	// ErrUnknownNode indicates a command addressed a node that is not in
	// the registry or no longer backed by the topology.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownCommand indicates a command name the addressed node type
	// does not accept.
	ErrUnknownCommand = errors.New("unrecognised command")

	// ErrBadParameter indicates a malformed payload or a value outside the
	// addressed node's range.
	ErrBadParameter = errors.New("bad command parameter")

	// ErrBadTopic indicates a message arrived on a topic that does not
	// match the node command scheme.
	ErrBadTopic = errors.New("malformed command topic")
)
