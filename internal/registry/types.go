package registry

import "time"

// Node is one row of the host node registry: a node this service has
// already created on the host, keyed by its derived address.
type Node struct {
	// Address is the host node address derived from the hub identifier
	// via AddressFromID.
	Address string

	// Name is the display name the node was created with.
	Name string

	// NodeDef is the node definition id the node binds to: SMPLHUB for the
	// controller, ROOM<index> for rooms, DEVICE for devices.
	NodeDef string

	// Primary is the address of the controller node this node sits under.
	// The controller node is its own primary.
	Primary string

	// HubID is the hub's identifier for the backing entity: the room or
	// device UUID, empty for the controller node.
	HubID string

	// CreatedAt is when the node was first registered.
	CreatedAt time.Time
}
