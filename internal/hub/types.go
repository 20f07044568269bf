package hub

// Activity is a hub-defined macro scoped to a room.
//
// The hub names activities with a combined "Room: Activity" convention;
// splitting that label is the topology builder's job, not the client's.
type Activity struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	RoomUUID string `json:"roomuuid"`
}

// Device is a controllable entity reported by the hub.
type Device struct {
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	RoomUUID string `json:"roomuuid"`
}

// envelope is the hub's standard response wrapper.
type envelope[T any] struct {
	Data []T `json:"data"`
}

// runActivityRequest is the body for POST /api/v1/runactivity.
type runActivityRequest struct {
	ActivityUUID string `json:"activity_uuid"`
}

// sendCommandsRequest is the body for POST /api/v1/sendcommands.
// The hub accepts a batch; SimpleHub Link always sends exactly one.
type sendCommandsRequest struct {
	Commands []commandEntry `json:"commands"`
}

type commandEntry struct {
	Type   string        `json:"type"`
	Params commandParams `json:"params"`
}

type commandParams struct {
	Command string `json:"command"`
	Device  string `json:"device"`
}
