package topology

import "sort"

// DeviceTypeVirtual marks the hub's virtual placeholder devices. They are
// kept in the topology but never surfaced as host nodes.
const DeviceTypeVirtual = "Automate"

// Topology is the canonical in-memory model of the discovered home:
// rooms, each owning its activities and devices.
//
// It is created empty at process start, extended by discovery cycles, and
// lives for the process lifetime. Indices are assigned at first sight and
// never reassigned, so every artifact generated from the same Topology
// agrees on them.
//
// Topology is not safe for concurrent use; the sync controller serialises
// discovery cycles, which are the only writers.
type Topology struct {
	rooms map[string]*Room
	order []string // room UUIDs in index order
}

// Room groups the activities and devices discovered under one hub room.
type Room struct {
	// UUID is the hub's opaque room identifier.
	UUID string

	// Name is the human label, the part before the ": " separator in the
	// hub's combined activity naming.
	Name string

	// Index is unique among rooms, dense in [0, roomCount), stable for the
	// process lifetime.
	Index int

	activities map[string]*Activity
	devices    map[string]*Device

	// nextActivity is the per-room activity index counter, seeded at 1.
	nextActivity int
}

// Activity is a hub activity attached to its owning room.
type Activity struct {
	// UUID is the hub's activity identifier, used to run the activity.
	UUID string

	// Name is the part after the ": " separator.
	Name string

	// Index is unique within the owning room, dense in [1, activityCount].
	Index int
}

// Device is a hub device attached to its owning room. Devices carry no
// index: only the global command catalogue is indexed, not devices.
type Device struct {
	UUID string
	Name string
	Type string
}

// New creates an empty Topology.
func New() *Topology {
	return &Topology{
		rooms: make(map[string]*Room),
	}
}

// Room returns the room with the given hub UUID.
func (t *Topology) Room(uuid string) (*Room, bool) {
	r, ok := t.rooms[uuid]
	return r, ok
}

// RoomsByIndex returns all rooms in ascending index order.
//
// Discovery order equals index order, so this is also the order rooms were
// first seen in. Artifact generation iterates rooms through this accessor
// only, never over the underlying map.
func (t *Topology) RoomsByIndex() []*Room {
	rooms := make([]*Room, 0, len(t.order))
	for _, uuid := range t.order {
		rooms = append(rooms, t.rooms[uuid])
	}
	return rooms
}

// RoomCount returns the number of rooms seen so far.
func (t *Topology) RoomCount() int {
	return len(t.order)
}

// ActivityCount returns the total number of activities across all rooms.
func (t *Topology) ActivityCount() int {
	n := 0
	for _, r := range t.rooms {
		n += len(r.activities)
	}
	return n
}

// DeviceCount returns the total number of devices across all rooms.
func (t *Topology) DeviceCount() int {
	n := 0
	for _, r := range t.rooms {
		n += len(r.devices)
	}
	return n
}

// addRoom inserts a room at the next sequential index.
func (t *Topology) addRoom(uuid, name string) *Room {
	r := &Room{
		UUID:         uuid,
		Name:         name,
		Index:        len(t.order),
		activities:   make(map[string]*Activity),
		devices:      make(map[string]*Device),
		nextActivity: 1,
	}
	t.rooms[uuid] = r
	t.order = append(t.order, uuid)
	return r
}

// Activity returns the activity with the given hub UUID.
func (r *Room) Activity(uuid string) (*Activity, bool) {
	a, ok := r.activities[uuid]
	return a, ok
}

// ActivitiesByIndex returns the room's activities in ascending index order.
func (r *Room) ActivitiesByIndex() []*Activity {
	activities := make([]*Activity, 0, len(r.activities))
	for _, a := range r.activities {
		activities = append(activities, a)
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Index < activities[j].Index
	})
	return activities
}

// ActivityIDByIndex resolves a per-room activity index (as reported by the
// host when a Run Activity command fires) back to the hub activity UUID.
func (r *Room) ActivityIDByIndex(index int) (string, bool) {
	for _, a := range r.activities {
		if a.Index == index {
			return a.UUID, true
		}
	}
	return "", false
}

// ActivityCount returns the number of activities in the room.
func (r *Room) ActivityCount() int {
	return len(r.activities)
}

// Device returns the device with the given hub UUID.
func (r *Room) Device(uuid string) (*Device, bool) {
	d, ok := r.devices[uuid]
	return d, ok
}

// Devices returns the room's devices sorted by UUID.
//
// Device order carries no meaning; the sort only keeps iteration
// deterministic for logging and node reconciliation.
func (r *Room) Devices() []*Device {
	devices := make([]*Device, 0, len(r.devices))
	for _, d := range r.devices {
		devices = append(devices, d)
	}
	sort.Slice(devices, func(i, j int) bool {
		return devices[i].UUID < devices[j].UUID
	})
	return devices
}

// DeviceCount returns the number of devices in the room.
func (r *Room) DeviceCount() int {
	return len(r.devices)
}
