package topology

import (
	"fmt"
	"strings"

	"github.com/simplecontrol/hublink/internal/hub"
)

// nameSeparator splits the hub's combined "Room: Activity" labels.
const nameSeparator = ": "

// IngestReport accumulates the per-record failures of a device ingestion.
//
// Unknown-room devices are skipped, not fatal: the rest of the batch still
// lands, and the controller surfaces the skips as operator notices.
type IngestReport struct {
	// Added is the number of devices newly attached to a room.
	Added int

	// Skipped holds one error per device that could not be attached,
	// each wrapping ErrUnknownRoom.
	Skipped []error
}

// IngestActivities merges a raw activity listing into the topology.
//
// For each record the display name is split on the first ": " into room
// name and activity name. An unknown room UUID creates the room at the
// next sequential index with its activity counter seeded at 1; a known
// activity UUID is skipped, so re-ingesting the same listing is a no-op.
//
// A record without the separator fails the whole batch with
// ErrMalformedName: a hub reporting unsplittable names is a data-integrity
// problem worth surfacing loudly, not guessing around. Records ingested
// before the malformed one remain (ingestion is per-record idempotent, so
// the next successful cycle converges).
//
// Parameters:
//   - activities: Raw listing from hub.ListActivities
//
// Returns:
//   - error: ErrMalformedName if any record's name has no separator
func (t *Topology) IngestActivities(activities []hub.Activity) error {
	for _, raw := range activities {
		roomName, actName, ok := strings.Cut(raw.Name, nameSeparator)
		if !ok {
			return fmt.Errorf("%w: activity %q (%s)", ErrMalformedName, raw.Name, raw.UUID)
		}

		room, exists := t.rooms[raw.RoomUUID]
		if !exists {
			room = t.addRoom(raw.RoomUUID, roomName)
		}

		if _, exists := room.activities[raw.UUID]; exists {
			continue
		}

		room.activities[raw.UUID] = &Activity{
			UUID:  raw.UUID,
			Name:  actName,
			Index: room.nextActivity,
		}
		room.nextActivity++
	}
	return nil
}

// IngestDevices merges a raw device listing into the topology.
//
// Rooms are created by IngestActivities only, so callers must ingest
// activities first in each discovery cycle. A device referencing a room
// the topology does not know is recorded in the report and skipped; the
// rest of the batch is still ingested. A known device UUID is skipped
// silently (idempotent merge).
//
// Parameters:
//   - devices: Raw listing from hub.ListDevices
//
// Returns:
//   - *IngestReport: Added count and per-device skip errors
func (t *Topology) IngestDevices(devices []hub.Device) *IngestReport {
	report := &IngestReport{}
	for _, raw := range devices {
		room, exists := t.rooms[raw.RoomUUID]
		if !exists {
			report.Skipped = append(report.Skipped,
				fmt.Errorf("%w: device %q (%s) references room %s",
					ErrUnknownRoom, raw.Name, raw.UUID, raw.RoomUUID))
			continue
		}

		if _, exists := room.devices[raw.UUID]; exists {
			continue
		}

		room.devices[raw.UUID] = &Device{
			UUID: raw.UUID,
			Name: raw.Name,
			Type: raw.Type,
		}
		report.Added++
	}
	return report
}
