package topology

import (
	"errors"
	"testing"

	"github.com/simplecontrol/hublink/internal/hub"
)

// sampleActivities covers two rooms with distinct activity counts.
func sampleActivities() []hub.Activity {
	return []hub.Activity{
		{UUID: "a1", Name: "Living Room: Watch TV", RoomUUID: "r1"},
		{UUID: "a2", Name: "Living Room: Listen Music", RoomUUID: "r1"},
		{UUID: "a3", Name: "Bedroom: Good Night", RoomUUID: "r2"},
		{UUID: "a4", Name: "Bedroom: Reading", RoomUUID: "r2"},
		{UUID: "a5", Name: "Bedroom: Movie", RoomUUID: "r2"},
	}
}

func TestIngestActivities_NameSplit(t *testing.T) {
	topo := New()
	if err := topo.IngestActivities(sampleActivities()); err != nil {
		t.Fatalf("IngestActivities() error = %v", err)
	}

	room, ok := topo.Room("r1")
	if !ok {
		t.Fatal("room r1 not found")
	}
	if room.Name != "Living Room" {
		t.Errorf("room name = %q, want %q", room.Name, "Living Room")
	}

	act, ok := room.Activity("a1")
	if !ok {
		t.Fatal("activity a1 not found")
	}
	if act.Name != "Watch TV" {
		t.Errorf("activity name = %q, want %q", act.Name, "Watch TV")
	}
}

func TestIngestActivities_SplitsOnFirstSeparatorOnly(t *testing.T) {
	topo := New()
	err := topo.IngestActivities([]hub.Activity{
		{UUID: "a1", Name: "Den: Movies: Action", RoomUUID: "r1"},
	})
	if err != nil {
		t.Fatalf("IngestActivities() error = %v", err)
	}

	room, _ := topo.Room("r1")
	act, _ := room.Activity("a1")
	if room.Name != "Den" {
		t.Errorf("room name = %q, want %q", room.Name, "Den")
	}
	if act.Name != "Movies: Action" {
		t.Errorf("activity name = %q, want %q", act.Name, "Movies: Action")
	}
}

func TestIngestActivities_MalformedName(t *testing.T) {
	topo := New()
	err := topo.IngestActivities([]hub.Activity{
		{UUID: "a1", Name: "NoSeparatorHere", RoomUUID: "r1"},
	})
	if !errors.Is(err, ErrMalformedName) {
		t.Errorf("IngestActivities() error = %v, want ErrMalformedName", err)
	}
}

func TestIngestActivities_IndexDensity(t *testing.T) {
	topo := New()
	if err := topo.IngestActivities(sampleActivities()); err != nil {
		t.Fatalf("IngestActivities() error = %v", err)
	}

	rooms := topo.RoomsByIndex()
	if len(rooms) != 2 {
		t.Fatalf("RoomCount() = %d, want 2", len(rooms))
	}

	// Room indices must be exactly 0..R-1 in first-seen order.
	for i, room := range rooms {
		if room.Index != i {
			t.Errorf("rooms[%d].Index = %d, want %d", i, room.Index, i)
		}
	}

	// Activity indices must be exactly 1..A per room.
	for _, room := range rooms {
		activities := room.ActivitiesByIndex()
		for i, act := range activities {
			if act.Index != i+1 {
				t.Errorf("room %q activity %q index = %d, want %d",
					room.Name, act.Name, act.Index, i+1)
			}
		}
	}

	if got := rooms[0].ActivityCount(); got != 2 {
		t.Errorf("room 0 activity count = %d, want 2", got)
	}
	if got := rooms[1].ActivityCount(); got != 3 {
		t.Errorf("room 1 activity count = %d, want 3", got)
	}
}

func TestIngestActivities_Idempotent(t *testing.T) {
	topo := New()
	if err := topo.IngestActivities(sampleActivities()); err != nil {
		t.Fatalf("first IngestActivities() error = %v", err)
	}
	if err := topo.IngestActivities(sampleActivities()); err != nil {
		t.Fatalf("second IngestActivities() error = %v", err)
	}

	if topo.RoomCount() != 2 {
		t.Errorf("RoomCount() = %d, want 2 after re-ingestion", topo.RoomCount())
	}
	if topo.ActivityCount() != 5 {
		t.Errorf("ActivityCount() = %d, want 5 after re-ingestion", topo.ActivityCount())
	}

	// Indices must not shift.
	room, _ := topo.Room("r1")
	act, _ := room.Activity("a2")
	if act.Index != 2 {
		t.Errorf("activity a2 index = %d, want 2 after re-ingestion", act.Index)
	}
}

func TestIngestActivities_NewRoomsAppend(t *testing.T) {
	topo := New()
	if err := topo.IngestActivities(sampleActivities()); err != nil {
		t.Fatalf("IngestActivities() error = %v", err)
	}

	// A later cycle discovers a third room; existing indices stay put.
	more := append(sampleActivities(),
		hub.Activity{UUID: "a6", Name: "Kitchen: Cooking", RoomUUID: "r3"})
	if err := topo.IngestActivities(more); err != nil {
		t.Fatalf("IngestActivities() with new room error = %v", err)
	}

	room1, _ := topo.Room("r1")
	if room1.Index != 0 {
		t.Errorf("existing room index changed to %d, want 0", room1.Index)
	}
	room3, ok := topo.Room("r3")
	if !ok {
		t.Fatal("room r3 not found")
	}
	if room3.Index != 2 {
		t.Errorf("new room index = %d, want 2", room3.Index)
	}
}

func TestIngestDevices(t *testing.T) {
	topo := New()
	if err := topo.IngestActivities(sampleActivities()); err != nil {
		t.Fatalf("IngestActivities() error = %v", err)
	}

	report := topo.IngestDevices([]hub.Device{
		{UUID: "d1", Name: "TV", Type: "Television", RoomUUID: "r1"},
		{UUID: "d2", Name: "Amp", Type: "Amplifier", RoomUUID: "r1"},
	})

	if len(report.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", report.Skipped)
	}
	if report.Added != 2 {
		t.Errorf("Added = %d, want 2", report.Added)
	}

	room, _ := topo.Room("r1")
	dev, ok := room.Device("d1")
	if !ok {
		t.Fatal("device d1 not found")
	}
	if dev.Name != "TV" || dev.Type != "Television" {
		t.Errorf("unexpected device: %+v", dev)
	}
}

func TestIngestDevices_UnknownRoomSkipped(t *testing.T) {
	topo := New()
	if err := topo.IngestActivities(sampleActivities()); err != nil {
		t.Fatalf("IngestActivities() error = %v", err)
	}

	report := topo.IngestDevices([]hub.Device{
		{UUID: "d1", Name: "TV", Type: "Television", RoomUUID: "r1"},
		{UUID: "d2", Name: "Ghost", Type: "Speaker", RoomUUID: "nowhere"},
		{UUID: "d3", Name: "Amp", Type: "Amplifier", RoomUUID: "r2"},
	})

	if report.Added != 2 {
		t.Errorf("Added = %d, want 2 (batch continues past unknown room)", report.Added)
	}
	if len(report.Skipped) != 1 {
		t.Fatalf("len(Skipped) = %d, want 1", len(report.Skipped))
	}
	if !errors.Is(report.Skipped[0], ErrUnknownRoom) {
		t.Errorf("Skipped[0] = %v, want ErrUnknownRoom", report.Skipped[0])
	}

	if topo.DeviceCount() != 2 {
		t.Errorf("DeviceCount() = %d, want 2", topo.DeviceCount())
	}
}

func TestIngestDevices_Idempotent(t *testing.T) {
	topo := New()
	if err := topo.IngestActivities(sampleActivities()); err != nil {
		t.Fatalf("IngestActivities() error = %v", err)
	}

	devices := []hub.Device{
		{UUID: "d1", Name: "TV", Type: "Television", RoomUUID: "r1"},
	}
	topo.IngestDevices(devices)
	report := topo.IngestDevices(devices)

	if report.Added != 0 {
		t.Errorf("Added = %d on re-ingestion, want 0", report.Added)
	}
	if topo.DeviceCount() != 1 {
		t.Errorf("DeviceCount() = %d, want 1", topo.DeviceCount())
	}
}

func TestActivityIDByIndex(t *testing.T) {
	topo := New()
	if err := topo.IngestActivities(sampleActivities()); err != nil {
		t.Fatalf("IngestActivities() error = %v", err)
	}

	room, _ := topo.Room("r2")
	uuid, ok := room.ActivityIDByIndex(2)
	if !ok {
		t.Fatal("ActivityIDByIndex(2) not found")
	}
	if uuid != "a4" {
		t.Errorf("ActivityIDByIndex(2) = %q, want %q", uuid, "a4")
	}

	if _, ok := room.ActivityIDByIndex(99); ok {
		t.Error("ActivityIDByIndex(99) = ok, want not found")
	}
}
