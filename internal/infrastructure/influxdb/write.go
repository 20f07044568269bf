package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// WriteDiscoveryMetrics records the outcome of a discovery cycle.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - rooms: Total rooms known after the cycle
//   - activities: Total activities across all rooms
//   - devices: Total devices across all rooms
//   - duration: Wall-clock duration of the cycle
//
// Example:
//
//	client.WriteDiscoveryMetrics(4, 11, 9, elapsed)
func (c *Client) WriteDiscoveryMetrics(rooms, activities, devices int, duration time.Duration) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"discovery",
		map[string]string{},
		map[string]interface{}{
			"rooms":       rooms,
			"activities":  activities,
			"devices":     devices,
			"duration_ms": duration.Milliseconds(),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}

// WriteCommandMetric records a dispatched node command and its outcome.
//
// Parameters:
//   - address: Node address the command was dispatched for
//   - command: Command name (DISCOVER, SET_ACTIVITY, DON, ...)
//   - ok: Whether the hub accepted the command
func (c *Client) WriteCommandMetric(address, command string, ok bool) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"command",
		map[string]string{
			"address": address,
			"command": command,
		},
		map[string]interface{}{
			"ok": ok,
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
