// Package influxdb provides optional telemetry storage for SimpleHub Link.
//
// It wraps the official influxdb-client-go v2 library for connection
// management, metric writing, and health monitoring.
//
// # Purpose
//
// Time-series records of:
//   - Discovery cycles (room/activity/device counts, duration)
//   - Node command dispatches and their outcomes
//
// # Usage
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if errors.Is(err, influxdb.ErrDisabled) {
//	    // run without telemetry
//	}
//	defer client.Close()
//
//	client.WriteDiscoveryMetrics(rooms, activities, devices, elapsed)
//
// Writes are batched and non-blocking; a failed write never affects a
// discovery cycle or command dispatch.
package influxdb
