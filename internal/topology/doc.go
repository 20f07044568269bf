// Package topology holds the canonical in-memory model of a discovered
// SimpleHub home and the merge logic that builds it from raw hub listings.
//
// # Index Invariants
//
// Everything downstream (profile documents, node definitions, command
// dispatch) hangs off two invariants this package enforces:
//
//   - Room indices are dense in [0, roomCount) in first-seen order and are
//     never reassigned within a process lifetime.
//   - Activity indices are dense in [1, activityCount] per room, assigned
//     by a per-room counter at discovery time and never renumbered.
//
// Re-ingesting the same listing is a no-op: known identifiers are skipped,
// so repeated discovery cycles neither duplicate entries nor shift indices.
//
// # Ordering
//
// Activities must be ingested before devices in each cycle, because only
// activities create rooms (the hub's combined "Room: Activity" naming is
// the sole source of room names). A device whose room is still unknown is
// skipped and reported, not silently dropped.
package topology
