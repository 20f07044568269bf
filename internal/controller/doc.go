// Package controller orchestrates the hub integration: discovery cycles,
// profile document refresh, node reconciliation and command dispatch.
//
// A discovery cycle walks a fixed sequence (fetch activities, fetch
// devices, regenerate and package the profile documents when stale,
// reconcile host nodes) and is serialised against every other cycle, so
// the periodic poll and an explicit re-discover never interleave. Hub
// failures abort the cycle fail-fast; the topology keeps its last-good
// entries and the next poll retries.
//
// Commands from the host arrive on per-node MQTT topics and are routed by
// the addressed node's definition: re-discover on the controller node, run
// activity on room nodes, power and catalogue commands on device nodes.
package controller
