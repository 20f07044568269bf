// Package hub is the REST client for the SimpleHub home-automation hub.
//
// The hub exposes a small HTTP API:
//
//	GET  /api/v1/activities   - list activities ({"data":[...]})
//	GET  /api/v1/devices      - list devices ({"data":[...]})
//	POST /api/v1/runactivity  - start an activity by UUID
//	POST /api/v1/sendcommands - send device commands
//
// Plain HTTP is served on port 47147, TLS on 47148. Every call is a single
// open-use-close exchange with a bounded timeout; no connection is reused
// across calls.
//
// Failures are classified as transport (ErrTransport), protocol
// (ErrProtocol) or payload (ErrPayload) errors so the sync controller can
// fail a discovery cycle fast without guessing.
package hub
