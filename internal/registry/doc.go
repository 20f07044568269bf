// Package registry persists the set of host nodes this service has
// created.
//
// Node addresses are derived deterministically from hub identifiers
// (AddressFromID), so the registry lets a discovery cycle tell apart
// entities that already have a host node from ones that still need one,
// across restarts. Storage is SQLite through Repository; Registry layers a
// read-through cache on top so reconciliation never queries the database
// per entity.
package registry
