// Package database provides SQLite database connectivity for SimpleHub Link.
//
// This package manages:
//   - Database connection with WAL mode for concurrent access
//   - Schema migrations embedded into the binary
//   - Connection lifecycle management
//
// SimpleHub Link persists only two things: the host node registry (which
// nodes have already been created, so restarts do not duplicate them) and
// the settings table holding the profile_done flag. The discovered topology
// itself is in-memory only and rebuilt on every discovery cycle.
//
// Security Considerations:
//   - All queries use parameterised statements (no SQL injection)
//   - Database file permissions are set to 0600 (owner read/write only)
//
// Usage:
//
//	db, err := database.Open(database.Config{Path: cfg.Database.Path})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	if err := db.Migrate(ctx); err != nil {
//	    log.Fatal(err)
//	}
package database
