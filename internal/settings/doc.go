// Package settings is a SQLite-backed key/value store for small persisted
// flags, such as whether the current profile has already been generated
// and uploaded.
package settings
