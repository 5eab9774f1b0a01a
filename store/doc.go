// Package store defines the backing-store contract for consumer group
// assignments.
//
// It provides the GroupStore interface, deterministic cache-key derivation,
// and two implementations: an in-memory store for tests and small
// deployments, and a gorm-backed store for SQL databases.
package store
