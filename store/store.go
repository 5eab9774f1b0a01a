package store

import (
	"context"
	"time"
)

// GroupRecord is one consumer-to-group assignment row.
// Records are owned by the store and are read-only to callers.
type GroupRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ConsumerID string    `gorm:"size:64;index;not null" json:"consumerId"`
	Group      string    `gorm:"size:255;not null" json:"group"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName returns the SQL table name for group assignments.
func (GroupRecord) TableName() string {
	return "consumer_groups"
}

// Assignments is the raw result of a group-assignment lookup for one
// consumer. It is always handled by pointer: downstream caches key on the
// pointer identity of an Assignments value, never on its content.
type Assignments struct {
	Records []GroupRecord
}

// Len returns the number of assignment records.
func (a *Assignments) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Records)
}

// GroupStore looks up group assignments for consumers.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: FindGroupAssignments must honor cancellation/deadlines.
// - Errors: lookup errors are returned as-is; zero assignments is a
//   successful empty result, never an error.
type GroupStore interface {
	// FindGroupAssignments returns every assignment for the consumer,
	// in insertion order. An empty slice means the consumer has none.
	FindGroupAssignments(ctx context.Context, consumerID string) ([]GroupRecord, error)

	// CacheKey derives a stable, deterministic cache key for the
	// consumer's assignment lookup.
	CacheKey(consumerID string) string
}
