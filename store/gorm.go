package store

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is a GroupStore backed by a SQL database through gorm.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a gorm-backed group store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the consumer_groups table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&GroupRecord{})
}

// Assign persists a consumer-to-group assignment.
func (s *GormStore) Assign(ctx context.Context, consumerID, group string) error {
	record := GroupRecord{ConsumerID: consumerID, Group: group}
	return s.db.WithContext(ctx).Create(&record).Error
}

// Unassign removes a consumer-to-group assignment. Idempotent. The group
// column is a reserved word on some databases, so it is quoted through
// clause.Column and gorm applies the dialect's quoting.
func (s *GormStore) Unassign(ctx context.Context, consumerID, group string) error {
	return s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "consumer_id"}, Value: consumerID}).
		Where(clause.Eq{Column: clause.Column{Name: "group"}, Value: group}).
		Delete(&GroupRecord{}).Error
}

// FindGroupAssignments returns every assignment for the consumer in
// insertion order.
func (s *GormStore) FindGroupAssignments(ctx context.Context, consumerID string) ([]GroupRecord, error) {
	var records []GroupRecord
	err := s.db.WithContext(ctx).
		Where("consumer_id = ?", consumerID).
		Order("id").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// CacheKey derives the lookup cache key for the consumer.
func (s *GormStore) CacheKey(consumerID string) string {
	return GroupsCacheKey(consumerID)
}

// Ensure GormStore implements GroupStore
var _ GroupStore = (*GormStore)(nil)
