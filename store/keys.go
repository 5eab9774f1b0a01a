package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GroupsCacheKey derives the cache key for a consumer's group-assignment
// lookup. Format: groups:consumer:<hash>
// where hash is the first 16 hex characters of SHA-256(consumerID).
//
// Hashing keeps keys fixed-length and free of characters that cache
// backends reject, regardless of what the id contains.
func GroupsCacheKey(consumerID string) string {
	sum := sha256.Sum256([]byte(consumerID))
	return fmt.Sprintf("groups:consumer:%s", hex.EncodeToString(sum[:8]))
}
