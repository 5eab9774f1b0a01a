// Package loadcache provides get-or-load caching of backing-store lookups.
//
// It provides a Cache interface with memory and Redis implementations,
// singleflight deduplication of concurrent loads, and negative caching of
// successful empty results.
package loadcache
