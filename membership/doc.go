// Package membership answers group-membership questions for an API
// gateway's access-control layer: does the current principal belong to
// at least one of a required set of groups?
//
// The package layers three caches between the decision point and the
// backing store. Raw assignment lookups go through a get-or-load cache
// (loadcache.Cache) with a shared sentinel standing in for empty
// results. Derived GroupSet structures are memoized per raw-result
// identity in a weak-keyed map. Boolean membership decisions are
// memoized two levels deep, by check-list identity and then group-set
// identity, so repeated identical checks are O(1) after the first.
// Weak key association keeps every identity-keyed cache from pinning
// its keys or growing without bound.
//
// All state lives in explicitly constructed Resolver and Checker
// values; the package holds no mutable globals.
package membership
