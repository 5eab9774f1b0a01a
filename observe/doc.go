// Package observe provides observability primitives for membership lookups.
//
// It is a pure instrumentation library: no lookup logic, no transport, no I/O
// beyond exporter setup. Consumers wire the observer into the membership
// resolver and checker or into gateway middleware.
package observe
