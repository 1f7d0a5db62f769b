// Package cache provides an in-memory adaptive cache with per-entry
// TTLs, lazy expiry on read, and access-frequency-aware eviction. A
// background janitor sweeps expired entries so idle caches do not hold
// dead data indefinitely.
package cache
