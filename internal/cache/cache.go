// Package cache stores serialized analysis results keyed by a content
// hash of the input table, so re-analyzing an unchanged file is a lookup.
package cache

import "time"

// Cache defines the interface for analysis result caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key builds a namespaced cache key from a table content hash.
func Key(contentHash string) string {
	return "claims:v1:" + contentHash
}
