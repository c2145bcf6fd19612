// Package store provides the durable key/value store shared by the cache
// layer and the playback engine. Each key is owned by exactly one writer:
// catalog cache entries belong to the TTL cache, session records belong to
// the playback engine.
package store

// Store is the persistence capability consumed by the cache and the
// playback engine.
type Store interface {
	// Get returns the stored bytes for key, reporting whether the key exists.
	Get(key string) ([]byte, bool, error)

	// Set stores value under key, overwriting any prior entry.
	Set(key string, value []byte) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error

	// Keys returns every stored key, used for prefix-based invalidation.
	Keys() ([]string, error)

	// Close releases underlying resources.
	Close() error
}
