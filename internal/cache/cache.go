package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage interface used for fetched article extractions
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a stable cache key from a URL
func Key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "claimlens:v1:" + hex.EncodeToString(sum[:])
}
