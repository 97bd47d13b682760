// Package cache stores rendered artifacts and fetched outlines.
//
// Backends share the [Cache] interface:
//   - [NullCache]: caching disabled
//   - [FileCache]: JSON entries under the XDG cache directory, for the CLI
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: shared cache with a TTL index
//
// Keys come from a [Keyer]. [DefaultKeyer] derives them from content
// hashes, and [ScopedKeyer] adds a prefix so tenants of the HTTP server
// never share entries.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and whether it was found. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Options selects a backend for [Open]. RedisURL wins over MongoURI, and
// either wins over Dir.
type Options struct {
	Disabled bool
	Dir      string
	RedisURL string
	MongoURI string
	MongoDB  string
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (Cache, error) {
	switch {
	case opts.Disabled:
		return NewNullCache(), nil
	case opts.RedisURL != "":
		return NewRedisCache(ctx, opts.RedisURL)
	case opts.MongoURI != "":
		return NewMongoCache(ctx, opts.MongoURI, opts.MongoDB)
	case opts.Dir != "":
		return NewFileCache(opts.Dir)
	default:
		return NewNullCache(), nil
	}
}
