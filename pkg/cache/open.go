package cache

import (
	"context"
	"fmt"
	"strings"
)

// Backend names accepted by Open besides URLs.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendNone   = "none"
)

// Open returns the cache described by backend:
//
//	""  or "file"                    FileCache rooted at dir
//	"none"                           NullCache
//	"memory"                         MemoryCache
//	"redis://..." or "rediss://..."  RedisCache
//	"mongodb://..." or "mongodb+srv://..."  MongoCache
func Open(ctx context.Context, backend, dir string) (Cache, error) {
	switch b := strings.TrimSpace(backend); {
	case b == "" || b == BackendFile:
		if dir == "" {
			return nil, fmt.Errorf("file cache: no directory")
		}
		return NewFileCache(dir)
	case b == BackendNone:
		return NewNullCache(), nil
	case b == BackendMemory:
		return NewMemoryCache(DefaultMemoryEntries)
	case strings.HasPrefix(b, "redis://"), strings.HasPrefix(b, "rediss://"):
		return NewRedisCache(ctx, b)
	case strings.HasPrefix(b, "mongodb://"), strings.HasPrefix(b, "mongodb+srv://"):
		return NewMongoCache(ctx, b, "", "")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

// Kind returns a short backend name for logs.
func Kind(c Cache) string {
	switch c.(type) {
	case *FileCache:
		return BackendFile
	case *MemoryCache:
		return BackendMemory
	case *RedisCache:
		return "redis"
	case *MongoCache:
		return "mongodb"
	case *NullCache:
		return BackendNone
	default:
		return fmt.Sprintf("%T", c)
	}
}
