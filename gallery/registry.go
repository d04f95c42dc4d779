package gallery

import (
	"sync"
	"time"

	"image_table_api/tools"

	"github.com/patrickmn/go-cache"
)

// Registry keeps one Table per user in memory. A table expires after ttl
// without use.
type Registry struct {
	logger tools.Logger
	bucket tools.ImageBucket

	mu     sync.Mutex
	tables *cache.Cache
}

func NewRegistry(logger tools.Logger, bucket tools.ImageBucket, ttl time.Duration) *Registry {
	return &Registry{
		logger: logger,
		bucket: bucket,
		tables: cache.New(ttl, 2*ttl),
	}
}

// Table returns the user's table, creating an empty one if needed.
func (r *Registry) Table(uid string) *Table {
	r.mu.Lock()
	defer r.mu.Unlock()

	table, found := r.tables.Get(uid)
	if !found {
		table = NewTable(r.logger, r.bucket)
	}

	r.tables.Set(uid, table, cache.DefaultExpiration)
	return table.(*Table)
}

func (r *Registry) Len() int {
	return r.tables.ItemCount()
}
