// cache/memory.go
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/karlseguin/ccache/v3"

	"github.com/aclgraph/aclgraph/model"
)

const defaultMaxCacheSize = 10000

// MemoryAclCache is an in-process AclCache backed by an LRU cache. The two
// key spaces (identity, internal id) live in one cache and share the ACL
// value.
type MemoryAclCache struct {
	ccache      *ccache.Cache[*model.Acl]
	ttl         time.Duration
	maxElements int64
	closeOnce   *sync.Once
}

type MemoryAclCacheOpt func(c *MemoryAclCache)

func WithMaxCacheSize(maxElements int64) MemoryAclCacheOpt {
	return func(c *MemoryAclCache) {
		c.maxElements = maxElements
	}
}

var _ AclCache = (*MemoryAclCache)(nil)

func NewMemoryAclCache(ttl time.Duration, opts ...MemoryAclCacheOpt) *MemoryAclCache {
	c := &MemoryAclCache{
		ttl:         ttl,
		maxElements: defaultMaxCacheSize,
		closeOnce:   &sync.Once{},
	}

	for _, opt := range opts {
		opt(c)
	}

	c.ccache = ccache.New(ccache.Configure[*model.Acl]().MaxSize(c.maxElements))
	return c
}

func (c *MemoryAclCache) GetByIdentity(_ context.Context, oid model.ObjectIdentity) (*model.Acl, error) {
	return c.get(identityKey(oid)), nil
}

func (c *MemoryAclCache) GetByID(_ context.Context, id string) (*model.Acl, error) {
	return c.get(idKey(id)), nil
}

func (c *MemoryAclCache) get(key string) *model.Acl {
	item := c.ccache.Get(key)
	if item == nil || item.Expired() {
		return nil
	}
	return item.Value()
}

func (c *MemoryAclCache) Put(_ context.Context, acl *model.Acl) error {
	c.ccache.Set(idKey(acl.ID), acl, c.ttl)
	c.ccache.Set(identityKey(acl.ObjectIdentity), acl, c.ttl)
	return nil
}

func (c *MemoryAclCache) Evict(_ context.Context, id string) error {
	if acl := c.get(idKey(id)); acl != nil {
		c.ccache.Delete(identityKey(acl.ObjectIdentity))
	}
	c.ccache.Delete(idKey(id))
	return nil
}

// Stop cleans resources.
func (c *MemoryAclCache) Stop() {
	c.closeOnce.Do(func() {
		c.ccache.Stop()
	})
}
