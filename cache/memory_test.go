// cache/memory_test.go
package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclgraph/aclgraph/cache"
	"github.com/aclgraph/aclgraph/model"
)

func TestMemoryAclCache(t *testing.T) {
	ctx := context.Background()
	oid := model.ObjectIdentity{Type: "Document", Identifier: 42}
	acl := &model.Acl{ID: "acl-1", ObjectIdentity: oid, Owner: model.PrincipalSid{Name: "alice"}}

	c := cache.NewMemoryAclCache(time.Minute)
	defer c.Stop()

	t.Run("MissIsNilNil", func(t *testing.T) {
		got, err := c.GetByID(ctx, "missing")
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = c.GetByIdentity(ctx, oid)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("PutServesBothKeys", func(t *testing.T) {
		require.NoError(t, c.Put(ctx, acl))

		byID, err := c.GetByID(ctx, "acl-1")
		require.NoError(t, err)
		assert.Same(t, acl, byID)

		byOID, err := c.GetByIdentity(ctx, oid)
		require.NoError(t, err)
		assert.Same(t, acl, byOID)
	})

	t.Run("EvictRemovesBothKeys", func(t *testing.T) {
		require.NoError(t, c.Evict(ctx, "acl-1"))

		byID, err := c.GetByID(ctx, "acl-1")
		require.NoError(t, err)
		assert.Nil(t, byID)

		byOID, err := c.GetByIdentity(ctx, oid)
		require.NoError(t, err)
		assert.Nil(t, byOID)
	})
}

func TestMemoryAclCacheExpiry(t *testing.T) {
	ctx := context.Background()
	acl := &model.Acl{ID: "acl-1", ObjectIdentity: model.ObjectIdentity{Type: "Document", Identifier: 1}}

	c := cache.NewMemoryAclCache(-time.Second, cache.WithMaxCacheSize(100))
	defer c.Stop()

	require.NoError(t, c.Put(ctx, acl))

	got, err := c.GetByID(ctx, "acl-1")
	require.NoError(t, err)
	assert.Nil(t, got, "expired entries read as misses")
}
