// cache/redis.go
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	logger "github.com/aclgraph/aclgraph/logging"
	"github.com/aclgraph/aclgraph/model"
)

// RedisAclCache stores ACLs as JSON under two keys, one per lookup axis.
// Both keys share one TTL; expiry of one without the other only costs a
// cache miss.
type RedisAclCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAclCache(client *redis.Client, ttl time.Duration) *RedisAclCache {
	return &RedisAclCache{client: client, ttl: ttl}
}

func identityKey(oid model.ObjectIdentity) string {
	return fmt.Sprintf("acl:oid:%s:%d", oid.Type, oid.Identifier)
}

func idKey(id string) string {
	return fmt.Sprintf("acl:id:%s", id)
}

func (c *RedisAclCache) GetByIdentity(ctx context.Context, oid model.ObjectIdentity) (*model.Acl, error) {
	return c.get(ctx, identityKey(oid))
}

func (c *RedisAclCache) GetByID(ctx context.Context, id string) (*model.Acl, error) {
	return c.get(ctx, idKey(id))
}

func (c *RedisAclCache) get(ctx context.Context, key string) (*model.Acl, error) {
	aclJSON, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("ACL not found in cache", zap.String("key", key))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get acl from cache: %w", err)
	}

	var acl model.Acl
	if err := json.Unmarshal([]byte(aclJSON), &acl); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached acl: %w", err)
	}

	logger.Debug("ACL retrieved from cache", zap.String("key", key))
	return &acl, nil
}

func (c *RedisAclCache) Put(ctx context.Context, acl *model.Acl) error {
	aclJSON, err := json.Marshal(acl)
	if err != nil {
		return fmt.Errorf("failed to marshal acl: %w", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, idKey(acl.ID), aclJSON, c.ttl)
	pipe.Set(ctx, identityKey(acl.ObjectIdentity), aclJSON, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache acl: %w", err)
	}

	logger.Debug("ACL cached successfully",
		zap.String("aclID", acl.ID),
		zap.String("objectIdentity", acl.ObjectIdentity.String()))
	return nil
}

func (c *RedisAclCache) Evict(ctx context.Context, id string) error {
	acl, err := c.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if acl == nil {
		return nil
	}

	if err := c.client.Del(ctx, idKey(id), identityKey(acl.ObjectIdentity)).Err(); err != nil {
		return fmt.Errorf("failed to evict acl from cache: %w", err)
	}
	logger.Debug("ACL evicted from cache", zap.String("aclID", id))
	return nil
}
