// cache/cache.go
package cache

import (
	"context"

	"github.com/aclgraph/aclgraph/model"
)

// AclCache holds fully materialized ACLs, addressable both by the secured
// object's identity and by the ACL's internal id. At most one authoritative
// value exists per key; a racing Put simply admits the last writer.
// Implementations must never contain placeholder-linked ACLs.
//
// A miss is (nil, nil); errors are reserved for the backing store failing.
type AclCache interface {
	GetByIdentity(ctx context.Context, oid model.ObjectIdentity) (*model.Acl, error)
	GetByID(ctx context.Context, id string) (*model.Acl, error)
	Put(ctx context.Context, acl *model.Acl) error
	Evict(ctx context.Context, id string) error
}
