// test/mock/gateway.go
package mock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aclgraph/aclgraph/model"
	"github.com/aclgraph/aclgraph/store"
)

// MockQueryGateway is a mock implementation of store.QueryGateway
type MockQueryGateway struct {
	mock.Mock
}

func (m *MockQueryGateway) Query(ctx context.Context, cypher string, params map[string]any) ([]store.Row, error) {
	args := m.Called(ctx, cypher, params)
	rows, _ := args.Get(0).([]store.Row)
	return rows, args.Error(1)
}

// MockAclCache is a mock implementation of cache.AclCache
type MockAclCache struct {
	mock.Mock
}

func (m *MockAclCache) GetByIdentity(ctx context.Context, oid model.ObjectIdentity) (*model.Acl, error) {
	args := m.Called(ctx, oid)
	acl, _ := args.Get(0).(*model.Acl)
	return acl, args.Error(1)
}

func (m *MockAclCache) GetByID(ctx context.Context, id string) (*model.Acl, error) {
	args := m.Called(ctx, id)
	acl, _ := args.Get(0).(*model.Acl)
	return acl, args.Error(1)
}

func (m *MockAclCache) Put(ctx context.Context, acl *model.Acl) error {
	args := m.Called(ctx, acl)
	return args.Error(0)
}

func (m *MockAclCache) Evict(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
