// model/acl_test.go
package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aclgraph/aclgraph/model"
	"github.com/aclgraph/aclgraph/permission"
)

func TestObjectIdentityString(t *testing.T) {
	oid := model.ObjectIdentity{Type: "Document", Identifier: 42}
	assert.Equal(t, "Document:42", oid.String())
}

func TestNewSid(t *testing.T) {
	assert.Equal(t, model.PrincipalSid{Name: "alice"}, model.NewSid(true, "alice"))
	assert.Equal(t, model.GrantedAuthoritySid{Authority: "editors"}, model.NewSid(false, "editors"))
	assert.True(t, model.NewSid(true, "alice").IsPrincipal())
	assert.False(t, model.NewSid(false, "editors").IsPrincipal())
}

func TestIsSidLoaded(t *testing.T) {
	alice := model.PrincipalSid{Name: "alice"}
	bob := model.PrincipalSid{Name: "bob"}
	editors := model.GrantedAuthoritySid{Authority: "editors"}

	t.Run("NilMeansComplete", func(t *testing.T) {
		acl := &model.Acl{}
		assert.True(t, acl.IsSidLoaded([]model.Sid{alice, bob, editors}))
		assert.True(t, acl.IsSidLoaded(nil))
	})

	t.Run("SubsetCovered", func(t *testing.T) {
		acl := &model.Acl{LoadedSids: []model.Sid{alice, editors}}
		assert.True(t, acl.IsSidLoaded([]model.Sid{alice}))
		assert.True(t, acl.IsSidLoaded([]model.Sid{alice, editors}))
	})

	t.Run("MissingSid", func(t *testing.T) {
		acl := &model.Acl{LoadedSids: []model.Sid{alice}}
		assert.False(t, acl.IsSidLoaded([]model.Sid{bob}))
		assert.False(t, acl.IsSidLoaded([]model.Sid{alice, bob}))
	})
}

func TestAclJSONRoundTrip(t *testing.T) {
	parent := &model.Acl{
		ID:             "acl-parent",
		ObjectIdentity: model.ObjectIdentity{Type: "Folder", Identifier: 9},
		Owner:          model.PrincipalSid{Name: "alice"},
	}
	parent.Entries = []*model.Ace{{
		ID:         "ace-parent",
		Acl:        parent,
		Sid:        model.GrantedAuthoritySid{Authority: "admins"},
		Permission: permission.Administration,
		Granting:   true,
	}}

	acl := &model.Acl{
		ID:                "acl-child",
		ObjectIdentity:    model.ObjectIdentity{Type: "Document", Identifier: 42},
		Owner:             model.PrincipalSid{Name: "alice"},
		Parent:            parent,
		EntriesInheriting: true,
	}
	acl.Entries = []*model.Ace{
		{ID: "ace-1", Acl: acl, Sid: model.PrincipalSid{Name: "bob"}, Permission: permission.Read, Order: 0, Granting: true, AuditFailure: true},
		{ID: "ace-2", Acl: acl, Sid: model.GrantedAuthoritySid{Authority: "editors"}, Permission: permission.Write, Order: 1, Granting: false},
	}

	data, err := json.Marshal(acl)
	require.NoError(t, err)

	var got model.Acl
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, acl.ID, got.ID)
	assert.Equal(t, acl.ObjectIdentity, got.ObjectIdentity)
	assert.Equal(t, acl.Owner, got.Owner)
	assert.True(t, got.EntriesInheriting)
	assert.Nil(t, got.LoadedSids)

	require.Len(t, got.Entries, 2)
	first := got.Entries[0]
	assert.Equal(t, "ace-1", first.ID)
	assert.Equal(t, model.PrincipalSid{Name: "bob"}, first.Sid)
	assert.Equal(t, int32(1), first.Permission.Mask())
	assert.True(t, first.Granting)
	assert.True(t, first.AuditFailure)
	assert.Same(t, &got, first.Acl, "back-references rebuilt on unmarshal")

	second := got.Entries[1]
	assert.Equal(t, int32(2), second.Permission.Mask())
	assert.Equal(t, 1, second.Order)
	assert.False(t, second.Granting)

	require.NotNil(t, got.Parent)
	assert.Equal(t, "acl-parent", got.Parent.ID)
	assert.Equal(t, model.ObjectIdentity{Type: "Folder", Identifier: 9}, got.Parent.ObjectIdentity)
	require.Len(t, got.Parent.Entries, 1)
	assert.Same(t, got.Parent, got.Parent.Entries[0].Acl)
	assert.Nil(t, got.Parent.Parent)
}

func TestAclJSONLoadedSids(t *testing.T) {
	acl := &model.Acl{
		ID:             "acl-1",
		ObjectIdentity: model.ObjectIdentity{Type: "Document", Identifier: 1},
		Owner:          model.PrincipalSid{Name: "alice"},
		LoadedSids:     []model.Sid{model.PrincipalSid{Name: "alice"}, model.GrantedAuthoritySid{Authority: "editors"}},
	}

	data, err := json.Marshal(acl)
	require.NoError(t, err)

	var got model.Acl
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, acl.LoadedSids, got.LoadedSids)
}
