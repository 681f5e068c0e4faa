// lookup/assembler_test.go
package lookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aclerrors "github.com/aclgraph/aclgraph/errors"
	"github.com/aclgraph/aclgraph/model"
	"github.com/aclgraph/aclgraph/permission"
)

func stagedFixture(id string, identifier int64, parentID string) *stagedAcl {
	return &stagedAcl{
		id:                id,
		objectIdentity:    model.ObjectIdentity{Type: "Document", Identifier: identifier},
		owner:             model.PrincipalSid{Name: "alice"},
		entriesInheriting: true,
		parentID:          parentID,
		entries: []*stagedAce{{
			id:         id + "-ace",
			sid:        model.PrincipalSid{Name: "bob"},
			permission: permission.Read,
			granting:   true,
		}},
	}
}

func TestAssemble(t *testing.T) {
	t.Run("ParentChain", func(t *testing.T) {
		w := workingMap{
			"acl-child":  stagedFixture("acl-child", 1, "acl-parent"),
			"acl-parent": stagedFixture("acl-parent", 2, ""),
		}

		memo := make(map[string]*model.Acl)
		acl, err := assemble(w, "acl-child", memo)
		require.NoError(t, err)

		assert.Equal(t, "acl-child", acl.ID)
		require.NotNil(t, acl.Parent)
		assert.Equal(t, "acl-parent", acl.Parent.ID)
		assert.Nil(t, acl.Parent.Parent)

		// Entries carry back-references to the final ACL, parent level
		// included.
		require.Len(t, acl.Entries, 1)
		assert.Same(t, acl, acl.Entries[0].Acl)
		require.Len(t, acl.Parent.Entries, 1)
		assert.Same(t, acl.Parent, acl.Parent.Entries[0].Acl)
	})

	t.Run("SharedParentBuiltOnce", func(t *testing.T) {
		w := workingMap{
			"acl-a":      stagedFixture("acl-a", 1, "acl-folder"),
			"acl-b":      stagedFixture("acl-b", 2, "acl-folder"),
			"acl-folder": stagedFixture("acl-folder", 3, ""),
		}

		memo := make(map[string]*model.Acl)
		first, err := assemble(w, "acl-a", memo)
		require.NoError(t, err)
		second, err := assemble(w, "acl-b", memo)
		require.NoError(t, err)

		assert.Same(t, first.Parent, second.Parent)
	})

	t.Run("MemoizedResult", func(t *testing.T) {
		w := workingMap{"acl-a": stagedFixture("acl-a", 1, "")}

		memo := make(map[string]*model.Acl)
		first, err := assemble(w, "acl-a", memo)
		require.NoError(t, err)
		second, err := assemble(w, "acl-a", memo)
		require.NoError(t, err)

		assert.Same(t, first, second)
	})

	t.Run("ResolvedPassthrough", func(t *testing.T) {
		cached := &model.Acl{ID: "acl-cached", ObjectIdentity: model.ObjectIdentity{Type: "Folder", Identifier: 9}}
		w := workingMap{
			"acl-child": stagedFixture("acl-child", 1, "acl-cached"),
		}
		w.insertResolved(cached)

		acl, err := assemble(w, "acl-child", make(map[string]*model.Acl))
		require.NoError(t, err)
		assert.Same(t, cached, acl.Parent)
	})

	t.Run("MissingParentEntry", func(t *testing.T) {
		w := workingMap{"acl-child": stagedFixture("acl-child", 1, "acl-gone")}

		_, err := assemble(w, "acl-child", make(map[string]*model.Acl))
		require.ErrorIs(t, err, aclerrors.ErrUnresolvedParent)
	})
}
