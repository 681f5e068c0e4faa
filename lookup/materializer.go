// lookup/materializer.go
package lookup

import (
	"fmt"

	aclerrors "github.com/aclgraph/aclgraph/errors"
	"github.com/aclgraph/aclgraph/model"
	"github.com/aclgraph/aclgraph/permission"
	"github.com/aclgraph/aclgraph/store"
)

// workingMap is the call-local flat map of partially linked ACLs, keyed by
// internal id. Entries are either staged (parent known only by id, or
// satisfied from cache) or already resolved (inserted whole from cache).
type workingMap map[string]*stagedAcl

// stagedAcl is one working-map entry. parentID is the placeholder parent
// marker: it names a parent ACL by internal id until that id has its own
// working-map entry; empty means no parent. resolved short-circuits
// assembly for entries inserted whole from the cache.
type stagedAcl struct {
	resolved *model.Acl

	id                string
	objectIdentity    model.ObjectIdentity
	owner             model.Sid
	entriesInheriting bool
	parentID          string
	entries           []*stagedAce
}

type stagedAce struct {
	id           string
	sid          model.Sid
	permission   permission.Permission
	order        int
	granting     bool
	auditSuccess bool
	auditFailure bool
}

// materializeRow folds one result row into the working map: it creates the
// staged ACL on first sight and appends the row's entry, if any. Repeated
// (aclId, aceId) rows are idempotent; the store's ORDER BY fixes entry
// order, so append preserves it.
func (w workingMap) materializeRow(row store.Row, permissions permission.Factory) error {
	id, err := rowString(row, "aclId")
	if err != nil {
		return err
	}

	staged, ok := w[id]
	if !ok {
		objectID, err := rowInt64(row, "objectIdIdentity")
		if err != nil {
			return err
		}
		className, err := rowString(row, "className")
		if err != nil {
			return err
		}
		ownerPrincipal, err := rowBool(row, "aclPrincipal")
		if err != nil {
			return err
		}
		ownerName, err := rowString(row, "aclSid")
		if err != nil {
			return err
		}
		entriesInheriting, err := rowBool(row, "entriesInheriting")
		if err != nil {
			return err
		}
		parentID, err := rowOptionalString(row, "parentObject")
		if err != nil {
			return err
		}

		staged = &stagedAcl{
			id:                id,
			objectIdentity:    model.ObjectIdentity{Type: className, Identifier: objectID},
			owner:             model.NewSid(ownerPrincipal, ownerName),
			entriesInheriting: entriesInheriting,
			parentID:          parentID,
		}
		w[id] = staged
	}

	// A row without an entry is a legitimate zero-entry ACL: the OPTIONAL
	// MATCH yields nil ace columns and there is nothing more to fold in.
	recipientName, err := rowOptionalString(row, "aceSid")
	if err != nil {
		return err
	}
	if recipientName == "" {
		return nil
	}

	aceID, err := rowString(row, "aceId")
	if err != nil {
		return err
	}
	for _, existing := range staged.entries {
		if existing.id == aceID {
			return nil
		}
	}

	recipientPrincipal, err := rowBool(row, "acePrincipal")
	if err != nil {
		return err
	}
	mask, err := rowInt64(row, "mask")
	if err != nil {
		return err
	}
	perm, err := permissions.FromMask(int32(mask))
	if err != nil {
		return fmt.Errorf("%w: %v", aclerrors.ErrMalformedRow, err)
	}
	order, err := rowInt64(row, "aceOrder")
	if err != nil {
		return err
	}
	granting, err := rowBool(row, "granting")
	if err != nil {
		return err
	}
	auditSuccess, err := rowBool(row, "auditSuccess")
	if err != nil {
		return err
	}
	auditFailure, err := rowBool(row, "auditFailure")
	if err != nil {
		return err
	}

	staged.entries = append(staged.entries, &stagedAce{
		id:           aceID,
		sid:          model.NewSid(recipientPrincipal, recipientName),
		permission:   perm,
		order:        int(order),
		granting:     granting,
		auditSuccess: auditSuccess,
		auditFailure: auditFailure,
	})
	return nil
}

// insertResolved places a cache-satisfied ACL into the working map so
// assembly can reference it without another fetch.
func (w workingMap) insertResolved(acl *model.Acl) {
	w[acl.ID] = &stagedAcl{resolved: acl, id: acl.ID}
}

func rowString(row store.Row, key string) (string, error) {
	v, ok := row[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: missing field %q", aclerrors.ErrMalformedRow, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q has type %T, want string", aclerrors.ErrMalformedRow, key, v)
	}
	return s, nil
}

// rowOptionalString returns "" for an absent or nil value.
func rowOptionalString(row store.Row, key string) (string, error) {
	v, ok := row[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q has type %T, want string", aclerrors.ErrMalformedRow, key, v)
	}
	return s, nil
}

func rowInt64(row store.Row, key string) (int64, error) {
	v, ok := row[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: missing field %q", aclerrors.ErrMalformedRow, key)
	}
	n, ok := v.(int64)
	if !ok {
		return 0, fmt.Errorf("%w: field %q has type %T, want int64", aclerrors.ErrMalformedRow, key, v)
	}
	return n, nil
}

func rowBool(row store.Row, key string) (bool, error) {
	v, ok := row[key]
	if !ok || v == nil {
		return false, fmt.Errorf("%w: missing field %q", aclerrors.ErrMalformedRow, key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: field %q has type %T, want bool", aclerrors.ErrMalformedRow, key, v)
	}
	return b, nil
}
