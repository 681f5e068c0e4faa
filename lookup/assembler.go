// lookup/assembler.go
package lookup

import (
	"fmt"

	aclerrors "github.com/aclgraph/aclgraph/errors"
	"github.com/aclgraph/aclgraph/model"
)

// assemble converts one working-map entry into a final ACL, resolving the
// parent chain bottom-up: the parent is built (or fetched from the memo)
// first, then the ACL, then its entries with back-references to the final
// ACL. memo guarantees each internal id is finalized at most once per
// resolution, so siblings share one parent object.
func assemble(working workingMap, id string, memo map[string]*model.Acl) (*model.Acl, error) {
	if acl, ok := memo[id]; ok {
		return acl, nil
	}

	staged, ok := working[id]
	if !ok {
		// The resolver loops until no parent reference is unresolved, so a
		// missing entry here is a programming defect, not bad input.
		return nil, fmt.Errorf("%w: %s", aclerrors.ErrUnresolvedParent, id)
	}

	if staged.resolved != nil {
		memo[id] = staged.resolved
		return staged.resolved, nil
	}

	var parent *model.Acl
	if staged.parentID != "" {
		var err error
		parent, err = assemble(working, staged.parentID, memo)
		if err != nil {
			return nil, err
		}
	}

	acl := &model.Acl{
		ID:                staged.id,
		ObjectIdentity:    staged.objectIdentity,
		Owner:             staged.owner,
		Parent:            parent,
		EntriesInheriting: staged.entriesInheriting,
	}

	entries := make([]*model.Ace, 0, len(staged.entries))
	for _, e := range staged.entries {
		entries = append(entries, &model.Ace{
			ID:           e.id,
			Acl:          acl,
			Sid:          e.sid,
			Permission:   e.permission,
			Order:        e.order,
			Granting:     e.granting,
			AuditSuccess: e.auditSuccess,
			AuditFailure: e.auditFailure,
		})
	}
	acl.Entries = entries

	memo[id] = acl
	return acl, nil
}
