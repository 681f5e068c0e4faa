// model/acl.go
package model

import (
	"github.com/aclgraph/aclgraph/permission"
)

// Ace is one access control entry: a grant or deny of a permission to a
// recipient Sid, at a fixed position in its owning ACL.
type Ace struct {
	ID           string
	Acl          *Acl // back-reference to the owning ACL
	Sid          Sid
	Permission   permission.Permission
	Order        int
	Granting     bool
	AuditSuccess bool
	AuditFailure bool
}

// Acl is the fully materialized access control list for one secured object.
// Parent, when non-nil, is itself fully materialized: resolution never hands
// out an ACL whose parent is a placeholder.
type Acl struct {
	ID                string
	ObjectIdentity    ObjectIdentity
	Owner             Sid
	Parent            *Acl
	EntriesInheriting bool
	Entries           []*Ace

	// LoadedSids lists the Sids this ACL was loaded for. nil means the ACL
	// carries entries for every Sid, which is the only form this module
	// ever produces or caches.
	LoadedSids []Sid
}

// IsSidLoaded reports whether the ACL carries complete entry data for every
// requested Sid.
func (a *Acl) IsSidLoaded(sids []Sid) bool {
	if a.LoadedSids == nil {
		return true
	}
	for _, want := range sids {
		found := false
		for _, have := range a.LoadedSids {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
