// model/json.go
package model

import (
	"encoding/json"

	"github.com/aclgraph/aclgraph/permission"
)

// The in-memory model is cyclic (every entry holds a back-reference to its
// owning ACL), so ACLs marshal through a flat record: entries drop the
// back-reference and the parent chain nests recursively. Unmarshalling
// rebuilds the back-references.

type sidRecord struct {
	Principal bool   `json:"principal"`
	Name      string `json:"name"`
}

func newSidRecord(s Sid) sidRecord {
	return sidRecord{Principal: s.IsPrincipal(), Name: s.SidName()}
}

func (r sidRecord) sid() Sid { return NewSid(r.Principal, r.Name) }

type aceRecord struct {
	ID           string    `json:"id"`
	Sid          sidRecord `json:"sid"`
	Mask         int32     `json:"mask"`
	Order        int       `json:"order"`
	Granting     bool      `json:"granting"`
	AuditSuccess bool      `json:"audit_success"`
	AuditFailure bool      `json:"audit_failure"`
}

type aclRecord struct {
	ID                string         `json:"id"`
	ObjectIdentity    ObjectIdentity `json:"object_identity"`
	Owner             sidRecord      `json:"owner"`
	Parent            *Acl           `json:"parent,omitempty"`
	EntriesInheriting bool           `json:"entries_inheriting"`
	Entries           []aceRecord    `json:"entries"`
	LoadedSids        []sidRecord    `json:"loaded_sids,omitempty"`
}

func (a *Acl) MarshalJSON() ([]byte, error) {
	rec := aclRecord{
		ID:                a.ID,
		ObjectIdentity:    a.ObjectIdentity,
		Owner:             newSidRecord(a.Owner),
		Parent:            a.Parent,
		EntriesInheriting: a.EntriesInheriting,
		Entries:           make([]aceRecord, 0, len(a.Entries)),
	}
	for _, ace := range a.Entries {
		rec.Entries = append(rec.Entries, aceRecord{
			ID:           ace.ID,
			Sid:          newSidRecord(ace.Sid),
			Mask:         ace.Permission.Mask(),
			Order:        ace.Order,
			Granting:     ace.Granting,
			AuditSuccess: ace.AuditSuccess,
			AuditFailure: ace.AuditFailure,
		})
	}
	for _, sid := range a.LoadedSids {
		rec.LoadedSids = append(rec.LoadedSids, newSidRecord(sid))
	}
	return json.Marshal(rec)
}

func (a *Acl) UnmarshalJSON(data []byte) error {
	var rec aclRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	a.ID = rec.ID
	a.ObjectIdentity = rec.ObjectIdentity
	a.Owner = rec.Owner.sid()
	a.Parent = rec.Parent
	a.EntriesInheriting = rec.EntriesInheriting
	a.Entries = make([]*Ace, 0, len(rec.Entries))
	for _, e := range rec.Entries {
		a.Entries = append(a.Entries, &Ace{
			ID:           e.ID,
			Acl:          a,
			Sid:          e.Sid.sid(),
			Permission:   permission.ForMask(e.Mask),
			Order:        e.Order,
			Granting:     e.Granting,
			AuditSuccess: e.AuditSuccess,
			AuditFailure: e.AuditFailure,
		})
	}
	a.LoadedSids = nil
	for _, s := range rec.LoadedSids {
		a.LoadedSids = append(a.LoadedSids, s.sid())
	}
	return nil
}
