// model/sid.go
package model

// Sid is a security identity: either an individual principal or a granted
// authority (role). Implementations are comparable value types.
type Sid interface {
	SidName() string
	IsPrincipal() bool
}

// PrincipalSid identifies an individual user.
type PrincipalSid struct {
	Name string `json:"name"`
}

func (s PrincipalSid) SidName() string   { return s.Name }
func (s PrincipalSid) IsPrincipal() bool { return true }

func (s PrincipalSid) String() string { return "PrincipalSid[" + s.Name + "]" }

// GrantedAuthoritySid identifies a granted authority, e.g. a role name.
type GrantedAuthoritySid struct {
	Authority string `json:"authority"`
}

func (s GrantedAuthoritySid) SidName() string   { return s.Authority }
func (s GrantedAuthoritySid) IsPrincipal() bool { return false }

func (s GrantedAuthoritySid) String() string { return "GrantedAuthoritySid[" + s.Authority + "]" }

// NewSid builds the concrete Sid for a principal flag and name, matching the
// encoding used on graph nodes and result rows.
func NewSid(principal bool, name string) Sid {
	if principal {
		return PrincipalSid{Name: name}
	}
	return GrantedAuthoritySid{Authority: name}
}
