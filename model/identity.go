// model/identity.go
package model

import "fmt"

// ObjectIdentity names one secured domain object by its type and numeric
// identifier. It is a comparable value type and is used as a map key.
type ObjectIdentity struct {
	Type       string `json:"type"`
	Identifier int64  `json:"identifier"`
}

func (oid ObjectIdentity) String() string {
	return fmt.Sprintf("%s:%d", oid.Type, oid.Identifier)
}
