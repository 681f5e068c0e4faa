// permission/permission.go
package permission

import (
	"fmt"
	"strings"

	aclerrors "github.com/aclgraph/aclgraph/errors"
)

// Permission is one decoded permission bitmask. Downstream evaluation only
// depends on the mask; the string form exists for logs and diagnostics.
type Permission interface {
	Mask() int32
	String() string
}

type basePermission struct {
	mask int32
	code rune
}

func (p basePermission) Mask() int32 { return p.mask }

func (p basePermission) String() string { return pattern(p.mask, p.code) }

// Standard permissions and their masks.
var (
	Read           Permission = basePermission{mask: 1 << 0, code: 'R'}
	Write          Permission = basePermission{mask: 1 << 1, code: 'W'}
	Create         Permission = basePermission{mask: 1 << 2, code: 'C'}
	Delete         Permission = basePermission{mask: 1 << 3, code: 'D'}
	Administration Permission = basePermission{mask: 1 << 4, code: 'A'}
)

// ForMask wraps a raw mask without consulting any registry. It is used when
// rehydrating cached ACLs, where the mask was already validated at load time.
func ForMask(mask int32) Permission {
	return basePermission{mask: mask, code: '*'}
}

// Cumulative combines several permissions into one mask.
func Cumulative(perms ...Permission) Permission {
	var mask int32
	for _, p := range perms {
		mask |= p.Mask()
	}
	return basePermission{mask: mask, code: '*'}
}

// Factory decodes a stored permission bitmask.
type Factory interface {
	FromMask(mask int32) (Permission, error)
}

// DefaultFactory resolves masks against a registry of known permissions.
// The five standard permissions are pre-registered; callers may register
// additional (including cumulative) masks.
type DefaultFactory struct {
	registered map[int32]Permission
}

func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{registered: make(map[int32]Permission)}
	for _, p := range []Permission{Read, Write, Create, Delete, Administration} {
		f.Register(p)
	}
	return f
}

func (f *DefaultFactory) Register(p Permission) {
	f.registered[p.Mask()] = p
}

func (f *DefaultFactory) FromMask(mask int32) (Permission, error) {
	if p, ok := f.registered[mask]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %d", aclerrors.ErrUnknownMask, mask)
}

// pattern renders the 32-bit mask the way audit logs expect: one character
// per bit, '.' for unset bits and the permission code for set bits.
func pattern(mask int32, code rune) string {
	var b strings.Builder
	for bit := 31; bit >= 0; bit-- {
		if mask&(1<<bit) != 0 {
			b.WriteRune(code)
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}
