// errors/acl_errors.go
package errors

import "errors"

var (
	// Argument validation, rejected before any I/O.
	ErrNoObjectIdentities = errors.New("object identities to lookup required")
	ErrInvalidBatchSize   = errors.New("batch size must be at least 1")

	// A cached ACL was found but does not cover the requested Sids. The
	// lookup path never stores Sid-filtered entries, so this means the
	// cache was populated outside this module.
	ErrCacheInconsistency = errors.New("sid-filtered acl found in cache")

	// A result row is missing a required field or a value failed to
	// decode. The whole lookup fails; partial ACLs are never returned.
	ErrMalformedRow = errors.New("malformed lookup result row")

	// Internal invariant violations.
	ErrUnresolvedParent = errors.New("referenced acl missing from working map")

	ErrUnknownMask = errors.New("unknown permission mask")
)
