// lookup/strategy.go
package lookup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/aclgraph/aclgraph/audit"
	"github.com/aclgraph/aclgraph/cache"
	aclerrors "github.com/aclgraph/aclgraph/errors"
	logger "github.com/aclgraph/aclgraph/logging"
	"github.com/aclgraph/aclgraph/model"
	"github.com/aclgraph/aclgraph/permission"
	"github.com/aclgraph/aclgraph/store"
)

const defaultBatchSize = 50

// Strategy performs batched, hierarchy-aware ACL resolution against a graph
// store, backed by an external ACL cache. A Strategy is immutable after
// construction and safe for concurrent use; all per-call state is local to
// the call.
type Strategy struct {
	gateway     store.QueryGateway
	cache       cache.AclCache
	permissions permission.Factory
	audit       audit.Service

	batchSize           int
	matchClause         string
	identityWhereClause string
	idWhereClause       string
	returnClause        string
	orderByClause       string
}

type Option func(s *Strategy)

// WithBatchSize bounds how many top-level identities one store round trip
// may request. Must be at least 1; the default is 50.
func WithBatchSize(n int) Option {
	return func(s *Strategy) { s.batchSize = n }
}

// WithPermissionFactory replaces the default permission mask registry.
func WithPermissionFactory(f permission.Factory) Option {
	return func(s *Strategy) { s.permissions = f }
}

// WithAuditService records every completed lookup. Audit failures are
// logged, never surfaced.
func WithAuditService(a audit.Service) Option {
	return func(s *Strategy) { s.audit = a }
}

// Clause overrides for schema customization. The where fragments must keep
// their %d parameter suffixes; the return clause must keep the row field
// aliases.
func WithMatchClause(c string) Option {
	return func(s *Strategy) { s.matchClause = c }
}

func WithIdentityWhereClause(c string) Option {
	return func(s *Strategy) { s.identityWhereClause = c }
}

func WithIDWhereClause(c string) Option {
	return func(s *Strategy) { s.idWhereClause = c }
}

func WithReturnClause(c string) Option {
	return func(s *Strategy) { s.returnClause = c }
}

func WithOrderByClause(c string) Option {
	return func(s *Strategy) { s.orderByClause = c }
}

func New(gateway store.QueryGateway, aclCache cache.AclCache, opts ...Option) *Strategy {
	s := &Strategy{
		gateway:             gateway,
		cache:               aclCache,
		permissions:         permission.NewDefaultFactory(),
		batchSize:           defaultBatchSize,
		matchClause:         defaultMatchClause,
		identityWhereClause: defaultIdentityWhereClause,
		idWhereClause:       defaultIDWhereClause,
		returnClause:        defaultReturnClause,
		orderByClause:       defaultOrderByClause,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type lookupStats struct {
	cacheHits  int
	roundTrips int
}

// ReadAclsByID resolves the ACL for every requested identity, walking each
// inheritance chain until every parent is a fully materialized ACL. The
// returned map contains exactly the requested identities that exist in the
// store; batching is invisible to the caller. Any failure discards the
// whole call: partial authorization data is never returned.
func (s *Strategy) ReadAclsByID(ctx context.Context, oids []model.ObjectIdentity, sids []model.Sid) (map[model.ObjectIdentity]*model.Acl, error) {
	start := time.Now()

	if s.batchSize < 1 {
		return nil, aclerrors.ErrInvalidBatchSize
	}
	if len(oids) == 0 {
		return nil, aclerrors.ErrNoObjectIdentities
	}

	result := make(map[model.ObjectIdentity]*model.Acl, len(oids))
	pending := make([]model.ObjectIdentity, 0, s.batchSize)
	pendingSet := make(map[model.ObjectIdentity]struct{}, s.batchSize)
	stats := &lookupStats{}

	for i, oid := range oids {
		_, alreadyResolved := result[oid]
		_, alreadyPending := pendingSet[oid]

		if !alreadyResolved && !alreadyPending {
			cached, err := s.cache.GetByIdentity(ctx, oid)
			if err != nil {
				return nil, fmt.Errorf("cache probe for %s: %w", oid, err)
			}
			if cached != nil {
				// The lookup path never stores Sid-filtered entries, so a
				// cached ACL that fails this check was planted by someone
				// else and cannot be trusted for authorization.
				if !cached.IsSidLoaded(sids) {
					return nil, fmt.Errorf("%w: %s", aclerrors.ErrCacheInconsistency, oid)
				}
				result[cached.ObjectIdentity] = cached
				stats.cacheHits++
			} else {
				pending = append(pending, oid)
				pendingSet[oid] = struct{}{}
			}
		}

		if (len(pending) >= s.batchSize || i+1 == len(oids)) && len(pending) > 0 {
			loaded, err := s.lookupObjectIdentities(ctx, pending, sids, stats)
			if err != nil {
				return nil, err
			}

			for loadedOID, acl := range loaded {
				// Write-through: parents loaded along the way are cached
				// too, but only requested identities join the result.
				if err := s.cache.Put(ctx, acl); err != nil {
					return nil, fmt.Errorf("cache write-through for %s: %w", loadedOID, err)
				}
				if _, requested := pendingSet[loadedOID]; requested {
					result[loadedOID] = acl
				}
			}

			pending = pending[:0]
			clear(pendingSet)
		}
	}

	duration := time.Since(start)
	logger.Debug("ACLs resolved",
		zap.Int("requested", len(oids)),
		zap.Int("resolved", len(result)),
		zap.Int("cacheHits", stats.cacheHits),
		zap.Int("roundTrips", stats.roundTrips),
		zap.Duration("duration", duration))

	if s.audit != nil {
		entry := audit.LookupAudit{
			Timestamp:  time.Now(),
			Identities: identityStrings(oids),
			Sids:       sidStrings(sids),
			CacheHits:  stats.cacheHits,
			RoundTrips: stats.roundTrips,
			Resolved:   len(result),
			DurationMS: duration.Milliseconds(),
		}
		if err := s.audit.LogLookup(ctx, entry); err != nil {
			logger.Error("Failed to create audit log", zap.Error(err))
		}
	}

	return result, nil
}

func identityStrings(oids []model.ObjectIdentity) []string {
	out := make([]string, 0, len(oids))
	for _, oid := range oids {
		out = append(out, oid.String())
	}
	return out
}

func sidStrings(sids []model.Sid) []string {
	out := make([]string, 0, len(sids))
	for _, sid := range sids {
		out = append(out, sid.SidName())
	}
	return out
}
