// lookup/resolver.go
package lookup

import (
	"context"
	"fmt"

	"github.com/aclgraph/aclgraph/model"
	"github.com/aclgraph/aclgraph/store"
)

// lookupObjectIdentities resolves one batch of cache-miss identities: a
// single predicate-batched round trip for the identities themselves, then
// successive round trips keyed by unresolved parent internal ids until the
// hierarchy is closed, and finally assembly of the working map into fully
// dereferenced ACLs. The returned map also contains parents loaded along
// the way, keyed by their own object identity; the caller decides which
// entries were actually requested.
func (s *Strategy) lookupObjectIdentities(ctx context.Context, oids []model.ObjectIdentity, sids []model.Sid, stats *lookupStats) (map[model.ObjectIdentity]*model.Acl, error) {
	acls := make(workingMap)

	cypher, params := s.buildIdentityQuery(oids)
	rows, err := s.gateway.Query(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	stats.roundTrips++

	parentsToLookup, err := s.processRows(ctx, acls, rows, sids)
	if err != nil {
		return nil, err
	}

	// The identity round trip has fully completed by now, so each parent
	// round trip runs against a released store connection.
	for len(parentsToLookup) > 0 {
		parentsToLookup, err = s.lookupParentIDs(ctx, acls, parentsToLookup, sids, stats)
		if err != nil {
			return nil, err
		}
	}

	result := make(map[model.ObjectIdentity]*model.Acl, len(acls))
	memo := make(map[string]*model.Acl, len(acls))
	for id := range acls {
		acl, err := assemble(acls, id, memo)
		if err != nil {
			return nil, err
		}
		result[acl.ObjectIdentity] = acl
	}
	return result, nil
}

// lookupParentIDs issues one round trip keyed by ACL internal ids, merging
// the rows into the shared working map. It returns the parent ids that are
// still unresolved after this round.
func (s *Strategy) lookupParentIDs(ctx context.Context, acls workingMap, ids []string, sids []model.Sid, stats *lookupStats) ([]string, error) {
	cypher, params := s.buildIDQuery(ids)
	rows, err := s.gateway.Query(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	stats.roundTrips++
	return s.processRows(ctx, acls, rows, sids)
}

// processRows materializes every row in order and collects the parent ids
// that neither the working map nor the cache can satisfy. Cache hits by
// internal id are inserted into the working map directly, short-circuiting
// a further fetch; a cached parent that does not cover the requested Sids
// is treated as a miss and refetched from the store.
func (s *Strategy) processRows(ctx context.Context, acls workingMap, rows []store.Row, sids []model.Sid) ([]string, error) {
	var parentsToLookup []string
	queued := make(map[string]struct{})

	for _, row := range rows {
		if err := acls.materializeRow(row, s.permissions); err != nil {
			return nil, err
		}

		parentID, err := rowOptionalString(row, "parentObject")
		if err != nil {
			return nil, err
		}
		if parentID == "" {
			continue
		}
		if _, ok := acls[parentID]; ok {
			continue
		}
		if _, ok := queued[parentID]; ok {
			continue
		}

		cached, err := s.cache.GetByID(ctx, parentID)
		if err != nil {
			return nil, fmt.Errorf("cache probe for parent acl %s: %w", parentID, err)
		}
		if cached == nil || !cached.IsSidLoaded(sids) {
			parentsToLookup = append(parentsToLookup, parentID)
			queued[parentID] = struct{}{}
			continue
		}
		acls.insertResolved(cached)
	}

	return parentsToLookup, nil
}
