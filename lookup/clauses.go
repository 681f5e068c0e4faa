// lookup/clauses.go
package lookup

import (
	"fmt"
	"strings"

	"github.com/aclgraph/aclgraph/model"
)

// Default Cypher fragments for the node schema shipped with this module.
// All four are overridable for schema customization; the algorithm only
// relies on the where fragments accepting a numeric suffix for parameter
// naming and on the return aliases matching the row contract.
const (
	defaultMatchClause = "MATCH (owner:SidNode)<-[:OWNED_BY]-(acl:AclNode)-[:SECURES]->(class:ClassNode) " +
		"OPTIONAL MATCH (acl)<-[:COMPOSES]-(ace:AceNode)-[:AUTHORIZES]->(sid:SidNode) " +
		"WITH acl, ace, owner, sid, class WHERE ( "

	defaultIdentityWhereClause = " (acl.objectIdIdentity = $objectIdIdentity%d AND class.className = $className%d) "

	defaultIDWhereClause = " (acl.id = $aclId%d) "

	defaultReturnClause = " ) RETURN owner.principal AS aclPrincipal, owner.sid AS aclSid, " +
		"acl.objectIdIdentity AS objectIdIdentity, ace.aceOrder AS aceOrder, acl.id AS aclId, " +
		"acl.parentObject AS parentObject, acl.entriesInheriting AS entriesInheriting, " +
		"ace.id AS aceId, ace.mask AS mask, ace.granting AS granting, " +
		"ace.auditSuccess AS auditSuccess, ace.auditFailure AS auditFailure, " +
		"sid.principal AS acePrincipal, sid.sid AS aceSid, class.className AS className "

	defaultOrderByClause = " ORDER BY acl.objectIdIdentity ASC, ace.aceOrder ASC"
)

// buildIdentityQuery assembles one round trip for a set of object
// identities: every identity becomes an OR'd predicate block with uniquely
// numbered parameters.
func (s *Strategy) buildIdentityQuery(oids []model.ObjectIdentity) (string, map[string]any) {
	var cypher strings.Builder
	cypher.WriteString(s.matchClause)

	params := make(map[string]any, 2*len(oids))
	for i, oid := range oids {
		cypher.WriteString(fmt.Sprintf(s.identityWhereClause, i+1, i+1))
		if i+1 != len(oids) {
			cypher.WriteString(" OR ")
		}
		params[fmt.Sprintf("objectIdIdentity%d", i+1)] = oid.Identifier
		params[fmt.Sprintf("className%d", i+1)] = oid.Type
	}

	cypher.WriteString(s.returnClause)
	cypher.WriteString(s.orderByClause)
	return cypher.String(), params
}

// buildIDQuery assembles one round trip keyed by ACL internal ids, used for
// parent follow-up rounds.
func (s *Strategy) buildIDQuery(ids []string) (string, map[string]any) {
	var cypher strings.Builder
	cypher.WriteString(s.matchClause)

	params := make(map[string]any, len(ids))
	for i, id := range ids {
		cypher.WriteString(fmt.Sprintf(s.idWhereClause, i+1))
		if i+1 != len(ids) {
			cypher.WriteString(" OR ")
		}
		params[fmt.Sprintf("aclId%d", i+1)] = id
	}

	cypher.WriteString(s.returnClause)
	cypher.WriteString(s.orderByClause)
	return cypher.String(), params
}
