// store/gateway.go
package store

import "context"

// Row is one flattened lookup result row, keyed by the aliases of the
// query's RETURN clause.
type Row map[string]any

// QueryGateway executes a parameterized graph query and yields its rows in
// the order the store returned them. Implementations must fully drain the
// result and release any store-side cursor before returning, so the caller
// is free to issue a follow-up query immediately.
type QueryGateway interface {
	Query(ctx context.Context, cypher string, params map[string]any) ([]Row, error)
}
