// audit/model.go
package audit

import (
	"time"
)

// LookupAudit records one completed ACL resolution call.
type LookupAudit struct {
	Timestamp  time.Time `json:"timestamp"`
	Identities []string  `json:"identities"`
	Sids       []string  `json:"sids,omitempty"`
	CacheHits  int       `json:"cache_hits"`
	RoundTrips int       `json:"round_trips"`
	Resolved   int       `json:"resolved"`
	DurationMS int64     `json:"duration_ms"`
}
