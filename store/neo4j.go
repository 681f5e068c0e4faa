// store/neo4j.go
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	logger "github.com/aclgraph/aclgraph/logging"
)

// Neo4jGateway runs lookup queries against Neo4j. Each call opens a
// read-mode session, drains the result completely and closes the session
// before returning, so no cursor is ever held across round trips.
type Neo4jGateway struct {
	Driver neo4j.Driver
}

func NewNeo4jGateway(driver neo4j.Driver) *Neo4jGateway {
	return &Neo4jGateway{Driver: driver}
}

func (g *Neo4jGateway) Query(ctx context.Context, cypher string, params map[string]any) ([]Row, error) {
	start := time.Now()

	session := g.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer func() {
		if err := session.Close(); err != nil {
			logger.Error("Failed to close Neo4j session", zap.Error(err))
		}
	}()

	result, err := session.Run(cypher, params)
	if err != nil {
		return nil, fmt.Errorf("failed to execute lookup query: %w", err)
	}

	var rows []Row
	for result.Next() {
		record := result.Record()
		row := make(Row, len(record.Keys))
		for i, key := range record.Keys {
			row[key] = record.Values[i]
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to consume lookup result: %w", err)
	}

	logger.Debug("Lookup query executed",
		zap.Int("rows", len(rows)),
		zap.Duration("duration", time.Since(start)))
	return rows, nil
}
