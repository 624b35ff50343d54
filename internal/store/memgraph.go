package store

import (
	"context"
	"fmt"
	"log"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/agenthands/tether/internal/core/common"
)

// MemgraphStore is the production KnowledgeStore backed by Memgraph (bolt
// protocol, Neo4j driver).
type MemgraphStore struct {
	Driver neo4j.DriverWithContext

	// MaxResults bounds how many rows a single search may return.
	MaxResults int
}

func NewMemgraphStore(uri, username, password string) (*MemgraphStore, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, err
	}

	if err := driver.VerifyConnectivity(context.Background()); err != nil {
		return nil, err
	}

	log.Println("Connected to Memgraph")
	return &MemgraphStore{Driver: driver, MaxResults: 25}, nil
}

func (s *MemgraphStore) Close(ctx context.Context) error {
	return s.Driver.Close(ctx)
}

func (s *MemgraphStore) SearchExact(ctx context.Context, text string) ([]EntityRecord, error) {
	result, err := s.executeQuery(ctx, searchExactQuery, map[string]interface{}{
		"name":  text,
		"limit": s.maxResults(),
	})
	if err != nil {
		return nil, err
	}
	return recordsToEntities(result.Records), nil
}

func (s *MemgraphStore) SearchFuzzy(ctx context.Context, text string, threshold float64) ([]EntityRecord, error) {
	result, err := s.executeQuery(ctx, searchFuzzyQuery, map[string]interface{}{
		"name":  text,
		"limit": s.maxResults(),
	})
	if err != nil {
		return nil, err
	}

	// The Cypher side over-fetches on containment; the similarity ratio and
	// threshold filter are applied here.
	var matches []EntityRecord
	for _, rec := range recordsToEntities(result.Records) {
		sim := common.SimilarityRatio(text, rec.Name)
		if sim >= threshold {
			rec.Similarity = sim
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

func (s *MemgraphStore) RelationshipExists(ctx context.Context, subject, predicate, object string) (bool, error) {
	result, err := s.executeQuery(ctx, relationshipExistsQuery, map[string]interface{}{
		"subject":   subject,
		"predicate": predicate,
		"object":    object,
	})
	if err != nil {
		return false, err
	}

	if len(result.Records) == 0 {
		return false, nil
	}
	exists, _ := result.Records[0].Get("exists")
	b, ok := exists.(bool)
	return ok && b, nil
}

func (s *MemgraphStore) executeQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(ctx, s.Driver, query, params, neo4j.EagerResultTransformer)
	if err != nil {
		return neo4j.EagerResult{}, fmt.Errorf("failed to execute query: %w", err)
	}
	return *result, nil
}

func (s *MemgraphStore) maxResults() int {
	if s.MaxResults <= 0 {
		return 25
	}
	return s.MaxResults
}

func recordsToEntities(records []*neo4j.Record) []EntityRecord {
	var entities []EntityRecord
	for _, rec := range records {
		name, _ := rec.Get("name")
		nameStr, ok := name.(string)
		if !ok || nameStr == "" {
			continue
		}

		category, _ := rec.Get("category")
		categoryStr, _ := category.(string)

		entities = append(entities, EntityRecord{
			Name:              nameStr,
			Category:          categoryStr,
			RelationshipCount: intValue(rec, "relationship_count"),
			Frequency:         intValue(rec, "frequency"),
		})
	}
	return entities
}

// intValue reads an integer column, tolerating the driver returning int64 or
// float64 depending on how the property was written.
func intValue(rec *neo4j.Record, key string) int {
	v, _ := rec.Get(key)
	switch n := v.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}
