package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/agenthands/tether/internal/core/common"
)

// FixtureStore is an in-memory KnowledgeStore for tests and local demo runs.
// It is only ever selected explicitly (store.provider = "memory" or direct
// construction in tests), never as a fallback for an unreachable Memgraph.
type FixtureStore struct {
	mu            sync.RWMutex
	entities      map[string][]EntityRecord // lowercased name -> records
	relationships map[string]bool           // "subject|predicate|object", lowercased

	// Fail makes every call return an error, for exercising the fail-open
	// paths of the pipeline.
	Fail error
}

func NewFixtureStore() *FixtureStore {
	return &FixtureStore{
		entities:      make(map[string][]EntityRecord),
		relationships: make(map[string]bool),
	}
}

// NewSeededFixtureStore returns a fixture pre-loaded with the ambiguous
// entities used throughout the test suite (paris/john/apple).
func NewSeededFixtureStore() *FixtureStore {
	s := NewFixtureStore()
	s.AddEntities("paris",
		EntityRecord{Name: "Paris, France", Category: "location", RelationshipCount: 15, Frequency: 100},
		EntityRecord{Name: "Paris, Texas", Category: "location", RelationshipCount: 5, Frequency: 10},
		EntityRecord{Name: "Paris Hilton", Category: "person", RelationshipCount: 8, Frequency: 25},
	)
	s.AddEntities("john",
		EntityRecord{Name: "John Smith", Category: "person", RelationshipCount: 12, Frequency: 50},
		EntityRecord{Name: "John Doe", Category: "person", RelationshipCount: 3, Frequency: 15},
	)
	s.AddEntities("apple",
		EntityRecord{Name: "Apple Inc.", Category: "organization", RelationshipCount: 20, Frequency: 80},
		EntityRecord{Name: "apple fruit", Category: "concept", RelationshipCount: 10, Frequency: 30},
	)
	return s
}

func (s *FixtureStore) AddEntities(key string, records ...EntityRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := strings.ToLower(key)
	s.entities[k] = append(s.entities[k], records...)
}

func (s *FixtureStore) AddRelationship(subject, predicate, object string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.relationships[relationshipKey(subject, predicate, object)] = true
}

func (s *FixtureStore) SearchExact(ctx context.Context, text string) ([]EntityRecord, error) {
	if s.Fail != nil {
		return nil, s.Fail
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := s.entities[strings.ToLower(text)]
	out := make([]EntityRecord, len(records))
	copy(out, records)
	return out, nil
}

func (s *FixtureStore) SearchFuzzy(ctx context.Context, text string, threshold float64) ([]EntityRecord, error) {
	if s.Fail != nil {
		return nil, s.Fail
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Iterate in sorted key order so results are deterministic per call.
	keys := make([]string, 0, len(s.entities))
	for key := range s.entities {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var matches []EntityRecord
	for _, key := range keys {
		sim := common.SimilarityRatio(strings.ToLower(text), key)
		if sim < threshold {
			continue
		}
		for _, rec := range s.entities[key] {
			rec.Similarity = sim
			matches = append(matches, rec)
		}
	}
	return matches, nil
}

func (s *FixtureStore) RelationshipExists(ctx context.Context, subject, predicate, object string) (bool, error) {
	if s.Fail != nil {
		return false, s.Fail
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.relationships[relationshipKey(subject, predicate, object)], nil
}

func (s *FixtureStore) Close(ctx context.Context) error {
	return nil
}

func relationshipKey(subject, predicate, object string) string {
	return strings.ToLower(subject) + "|" + predicate + "|" + strings.ToLower(object)
}
