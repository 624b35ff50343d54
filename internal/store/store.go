package store

import (
	"context"
)

// EntityRecord is a raw knowledge store entry returned by search.
// Similarity is only populated by fuzzy search.
type EntityRecord struct {
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	RelationshipCount int     `json:"relationship_count"`
	Frequency         int     `json:"frequency"`
	Similarity        float64 `json:"similarity,omitempty"`
}

// KnowledgeStore is the narrow collaborator interface the linking core talks
// to. Any of these calls may fail; callers are expected to degrade to an
// empty result rather than abort the pipeline.
type KnowledgeStore interface {
	// SearchExact returns entries whose name matches text exactly
	// (case-insensitive).
	SearchExact(ctx context.Context, text string) ([]EntityRecord, error)

	// SearchFuzzy returns entries whose name similarity to text is at or
	// above threshold, with Similarity populated.
	SearchFuzzy(ctx context.Context, text string, threshold float64) ([]EntityRecord, error)

	// RelationshipExists reports whether the store already holds the
	// subject-predicate-object relationship.
	RelationshipExists(ctx context.Context, subject, predicate, object string) (bool, error)

	Close(ctx context.Context) error
}
