// Package lookup finds and scores knowledge-store candidates for mentions,
// memoizing results for the process lifetime.
package lookup

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/agenthands/tether/internal/core/model"
	"github.com/agenthands/tether/internal/store"
)

type Lookup struct {
	Store  store.KnowledgeStore
	Scorer *Scorer

	// FuzzyThreshold is the minimum similarity for fuzzy matches. Fuzzy
	// search runs only when exact search returns nothing.
	FuzzyThreshold float64

	// CacheSize caps how many top candidates are kept per cache key.
	CacheSize int

	cache *Cache
}

func New(st store.KnowledgeStore, scorer *Scorer, fuzzyThreshold float64, cacheSize int) *Lookup {
	if fuzzyThreshold <= 0 {
		fuzzyThreshold = 0.8
	}
	if cacheSize <= 0 {
		cacheSize = 5
	}
	return &Lookup{
		Store:          st,
		Scorer:         scorer,
		FuzzyThreshold: fuzzyThreshold,
		CacheSize:      cacheSize,
		cache:          NewCache(),
	}
}

// Find returns scored candidates for a mention, ranked stable-descending by
// combined score. Results are memoized by (lowercased mention, category); the
// cache never expires on its own. A store failure degrades to an empty result
// and is never surfaced as an error.
func (l *Lookup) Find(ctx context.Context, mentionText string, category model.Category) []model.Candidate {
	key := cacheKey(mentionText, category)
	if cached, ok := l.cache.Get(key); ok {
		return cached
	}

	exact, err := l.Store.SearchExact(ctx, mentionText)
	if err != nil {
		log.Printf("Warning: exact search failed for '%s': %v", mentionText, err)
		return nil
	}

	var candidates []model.Candidate
	for _, rec := range exact {
		candidates = append(candidates, l.Scorer.Score(rec, true))
	}

	// Fuzzy search runs only when the exact pass found nothing at all.
	if len(exact) == 0 {
		fuzzy, err := l.Store.SearchFuzzy(ctx, mentionText, l.FuzzyThreshold)
		if err != nil {
			log.Printf("Warning: fuzzy search failed for '%s': %v", mentionText, err)
			return nil
		}
		for _, rec := range fuzzy {
			candidates = append(candidates, l.Scorer.Score(rec, false))
		}
	}

	// Stable sort keeps original lookup order among tied scores.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].CombinedScore > candidates[j].CombinedScore
	})

	if len(candidates) > l.CacheSize {
		candidates = candidates[:l.CacheSize]
	}
	l.cache.Put(key, candidates)

	return candidates
}

// ClearCache drops all memoized lookups.
func (l *Lookup) ClearCache() {
	l.cache.Clear()
}

// CacheStats exposes the cache's size and keys for the stats surface.
func (l *Lookup) CacheStats() (int, []string) {
	return l.cache.Stats()
}

func cacheKey(mentionText string, category model.Category) string {
	return strings.ToLower(mentionText) + ":" + string(category)
}
