package model

import "time"

// LinkingResult is the outcome of one linking run over a text.
type LinkingResult struct {
	OriginalText   string               `json:"original_text"`
	LinkedEntities map[string]Candidate `json:"linked_entities"` // mention text -> chosen candidate
	Beliefs        []CandidateBelief    `json:"candidate_beliefs"`
	Decisions      []Decision           `json:"disambiguation_decisions"`

	// Confidence is the overall linking confidence: the mean combined score
	// of linked entities, minus a penalty for low-confidence beliefs.
	Confidence float64 `json:"confidence"`

	ProcessedAt time.Time `json:"processed_at"`
	Warnings    []string  `json:"warnings,omitempty"`
}

// ExportedEntity is the reporting view of one linked entity.
type ExportedEntity struct {
	CanonicalName string   `json:"canonical_name"`
	Category      Category `json:"category"`
	Confidence    float64  `json:"confidence"`
}

// ExportRecord is the serializable per-text record consumed by external
// reporting. Belief fields survive an export/import cycle exactly.
type ExportRecord struct {
	OriginalText      string                    `json:"original_text"`
	LinkedEntities    map[string]ExportedEntity `json:"linked_entities"`
	CandidateBeliefs  []CandidateBelief         `json:"candidate_beliefs"`
	OverallConfidence float64                   `json:"overall_confidence"`
}

// Export converts a linking result into its reporting record.
func (r *LinkingResult) Export() ExportRecord {
	entities := make(map[string]ExportedEntity, len(r.LinkedEntities))
	for mention, cand := range r.LinkedEntities {
		entities[mention] = ExportedEntity{
			CanonicalName: cand.CanonicalName,
			Category:      cand.Category,
			Confidence:    cand.CombinedScore,
		}
	}
	return ExportRecord{
		OriginalText:      r.OriginalText,
		LinkedEntities:    entities,
		CandidateBeliefs:  r.Beliefs,
		OverallConfidence: r.Confidence,
	}
}
