// Package proposal sketches a structured store proposal from raw text: query
// classification, entity and relationship sketches, a reasoning trace and a
// heuristic confidence. Its confidence output is the language-model input to
// confidence fusion; the linking core itself never depends on this package.
package proposal

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// QueryType classifies what the text is asking of the knowledge store.
type QueryType string

const (
	QueryAssertion    QueryType = "assertion"     // "John is tall"
	QuerySimple       QueryType = "query"         // "Is John tall?"
	QueryComplex      QueryType = "complex_query" // "Who are all tall people?"
	QueryInference    QueryType = "inference"     // "If John is tall and ..."
	QueryDefinition   QueryType = "definition"    // "What does 'tall' mean?"
)

// Confidence weights over the four heuristic signals.
const (
	entityClarityWeight      = 0.3
	relationClarityWeight    = 0.3
	logicalConsistencyWeight = 0.2
	specificityWeight        = 0.2
)

// validationThreshold mirrors the linking side: below it a proposal needs
// validation before anything acts on it.
const validationThreshold = 0.7

// Triple is a sketched subject-predicate-object relationship.
type Triple struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Proposal is a structured sketch of what the text wants from the store,
// with a confidence in [0,1] and the reasoning steps that produced it.
type Proposal struct {
	QueryType          QueryType `json:"query_type"`
	OriginalText       string    `json:"original_text"`
	StoreOperation     string    `json:"store_operation"`
	Entities           []string  `json:"entities"`
	Relationships      []Triple  `json:"relationships"`
	Confidence         float64   `json:"confidence"`
	ReasoningSteps     []string  `json:"reasoning_steps"`
	RequiresValidation bool      `json:"requires_validation"`
	CreatedAt          time.Time `json:"created_at"`
}

var entityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:is|was|has|have|will|can|could|should)\b`),
	regexp.MustCompile(`\b(?:in|at|from|to)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	regexp.MustCompile(`(?i)\b(?:the concept of|the idea of|meaning of)\s+([a-z]+(?:\s+[a-z]+)*)`),
}

var properNounPattern = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// RelationPattern maps a lexical pattern onto a predicate.
type RelationPattern struct {
	Predicate string
	Pattern   *regexp.Regexp
}

// DefaultRelationPatterns is this layer's own relation table. It is shorter
// than the belief proposer's (no bornIn/locatedIn) and intentionally kept as
// a separate table rather than unified with it.
var DefaultRelationPatterns = []RelationPattern{
	{"is", regexp.MustCompile(`(?i)(\w+)\s+is\s+(\w+)`)},
	{"has", regexp.MustCompile(`(?i)(\w+)\s+has\s+(\w+)`)},
	{"livesIn", regexp.MustCompile(`(?i)(\w+)\s+lives\s+in\s+(\w+)`)},
	{"worksAt", regexp.MustCompile(`(?i)(\w+)\s+works\s+at\s+(\w+)`)},
	{"knows", regexp.MustCompile(`(?i)(\w+)\s+knows\s+(\w+)`)},
	{"likes", regexp.MustCompile(`(?i)(\w+)\s+likes\s+(\w+)`)},
}

var hedgingWords = []string{"maybe", "perhaps", "might", "possibly"}

type Proposer struct {
	Patterns []RelationPattern
}

func NewProposer() *Proposer {
	return &Proposer{Patterns: DefaultRelationPatterns}
}

// Propose builds a proposal from text using pattern heuristics only; no
// model call happens here. See Refine for the optional LLM pass.
func (p *Proposer) Propose(text string) Proposal {
	queryType := classify(text)
	entities := extractEntities(text)
	relationships := p.extractRelationships(text)
	confidence := confidenceFor(text, entities, relationships)

	return Proposal{
		QueryType:          queryType,
		OriginalText:       text,
		StoreOperation:     translate(text, queryType, entities, relationships),
		Entities:           entities,
		Relationships:      relationships,
		Confidence:         confidence,
		ReasoningSteps:     reasoningSteps(queryType, entities, relationships),
		RequiresValidation: confidence < validationThreshold || queryType == QueryComplex,
		CreatedAt:          time.Now().UTC(),
	}
}

func classify(text string) QueryType {
	lowered := strings.ToLower(strings.TrimSpace(text))

	switch {
	case strings.HasSuffix(lowered, "?"):
		for _, w := range []string{"who", "what", "where", "when", "how", "which"} {
			if strings.Contains(lowered, w) {
				return QueryComplex
			}
		}
		return QuerySimple
	case strings.Contains(lowered, "if") && (strings.Contains(lowered, "then") || strings.Contains(lowered, "would")):
		return QueryInference
	}

	for _, phrase := range []string{"what is", "what does", "define", "meaning of"} {
		if strings.Contains(lowered, phrase) {
			return QueryDefinition
		}
	}
	return QueryAssertion
}

func extractEntities(text string) []string {
	var entities []string
	for _, pattern := range entityPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			entities = append(entities, match[1])
		}
	}
	entities = append(entities, properNounPattern.FindAllString(text, -1)...)

	// Dedup case-insensitively, preserving first-seen order.
	seen := make(map[string]bool)
	var unique []string
	for _, e := range entities {
		key := strings.ToLower(e)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, e)
	}
	return unique
}

func (p *Proposer) extractRelationships(text string) []Triple {
	var triples []Triple
	for _, rp := range p.Patterns {
		for _, match := range rp.Pattern.FindAllStringSubmatch(text, -1) {
			triples = append(triples, Triple{Subject: match[1], Predicate: rp.Predicate, Object: match[2]})
		}
	}
	return triples
}

func reasoningSteps(queryType QueryType, entities []string, relationships []Triple) []string {
	steps := []string{fmt.Sprintf("1. Identified query type: %s", queryType)}

	if len(entities) > 0 {
		steps = append(steps, fmt.Sprintf("2. Extracted entities: %s", strings.Join(entities, ", ")))
	}
	if len(relationships) > 0 {
		parts := make([]string, len(relationships))
		for i, t := range relationships {
			parts[i] = fmt.Sprintf("%s %s %s", t.Subject, t.Predicate, t.Object)
		}
		steps = append(steps, fmt.Sprintf("3. Identified relationships: %s", strings.Join(parts, "; ")))
	}

	switch queryType {
	case QueryAssertion:
		steps = append(steps, "4. This appears to be a factual statement to be added to the knowledge store")
	case QuerySimple:
		steps = append(steps, "4. This is a question that requires knowledge retrieval")
	case QueryComplex:
		steps = append(steps, "4. This is a complex query requiring inference or aggregation")
	case QueryInference:
		steps = append(steps, "4. This involves logical reasoning over existing knowledge")
	case QueryDefinition:
		steps = append(steps, "4. This requests the definition or meaning of a concept")
	}

	steps = append(steps, "5. Translating to a store operation")
	return steps
}

func translate(text string, queryType QueryType, entities []string, relationships []Triple) string {
	switch queryType {
	case QueryAssertion:
		if len(relationships) > 0 {
			ops := make([]string, len(relationships))
			for i, t := range relationships {
				ops[i] = fmt.Sprintf("CreateBelief('%s', '%s', '%s', confidence=0.8)", t.Subject, t.Predicate, t.Object)
			}
			return strings.Join(ops, "; ")
		}
		if len(entities) > 0 {
			return fmt.Sprintf("CreateEntity('%s', category='unknown')", entities[0])
		}
	case QuerySimple:
		if len(relationships) > 0 {
			t := relationships[0]
			return fmt.Sprintf("QueryBelief('%s', '%s', '%s')", t.Subject, t.Predicate, t.Object)
		}
		if len(entities) > 0 {
			return fmt.Sprintf("QueryEntity('%s')", entities[0])
		}
	case QueryComplex:
		if len(entities) > 0 {
			return fmt.Sprintf("InferenceQuery(entities=%d, relationships=%d)", len(entities), len(relationships))
		}
	case QueryDefinition:
		if len(entities) > 0 {
			return fmt.Sprintf("GetDefinition('%s')", entities[0])
		}
	}
	return fmt.Sprintf("GeneralQuery('%s')", text)
}

func confidenceFor(text string, entities []string, relationships []Triple) float64 {
	lowered := strings.ToLower(text)

	entityClarity := min(1.0, float64(len(entities))*0.3)
	relationClarity := min(1.0, float64(len(relationships))*0.4)

	logicalConsistency := 1.0
	for _, w := range hedgingWords {
		if strings.Contains(lowered, w) {
			logicalConsistency -= 0.3
			break
		}
	}

	specificity := 1.0
	if strings.Count(text, "?") > 1 {
		specificity -= 0.2
	}
	specificity -= float64(strings.Count(lowered, "or")) * 0.1

	confidence := entityClarity*entityClarityWeight +
		relationClarity*relationClarityWeight +
		logicalConsistency*logicalConsistencyWeight +
		specificity*specificityWeight

	return max(0.0, min(1.0, confidence))
}
