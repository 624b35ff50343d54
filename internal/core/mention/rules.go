package mention

import (
	"regexp"

	"github.com/agenthands/tether/internal/core/model"
)

// Rule is one declarative lexical extraction rule. Rules are evaluated in
// slice order and the first rule to capture a given (lowercased) span wins;
// that first-match-wins ordering is policy, not an accident of control flow.
type Rule struct {
	Name     string
	Category model.Category
	Pattern  *regexp.Regexp
}

// DefaultRules is the standard ordered rule table. Capitalization patterns
// are intentionally case-sensitive; concept phrasing is not.
var DefaultRules = []Rule{
	{
		Name:     "person_before_verb",
		Category: model.CategoryPerson,
		Pattern:  regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:is|was|has|have|will|can|said|thinks)\b`),
	},
	{
		Name:     "person_honorific",
		Category: model.CategoryPerson,
		Pattern:  regexp.MustCompile(`\b(?:Mr\.|Mrs\.|Dr\.|Prof\.)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	},
	{
		Name:     "person_cognition_verb",
		Category: model.CategoryPerson,
		Pattern:  regexp.MustCompile(`\b([A-Z][a-z]+)\s+(?:said|thinks|believes|knows|likes|dislikes)\b`),
	},
	{
		Name:     "location_preposition",
		Category: model.CategoryLocation,
		Pattern:  regexp.MustCompile(`\b(?:in|at|from|to|near|around)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
	},
	{
		Name:     "location_place_noun",
		Category: model.CategoryLocation,
		Pattern:  regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:city|town|country|state|province)\b`),
	},
	{
		Name:     "location_geo_feature",
		Category: model.CategoryLocation,
		Pattern:  regexp.MustCompile(`\bthe\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:River|Mountain|Lake|Sea|Ocean)\b`),
	},
	{
		Name:     "organization_suffix",
		Category: model.CategoryOrganization,
		Pattern:  regexp.MustCompile(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:Corporation|Corp|Company|Inc|University|College)\b`),
	},
	{
		Name:     "organization_institution",
		Category: model.CategoryOrganization,
		Pattern:  regexp.MustCompile(`\bthe\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:Department|Ministry|Agency)\b`),
	},
	{
		Name:     "concept_of_phrase",
		Category: model.CategoryConcept,
		Pattern:  regexp.MustCompile(`(?i)\b(?:the concept of|the idea of|meaning of)\s+([a-z]+(?:\s+[a-z]+)*)\b`),
	},
	{
		Name:     "concept_suffix",
		Category: model.CategoryConcept,
		Pattern:  regexp.MustCompile(`(?i)\b([a-z]+(?:\s+[a-z]+)*)\s+(?:concept|principle|theory|philosophy)\b`),
	},
}

// properNounPattern catches remaining capitalized sequences not claimed by
// any rule; their category is inferred from surrounding words.
var properNounPattern = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

// TypeIndicators are context keywords suggesting a category. They drive both
// fallback category inference and the disambiguator's context-similarity
// bonus.
var TypeIndicators = map[model.Category][]string{
	model.CategoryPerson:       {"person", "individual", "human", "people", "someone", "he", "she"},
	model.CategoryLocation:     {"place", "location", "where", "city", "country", "there"},
	model.CategoryOrganization: {"company", "organization", "institution", "group"},
	model.CategoryConcept:      {"concept", "idea", "principle", "theory", "notion"},
}

// indicatorOrder fixes the category iteration order for inference, so results
// do not depend on map traversal.
var indicatorOrder = []model.Category{
	model.CategoryPerson,
	model.CategoryLocation,
	model.CategoryOrganization,
	model.CategoryConcept,
}

// personContextWords and locationContextWords back the windowed inference
// step: reporting/cognition verbs and honorifics point at a person,
// prepositions and place nouns at a location.
var (
	personContextWords   = []string{"said", "thinks", "believes", "mr", "mrs", "dr"}
	locationContextWords = []string{"in", "at", "from", "to", "city", "country"}
)
