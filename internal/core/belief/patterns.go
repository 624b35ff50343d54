package belief

import "regexp"

// RelationPattern maps a lexical pattern onto a predicate name.
type RelationPattern struct {
	Predicate string
	Pattern   *regexp.Regexp
}

// DefaultRelationPatterns is the ordered relation table for belief proposal.
// All matches from all patterns are collected, not just the first. This table
// deliberately stays separate from the proposal package's shorter table (that
// one lacks bornIn/locatedIn); the divergence is preserved as-is.
var DefaultRelationPatterns = []RelationPattern{
	{"is", regexp.MustCompile(`(?i)(\w+)\s+is\s+(?:a|an)?\s*(\w+)`)},
	{"has", regexp.MustCompile(`(?i)(\w+)\s+has\s+(?:a|an)?\s*(\w+)`)},
	{"livesIn", regexp.MustCompile(`(?i)(\w+)\s+lives\s+in\s+(\w+)`)},
	{"worksAt", regexp.MustCompile(`(?i)(\w+)\s+works\s+at\s+(\w+)`)},
	{"knows", regexp.MustCompile(`(?i)(\w+)\s+knows\s+(\w+)`)},
	{"likes", regexp.MustCompile(`(?i)(\w+)\s+likes\s+(\w+)`)},
	{"bornIn", regexp.MustCompile(`(?i)(\w+)\s+born\s+in\s+(\w+)`)},
	{"locatedIn", regexp.MustCompile(`(?i)(\w+)\s+located\s+in\s+(\w+)`)},
}
