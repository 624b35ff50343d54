// Package mention scans raw text for unresolved candidate mentions using an
// ordered table of lexical rules.
package mention

import (
	"strings"

	"github.com/agenthands/tether/internal/core/common"
	"github.com/agenthands/tether/internal/core/model"
)

type Extractor struct {
	Rules []Rule

	// InferWindow is how many words on each side of a span feed category
	// inference for fallback matches.
	InferWindow int
}

func NewExtractor(rules []Rule, inferWindow int) *Extractor {
	if rules == nil {
		rules = DefaultRules
	}
	if inferWindow <= 0 {
		inferWindow = 10
	}
	return &Extractor{Rules: rules, InferWindow: inferWindow}
}

// Extract returns candidate mentions in text order, deduplicated
// case-insensitively. A span captured by an earlier rule is never re-captured
// by a later one.
func (e *Extractor) Extract(text string) []model.Mention {
	var mentions []model.Mention
	seen := make(map[string]bool)

	for _, rule := range e.Rules {
		for _, match := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			span := strings.TrimSpace(match[1])
			if len(span) <= 1 {
				continue
			}
			key := strings.ToLower(span)
			if seen[key] {
				continue
			}
			seen[key] = true
			mentions = append(mentions, model.Mention{Text: span, Category: rule.Category})
		}
	}

	// Remaining capitalized sequences become mentions with an inferred
	// category.
	for _, span := range properNounPattern.FindAllString(text, -1) {
		key := strings.ToLower(span)
		if len(span) <= 1 || seen[key] {
			continue
		}
		seen[key] = true
		mentions = append(mentions, model.Mention{
			Text:     span,
			Category: e.InferCategory(span, text),
		})
	}

	return mentions
}

// InferCategory guesses a category for a span from its surrounding words: a
// type-indicator keyword anywhere in the text wins first, then reporting
// verbs/honorifics within the window suggest a person, prepositions and place
// nouns a location. Everything else is unknown.
func (e *Extractor) InferCategory(span, text string) model.Category {
	lowered := strings.ToLower(text)
	for _, cat := range indicatorOrder {
		for _, indicator := range TypeIndicators[cat] {
			if common.ContainsWord(lowered, indicator) {
				return cat
			}
		}
	}

	window := common.ContextWindow(span, text, e.InferWindow)
	for _, w := range personContextWords {
		if common.ContainsWord(window, w) {
			return model.CategoryPerson
		}
	}
	for _, w := range locationContextWords {
		if common.ContainsWord(window, w) {
			return model.CategoryLocation
		}
	}

	return model.CategoryUnknown
}
