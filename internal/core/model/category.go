package model

// Category classifies what kind of thing a mention or store entry refers to.
type Category string

const (
	CategoryPerson       Category = "person"
	CategoryLocation     Category = "location"
	CategoryOrganization Category = "organization"
	CategoryConcept      Category = "concept"
	CategoryEvent        Category = "event"
	CategoryTemporal     Category = "temporal"
	CategoryUnknown      Category = "unknown"
)

// Categories lists every known category.
var Categories = []Category{
	CategoryPerson,
	CategoryLocation,
	CategoryOrganization,
	CategoryConcept,
	CategoryEvent,
	CategoryTemporal,
	CategoryUnknown,
}

// ParseCategory maps a store record's category string onto a known category.
// Anything unrecognized becomes CategoryUnknown; it is never coerced to the
// mention's guessed category, since the two are independent signals.
func ParseCategory(s string) Category {
	for _, c := range Categories {
		if string(c) == s {
			return c
		}
	}
	return CategoryUnknown
}

// Mention is a text span conjectured to refer to an entity, with the category
// guessed by the extraction rule that captured it.
type Mention struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}
