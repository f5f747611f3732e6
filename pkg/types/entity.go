// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cheminsight pipeline:
// entities and their synonym sets, article records, task descriptors, and
// per-stage configuration.
package types

import "fmt"

// Category classifies an entity for synonym lookup. The category determines
// which vocabulary providers are queried.
type Category string

const (
	CategoryChemical Category = "chemical"
	CategoryGene     Category = "gene"
	CategoryProtein  Category = "protein"
	CategoryReceptor Category = "receptor"
	CategoryPathway  Category = "pathway"
)

// ParseCategory converts a user-supplied string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryChemical, CategoryGene, CategoryProtein, CategoryReceptor, CategoryPathway:
		return Category(s), nil
	default:
		return "", fmt.Errorf("unknown entity category %q (want chemical, gene, protein, receptor, or pathway)", s)
	}
}

// Entity is an original user-supplied name plus its category. Immutable once
// captured for a task.
type Entity struct {
	// Name is the entity name as entered, or its resolved canonical form.
	Name string `json:"name" yaml:"name"`

	// Category selects the vocabulary providers used for synonym lookup.
	Category Category `json:"category" yaml:"category"`
}

// SynonymSet holds the search terms derived for one entity. Terms[0] is
// always the canonical name, even when no provider returned anything.
type SynonymSet struct {
	// Name is the original entity name the set was derived from.
	Name string `json:"name" yaml:"name"`

	// Terms lists the canonical name followed by provider synonyms,
	// deduplicated and with blank entries removed.
	Terms []string `json:"terms" yaml:"terms"`
}

// Canonical returns the canonical name, or "" for an empty set.
func (s SynonymSet) Canonical() string {
	if len(s.Terms) == 0 {
		return ""
	}
	return s.Terms[0]
}
