// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ArticleRecord is one PubMed article projected onto a fixed row schema.
// Created by the pubmed client from the raw payload; after creation only the
// URL fix-up and the compound/target column injection touch it.
type ArticleRecord struct {
	// Title is the article title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// PMID is the PubMed identifier.
	PMID string `json:"pmid" yaml:"pmid"`

	// URL is the article page on pubmed.ncbi.nlm.nih.gov.
	URL string `json:"url" yaml:"url"`

	// Authors lists the authors in source order ("Last First" form).
	Authors []string `json:"authors" yaml:"authors"`

	DOI  string `json:"doi,omitempty" yaml:"doi,omitempty"`
	PMC  string `json:"pmc,omitempty" yaml:"pmc,omitempty"`
	ISSN string `json:"issn,omitempty" yaml:"issn,omitempty"`

	// MeshTerms lists MeSH descriptor names attached to the record.
	MeshTerms []string `json:"mesh_terms,omitempty" yaml:"mesh_terms,omitempty"`

	// Chemicals lists substance names from the record's chemical list.
	Chemicals []string `json:"chemicals,omitempty" yaml:"chemicals,omitempty"`

	Journal  string `json:"journal,omitempty" yaml:"journal,omitempty"`
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Year is the publication year, or nil when missing or unparseable.
	// An absent year is never coerced to zero.
	Year *int `json:"year,omitempty" yaml:"year,omitempty"`

	// PublicationTypes lists the PubMed publication types for the record.
	PublicationTypes []string `json:"publication_types,omitempty" yaml:"publication_types,omitempty"`

	// Compound and Target identify which original task entry produced this
	// row. Target is "N/A" for tasks without targets.
	Compound string `json:"compound,omitempty" yaml:"compound,omitempty"`
	Target   string `json:"target,omitempty" yaml:"target,omitempty"`
}

// YearValue returns the publication year and whether it is known.
func (r ArticleRecord) YearValue() (int, bool) {
	if r.Year == nil {
		return 0, false
	}
	return *r.Year, true
}
