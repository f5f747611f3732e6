// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records normalizes, deduplicates, and ranks article records.
package records

import (
	"regexp"
	"sort"

	"github.com/edelweissconnect/cheminsight/pkg/types"
)

// leadingYear matches a 4-digit run at the start of a date string, after
// optional whitespace. MEDLINE dates like "2019 Jan-Feb" carry the year
// first.
var leadingYear = regexp.MustCompile(`^\s*(\d{4})`)

// ParseYear extracts a publication year from a raw date string. The second
// return value is false when the string carries no leading 4-digit year.
func ParseYear(s string) (int, bool) {
	m := leadingYear.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	year := 0
	for _, d := range m[1] {
		year = year*10 + int(d-'0')
	}
	return year, true
}

type dedupeKey struct {
	title string
	pmid  string
}

// Deduplicate removes records sharing both title and PMID, keeping the
// first occurrence and preserving order. It reports how many were removed.
func Deduplicate(recs []types.ArticleRecord) ([]types.ArticleRecord, int) {
	seen := make(map[dedupeKey]bool, len(recs))
	kept := recs[:0:0]
	removed := 0
	for _, r := range recs {
		key := dedupeKey{title: r.Title, pmid: r.PMID}
		if seen[key] {
			removed++
			continue
		}
		seen[key] = true
		kept = append(kept, r)
	}
	return kept, removed
}

// Select deduplicates, orders newest-first with year-absent records last,
// and keeps the top n. The sort is stable, so records with equal years keep
// their fetch order. n <= 0 selects nothing. It reports how many duplicates
// were removed.
func Select(recs []types.ArticleRecord, n int) ([]types.ArticleRecord, int) {
	kept, removed := Deduplicate(recs)
	sort.SliceStable(kept, func(i, j int) bool {
		yi, oki := kept[i].YearValue()
		yj, okj := kept[j].YearValue()
		if oki != okj {
			return oki
		}
		return yi > yj
	})
	if n <= 0 {
		return nil, removed
	}
	if n < len(kept) {
		kept = kept[:n]
	}
	return kept, removed
}
