// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/edelweissconnect/cheminsight/pkg/types"
)

// FormatTable writes records as a human-readable table to w.
func FormatTable(recs []types.ArticleRecord, dupsRemoved int, w io.Writer) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-12s  %s\n",
		"Rank", "Title", "Authors", "Year", "PMID", "Compound/Target")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range recs {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		year := ""
		if y, ok := r.YearValue(); ok {
			year = fmt.Sprintf("%d", y)
		}
		pair := r.Compound
		if r.Target != "" && r.Target != "N/A" {
			pair += " / " + r.Target
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-12s  %s\n",
			i+1, title, formatAuthors(r.Authors), year, r.PMID, pair)
	}

	fmt.Fprintf(w, "\n%d results", len(recs))
	if dupsRemoved > 0 {
		fmt.Fprintf(w, " (%d duplicates removed)", dupsRemoved)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(recs []types.ArticleRecord, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}

func formatAuthors(authors []string) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0], 20)
	default:
		return truncate(authors[0], 14) + " et al."
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
