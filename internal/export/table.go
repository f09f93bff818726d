// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export renders normalized records for people and for downstream
// tools: an aligned text table, JSON with derived fields, CSL-YAML for
// citation processors, and hit files.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/hitnorm/pkg/types"
)

// FormatTable writes records as a human-readable table to w.
func FormatTable(records []*types.Record, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-60s  %-20s  %-4s  %-24s  %s\n",
		"Rank", "Title", "Authors", "Year", "Format", "Engine")
	fmt.Fprintln(w, strings.Repeat("-", 130))

	for i, r := range records {
		year := ""
		if y := recordYear(r); y != 0 {
			year = strconv.Itoa(y)
		}
		fmt.Fprintf(w, "%-4d  %-60s  %-20s  %-4s  %-24s  %s\n",
			i+1, truncate(r.Title, 60), formatAuthors(r.Authors), year,
			truncate(FormatLabel(r), 24), r.EngineID)
	}

	fmt.Fprintf(w, "\n%d records\n", len(records))
}

// FormatLabel returns the label to show for a record's format: the
// producer's display string when set, otherwise the controlled format's
// label.
func FormatLabel(r *types.Record) string {
	if r.FormatDisplayString != "" {
		return r.FormatDisplayString
	}
	if r.Format != nil {
		return r.Format.Label()
	}
	return ""
}

func recordYear(r *types.Record) int {
	if r.Year != 0 {
		return r.Year
	}
	if !r.PublicationDate.IsZero() {
		return r.PublicationDate.Year()
	}
	return 0
}

func formatAuthors(authors []types.Author) string {
	switch len(authors) {
	case 0:
		return ""
	case 1:
		return truncate(authors[0].Name(), 20)
	default:
		return truncate(authors[0].Name(), 12) + " et al."
	}
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
