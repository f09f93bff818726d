// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/hitnorm/pkg/types"
)

// ArxivEngine decodes arXiv API Atom feeds.
type ArxivEngine struct{}

// Name returns the adapter identifier.
func (e *ArxivEngine) Name() string { return "arxiv" }

// Decode maps each Atom entry onto a record. Entries without a recognizable
// arXiv id are skipped.
func (e *ArxivEngine) Decode(ctx context.Context, r io.Reader, cfg types.EngineConfig) ([]*types.Record, error) {
	var feed arxivFeed
	if err := xml.NewDecoder(r).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var records []*types.Record
	for _, entry := range feed.Entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		arxivID := extractArxivID(entry.ID)
		if arxivID == "" {
			continue
		}

		fields := map[string]any{
			"unique_id":        arxivID,
			"title":            collapseSpace(entry.Title),
			"abstract":         strings.TrimSpace(entry.Summary),
			"format":           types.SchemaType("Article"),
			"link_is_fulltext": false,
		}

		authors := make([]types.Author, 0, len(entry.Authors))
		for _, a := range entry.Authors {
			authors = append(authors, types.Author{Display: strings.TrimSpace(a.Name)})
		}
		fields["authors"] = authors

		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			fields["publication_date"] = t
			fields["year"] = t.Year()
		}

		var otherLinks []types.Link
		for _, l := range entry.Links {
			switch {
			case l.Rel == "alternate":
				fields["link"] = l.Href
			case l.Title == "pdf":
				otherLinks = append(otherLinks, types.Link{URL: l.Href, Label: "PDF", Type: l.Type})
			case l.Title == "doi":
				otherLinks = append(otherLinks, types.Link{URL: l.Href, Label: "DOI"})
			}
		}
		fields["other_links"] = otherLinks

		if entry.DOI != "" {
			fields["doi"] = strings.TrimSpace(entry.DOI)
		}

		custom := map[string]any{}
		if entry.PrimaryCategory.Term != "" {
			custom["primary_category"] = entry.PrimaryCategory.Term
		}
		if entry.JournalRef != "" {
			custom["journal_ref"] = collapseSpace(entry.JournalRef)
		}
		if entry.Comment != "" {
			custom["comment"] = collapseSpace(entry.Comment)
		}
		fields["custom_data"] = custom

		rec, err := build(cfg, e.Name(), fields)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return limit(records, cfg), nil
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID              string        `xml:"id"`
	Title           string        `xml:"title"`
	Summary         string        `xml:"summary"`
	Published       string        `xml:"published"`
	Authors         []arxivAuthor `xml:"author"`
	Links           []arxivLink   `xml:"link"`
	DOI             string        `xml:"http://arxiv.org/schemas/atom doi"`
	JournalRef      string        `xml:"http://arxiv.org/schemas/atom journal_ref"`
	Comment         string        `xml:"http://arxiv.org/schemas/atom comment"`
	PrimaryCategory arxivCategory `xml:"http://arxiv.org/schemas/atom primary_category"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Type  string `xml:"type,attr"`
	Title string `xml:"title,attr"`
}

type arxivCategory struct {
	Term string `xml:"term,attr"`
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
