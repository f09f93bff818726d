// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/hitnorm/pkg/types"
)

// SemanticScholarEngine decodes Semantic Scholar paper search responses.
type SemanticScholarEngine struct{}

// Name returns the adapter identifier.
func (e *SemanticScholarEngine) Name() string { return "semantic_scholar" }

// semanticFormats maps publicationTypes values onto the format vocabulary.
// The first type with a mapping wins.
var semanticFormats = map[string]types.Format{
	"JournalArticle":     types.SchemaType("Article"),
	"Review":             types.SchemaType("Article"),
	"Editorial":          types.SchemaType("Article"),
	"LettersAndComments": types.SchemaType("Article"),
	"Book":               types.SchemaType("Book"),
	"Dataset":            types.SchemaType("Dataset"),
	"BookSection":        types.TagBookItem,
	"Conference":         types.TagConferencePaper,
	"Thesis":             types.TagDissertation,
}

// Decode maps each paper in the response onto a record.
func (e *SemanticScholarEngine) Decode(ctx context.Context, r io.Reader, cfg types.EngineConfig) ([]*types.Record, error) {
	var sr semanticResponse
	if err := json.NewDecoder(r).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing Semantic Scholar response: %w", err)
	}

	var records []*types.Record
	for _, paper := range sr.Data {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fields := map[string]any{
			"title":    collapseSpace(paper.Title),
			"abstract": paper.Abstract,
			"link":     paper.URL,
			"doi":      paper.ExternalIDs.DOI,
		}

		authors := make([]types.Author, 0, len(paper.Authors))
		for _, a := range paper.Authors {
			authors = append(authors, types.Author{Display: a.Name})
		}
		fields["authors"] = authors

		if paper.PublicationDate != "" {
			if t, parseErr := time.Parse("2006-01-02", paper.PublicationDate); parseErr == nil {
				fields["publication_date"] = t
			}
		}
		if paper.Year > 0 {
			fields["year"] = paper.Year
		}

		// Prefer arXiv ID, then DOI, then the Semantic Scholar paper id, so
		// hits line up with the same paper from other engines.
		switch {
		case paper.ExternalIDs.ArXiv != "":
			fields["unique_id"] = paper.ExternalIDs.ArXiv
		case paper.ExternalIDs.DOI != "":
			fields["unique_id"] = paper.ExternalIDs.DOI
		default:
			fields["unique_id"] = paper.PaperID
		}

		for _, pt := range paper.PublicationTypes {
			if f, ok := semanticFormats[pt]; ok {
				fields["format"] = f
				break
			}
		}

		venue := paper.Venue
		if paper.Journal != nil {
			if paper.Journal.Name != "" {
				venue = paper.Journal.Name
			}
			fields["volume"] = paper.Journal.Volume
			start, end := splitPages(paper.Journal.Pages)
			fields["start_page"] = start
			fields["end_page"] = end
		}
		fields["source_title"] = venue

		var otherLinks []types.Link
		if paper.OpenAccessPDF != nil && paper.OpenAccessPDF.URL != "" {
			otherLinks = append(otherLinks, types.Link{URL: paper.OpenAccessPDF.URL, Label: "Open access PDF", Type: "application/pdf"})
		}
		fields["other_links"] = otherLinks
		if paper.URL != "" {
			// The Semantic Scholar page is a landing page, never full text.
			fields["link_is_fulltext"] = false
		}

		fields["custom_data"] = map[string]any{
			"paper_id":  paper.PaperID,
			"corpus_id": paper.ExternalIDs.CorpusID,
		}

		rec, err := build(cfg, e.Name(), fields)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return limit(records, cfg), nil
}

// Semantic Scholar API JSON structures.
type semanticResponse struct {
	Total  int             `json:"total"`
	Offset int             `json:"offset"`
	Data   []semanticPaper `json:"data"`
}

type semanticPaper struct {
	PaperID          string              `json:"paperId"`
	URL              string              `json:"url"`
	Title            string              `json:"title"`
	Abstract         string              `json:"abstract"`
	Venue            string              `json:"venue"`
	Year             int                 `json:"year"`
	PublicationDate  string              `json:"publicationDate"`
	PublicationTypes []string            `json:"publicationTypes"`
	Authors          []semanticAuthor    `json:"authors"`
	ExternalIDs      semanticExternalIDs `json:"externalIds"`
	Journal          *semanticJournal    `json:"journal"`
	OpenAccessPDF    *semanticPDF        `json:"openAccessPdf"`
}

type semanticAuthor struct {
	AuthorID string `json:"authorId"`
	Name     string `json:"name"`
}

type semanticExternalIDs struct {
	DOI      string `json:"DOI"`
	ArXiv    string `json:"ArXiv"`
	CorpusID int    `json:"CorpusId"`
}

type semanticJournal struct {
	Name   string `json:"name"`
	Volume string `json:"volume"`
	Pages  string `json:"pages"`
}

type semanticPDF struct {
	URL string `json:"url"`
}
