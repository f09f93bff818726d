// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/hitnorm/pkg/types"
)

// OpenAlexEngine decodes OpenAlex Works API responses.
type OpenAlexEngine struct{}

// Name returns the adapter identifier.
func (e *OpenAlexEngine) Name() string { return "openalex" }

// openAlexFormats maps OpenAlex work types onto the format vocabulary.
var openAlexFormats = map[string]types.Format{
	"article":             types.SchemaType("Article"),
	"preprint":            types.SchemaType("Article"),
	"review":              types.SchemaType("Article"),
	"letter":              types.SchemaType("Article"),
	"editorial":           types.SchemaType("Article"),
	"book":                types.SchemaType("Book"),
	"dataset":             types.SchemaType("Dataset"),
	"book-chapter":        types.TagBookItem,
	"dissertation":        types.TagDissertation,
	"report":              types.TagReport,
	"proceedings-article": types.TagConferencePaper,
	"proceedings":         types.TagConferenceProceedings,
	"journal":             types.TagSerial,
}

// Decode maps each work in the response onto a record.
func (e *OpenAlexEngine) Decode(ctx context.Context, r io.Reader, cfg types.EngineConfig) ([]*types.Record, error) {
	var oar openAlexResponse
	if err := json.NewDecoder(r).Decode(&oar); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}

	var records []*types.Record
	for _, work := range oar.Results {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		title := work.Title
		if title == "" {
			title = work.DisplayName
		}

		fields := map[string]any{
			"unique_id":     work.ID,
			"title":         collapseSpace(title),
			"abstract":      reconstructAbstract(work.AbstractInvertedIndex),
			"language_code": work.Language,
			"volume":        work.Biblio.Volume,
			"issue":         work.Biblio.Issue,
			"start_page":    work.Biblio.FirstPage,
			"end_page":      work.Biblio.LastPage,
		}

		authors := make([]types.Author, 0, len(work.Authorships))
		for _, authorship := range work.Authorships {
			if authorship.Author.DisplayName != "" {
				authors = append(authors, types.Author{Display: authorship.Author.DisplayName})
			}
		}
		fields["authors"] = authors

		if work.PublicationDate != "" {
			if t, parseErr := time.Parse("2006-01-02", work.PublicationDate); parseErr == nil {
				fields["publication_date"] = t
			}
		}
		if work.PublicationYear > 0 {
			fields["year"] = work.PublicationYear
		}

		// Strip the https://doi.org/ prefix to get the bare DOI.
		if work.DOI != "" {
			fields["doi"] = strings.TrimPrefix(work.DOI, "https://doi.org/")
		}

		if f, ok := openAlexFormats[work.Type]; ok {
			fields["format"] = f
		} else if work.Type != "" {
			fields["format_display_string"] = work.Type
		}

		if src := work.PrimaryLocation.Source; src != nil {
			fields["source_title"] = src.DisplayName
			fields["issn"] = src.ISSNL
			fields["publisher"] = src.HostOrganizationName
		}

		link := work.PrimaryLocation.LandingPageURL
		if link == "" {
			link = work.ID
		}
		fields["link"] = link

		var otherLinks []types.Link
		if work.PrimaryLocation.PDFURL != "" && work.PrimaryLocation.PDFURL != link {
			otherLinks = append(otherLinks, types.Link{URL: work.PrimaryLocation.PDFURL, Label: "PDF", Type: "application/pdf"})
		}
		oa := work.OpenAccess
		switch {
		case !oa.IsOA:
			fields["link_is_fulltext"] = false
		case oa.OAURL == link:
			fields["link_is_fulltext"] = true
		case oa.OAURL != "" && oa.OAURL != work.PrimaryLocation.PDFURL:
			otherLinks = append(otherLinks, types.Link{URL: oa.OAURL, Label: "Open access"})
		}
		fields["other_links"] = otherLinks

		custom := map[string]any{}
		if oa.OAStatus != "" {
			custom["oa_status"] = oa.OAStatus
		}
		if work.CitedByCount > 0 {
			custom["cited_by_count"] = work.CitedByCount
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

// reconstructAbstract converts OpenAlex's abstract_inverted_index back to
// plain text. The inverted index maps each word to a list of positions
// where that word appears.
func reconstructAbstract(invertedIndex map[string][]int) string {
	if len(invertedIndex) == 0 {
		return ""
	}

	// Build position→word map.
	type posWord struct {
		pos  int
		word string
	}
	var pairs []posWord
	for word, positions := range invertedIndex {
		for _, pos := range positions {
			pairs = append(pairs, posWord{pos: pos, word: word})
		}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].pos < pairs[j].pos
	})

	words := make([]string, len(pairs))
	for i, p := range pairs {
		words[i] = p.word
	}
	return strings.Join(words, " ")
}

// OpenAlex API JSON structures.
type openAlexResponse struct {
	Meta    openAlexMeta   `json:"meta"`
	Results []openAlexWork `json:"results"`
}

type openAlexMeta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

type openAlexWork struct {
	ID                    string               `json:"id"`
	Title                 string               `json:"title"`
	DisplayName           string               `json:"display_name"`
	DOI                   string               `json:"doi"`
	Type                  string               `json:"type"`
	Language              string               `json:"language"`
	PublicationDate       string               `json:"publication_date"`
	PublicationYear       int                  `json:"publication_year"`
	CitedByCount          int                  `json:"cited_by_count"`
	Authorships           []openAlexAuthorship `json:"authorships"`
	AbstractInvertedIndex map[string][]int     `json:"abstract_inverted_index"`
	OpenAccess            openAlexOpenAccess   `json:"open_access"`
	PrimaryLocation       openAlexLocation     `json:"primary_location"`
	Biblio                openAlexBiblio       `json:"biblio"`
}

type openAlexAuthorship struct {
	Author openAlexAuthor `json:"author"`
}

type openAlexAuthor struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

type openAlexOpenAccess struct {
	IsOA     bool   `json:"is_oa"`
	OAStatus string `json:"oa_status"`
	OAURL    string `json:"oa_url"`
}

type openAlexLocation struct {
	LandingPageURL string          `json:"landing_page_url"`
	PDFURL         string          `json:"pdf_url"`
	Source         *openAlexSource `json:"source"`
}

type openAlexSource struct {
	DisplayName          string `json:"display_name"`
	ISSNL                string `json:"issn_l"`
	HostOrganizationName string `json:"host_organization_name"`
}

type openAlexBiblio struct {
	Volume    string `json:"volume"`
	Issue     string `json:"issue"`
	FirstPage string `json:"first_page"`
	LastPage  string `json:"last_page"`
}
