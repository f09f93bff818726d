// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"io"

	"github.com/pdiddy/hitnorm/pkg/types"
)

// RecordJSON is the JSON shape of a record, including the values derived
// from its format and language code.
type RecordJSON struct {
	UniqueID               string         `json:"unique_id,omitempty"`
	Title                  string         `json:"title"`
	Link                   string         `json:"link,omitempty"`
	LinkIsFulltext         *bool          `json:"link_is_fulltext,omitempty"`
	SuppressLinkGeneration bool           `json:"suppress_link_generation,omitempty"`
	OtherLinks             []types.Link   `json:"other_links"`
	Format                 string         `json:"format,omitempty"`
	FormatDisplayString    string         `json:"format_display_string,omitempty"`
	SchemaOrgTypeURL       string         `json:"schema_org_type_url,omitempty"`
	LanguageCode           string         `json:"language_code,omitempty"`
	LanguageDisplayString  string         `json:"language_display_string,omitempty"`
	LanguageISO6391        string         `json:"language_iso_639_1,omitempty"`
	LanguageISO6393        string         `json:"language_iso_639_3,omitempty"`
	Year                   int            `json:"year,omitempty"`
	PublicationDate        string         `json:"publication_date,omitempty"`
	Volume                 string         `json:"volume,omitempty"`
	Issue                  string         `json:"issue,omitempty"`
	StartPage              string         `json:"start_page,omitempty"`
	EndPage                string         `json:"end_page,omitempty"`
	SourceTitle            string         `json:"source_title,omitempty"`
	ISSN                   string         `json:"issn,omitempty"`
	ISBN                   string         `json:"isbn,omitempty"`
	OCLCNumber             string         `json:"oclc_number,omitempty"`
	DOI                    string         `json:"doi,omitempty"`
	Publisher              string         `json:"publisher,omitempty"`
	ExternalCitationBlob   string         `json:"external_citation_blob,omitempty"`
	Abstract               string         `json:"abstract,omitempty"`
	AbstractHTMLSafe       bool           `json:"abstract_html_safe,omitempty"`
	Authors                []types.Author `json:"authors"`
	CustomData             map[string]any `json:"custom_data"`
	DecoratorReference     string         `json:"decorator_reference,omitempty"`
	DisplayConfiguration   map[string]any `json:"display_configuration,omitempty"`
	EngineID               string         `json:"engine_id,omitempty"`
}

// ToJSON converts r, resolving its derived values.
func ToJSON(r *types.Record) RecordJSON {
	out := RecordJSON{
		UniqueID:               r.UniqueID,
		Title:                  r.Title,
		Link:                   r.Link,
		LinkIsFulltext:         r.LinkIsFulltext,
		SuppressLinkGeneration: r.SuppressLinkGeneration,
		OtherLinks:             r.OtherLinks,
		FormatDisplayString:    r.FormatDisplayString,
		SchemaOrgTypeURL:       r.SchemaOrgTypeURL(),
		LanguageCode:           r.LanguageCode,
		LanguageDisplayString:  r.LanguageDisplayString(),
		LanguageISO6391:        r.LanguageISO6391(),
		LanguageISO6393:        r.LanguageISO6393(),
		Year:                   r.Year,
		Volume:                 r.Volume,
		Issue:                  r.Issue,
		StartPage:              r.StartPage,
		EndPage:                r.EndPage,
		SourceTitle:            r.SourceTitle,
		ISSN:                   r.ISSN,
		ISBN:                   r.ISBN,
		OCLCNumber:             r.OCLCNumber,
		DOI:                    r.DOI,
		Publisher:              r.Publisher,
		ExternalCitationBlob:   r.ExternalCitationBlob,
		Abstract:               r.Abstract,
		AbstractHTMLSafe:       r.AbstractHTMLSafe,
		Authors:                r.Authors,
		CustomData:             r.CustomData,
		DecoratorReference:     r.DecoratorReference,
		DisplayConfiguration:   r.DisplayConfiguration,
		EngineID:               r.EngineID,
	}
	if r.Format != nil {
		out.Format = r.Format.Label()
	}
	if !r.PublicationDate.IsZero() {
		out.PublicationDate = r.PublicationDate.Format("2006-01-02")
	}
	return out
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(records []*types.Record, w io.Writer) error {
	out := make([]RecordJSON, len(records))
	for i, r := range records {
		out[i] = ToJSON(r)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
