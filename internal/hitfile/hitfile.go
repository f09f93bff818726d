// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hitfile reads and writes hit files: YAML documents holding search
// hits as flat maps of record field names to values. Reading a hit file goes
// through the record construction contract, so a misspelled field fails the
// read instead of being dropped.
package hitfile

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hitnorm/pkg/types"
)

// File is the on-disk representation of a hit file.
type File struct {
	// EngineID is stamped on records that do not name their own engine.
	EngineID string           `yaml:"engine_id,omitempty"`
	Records  []map[string]any `yaml:"records"`
}

const dateFmt = "2006-01-02"

// Read decodes a hit file and constructs one record per entry. Profile
// settings from cfg are stamped on every record; keys in the entry win. A
// `format` given as text is parsed with types.ParseFormat. The first entry
// that fails construction fails the read.
func Read(r io.Reader, cfg types.EngineConfig) ([]*types.Record, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing hit file: %w", err)
	}

	fallback := f.EngineID
	if fallback == "" {
		fallback = "hitfile"
	}

	records := make([]*types.Record, 0, len(f.Records))
	for i, entry := range f.Records {
		if s, ok := entry["format"].(string); ok {
			format, err := types.ParseFormat(s)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			entry["format"] = format
		}
		rec, err := types.NewRecord(cfg.Stamp(entry, fallback))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Write encodes records as a hit file. Empty fields are omitted; derived
// values (schema.org URL, language name) are not written since they are
// recomputed on read.
func Write(w io.Writer, records []*types.Record) error {
	f := File{Records: make([]map[string]any, len(records))}
	for i, r := range records {
		f.Records[i] = Fields(r)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("encoding hit file: %w", err)
	}
	return enc.Close()
}

// Fields flattens a record into construction fields, the inverse of
// types.NewRecord for everything a hit file can hold.
func Fields(r *types.Record) map[string]any {
	m := map[string]any{}
	put := func(key, value string) {
		if value != "" {
			m[key] = value
		}
	}

	put("unique_id", r.UniqueID)
	put("title", r.Title)
	put("link", r.Link)
	put("format_display_string", r.FormatDisplayString)
	put("language_code", r.LanguageCode)
	put("volume", r.Volume)
	put("issue", r.Issue)
	put("start_page", r.StartPage)
	put("end_page", r.EndPage)
	put("source_title", r.SourceTitle)
	put("issn", r.ISSN)
	put("isbn", r.ISBN)
	put("oclc_number", r.OCLCNumber)
	put("doi", r.DOI)
	put("publisher", r.Publisher)
	put("external_citation_blob", r.ExternalCitationBlob)
	put("language_display_string", r.LanguageDisplayOverride())
	put("abstract", r.Abstract)
	put("decorator_reference", r.DecoratorReference)
	put("engine_id", r.EngineID)

	if r.SuppressLinkGeneration {
		m["suppress_link_generation"] = true
	}
	if r.LinkIsFulltext != nil {
		m["link_is_fulltext"] = *r.LinkIsFulltext
	}
	if r.Format != nil {
		m["format"] = r.Format.Label()
	}
	if r.Year != 0 {
		m["year"] = r.Year
	}
	if !r.PublicationDate.IsZero() {
		m["publication_date"] = r.PublicationDate.Format(dateFmt)
	}
	// An HTML-safe abstract cannot be marked in YAML; it round-trips as text.
	if len(r.Authors) > 0 {
		m["authors"] = r.Authors
	}
	if len(r.OtherLinks) > 0 {
		m["other_links"] = r.OtherLinks
	}
	if len(r.CustomData) > 0 {
		m["custom_data"] = r.CustomData
	}
	if len(r.DisplayConfiguration) > 0 {
		m["display_configuration"] = r.DisplayConfiguration
	}
	return m
}
