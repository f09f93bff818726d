// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the normalized search-result record shared by engine
// adapters, hit files, and exporters.
//
// A Record is the engine-agnostic shape of one search hit. Any field may be
// empty; consumers must treat the zero value as "unknown". Records embed a
// lock for the memoized language lookup and must be used by pointer.
package types

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// HTML marks a string as already sanitized for HTML output. Producers pass
// an abstract as HTML instead of string to carry the marker.
type HTML string

// Record is one normalized search hit.
type Record struct {
	// UniqueID is the engine-native identifier, if the engine has one.
	UniqueID string

	// SuppressLinkGeneration tells consumers that generate links from the
	// record's fields (resolver links, citation links) to produce nothing.
	// The record itself does not enforce it.
	SuppressLinkGeneration bool

	// OtherLinks holds links beyond the primary Link, in display order.
	OtherLinks []Link

	// Title is the complete title. CompleteTitle is a synonym.
	Title string

	// Link is the primary outbound URL, usually the engine's native page.
	Link string

	// LinkIsFulltext reports whether Link leads to full text; nil when the
	// engine does not know.
	LinkIsFulltext *bool

	// Format is the controlled-vocabulary format, nil when unknown.
	Format Format

	// FormatDisplayString is a producer-supplied label shown in place of
	// the controlled format.
	FormatDisplayString string

	// LanguageCode is an ISO 639-1 or 639-3 code.
	LanguageCode string

	Year            int
	PublicationDate time.Time

	Volume    string
	Issue     string
	StartPage string
	EndPage   string

	// SourceTitle is the container title: journal for an article, book for
	// a chapter, site for a web page. ContainerTitle and JournalTitle are
	// synonyms.
	SourceTitle string

	ISSN       string
	ISBN       string
	OCLCNumber string
	DOI        string
	Publisher  string

	// ExternalCitationBlob is a pre-encoded citation context supplied by
	// the engine when it is better than one rebuilt from the fields above.
	ExternalCitationBlob string

	Abstract string
	// AbstractHTMLSafe is set when Abstract was supplied as HTML.
	AbstractHTMLSafe bool

	// Authors in source order.
	Authors []Author

	// CustomData holds engine-private data outside the shared model.
	CustomData map[string]any

	// DecoratorReference names the presentation decorator for this record.
	DecoratorReference string

	// DisplayConfiguration is copied from the producing engine's
	// configuration so presentation logic can read it from the record.
	DisplayConfiguration map[string]any

	// EngineID identifies the engine that produced the record.
	EngineID string

	languageDisplay string
	language        languageMemo
}

// NewRecord builds a record from a flat map of field names to values. Each
// name must be one of FieldNames; an unknown name fails with
// *UnknownFieldError and a value of an unusable shape with *FieldValueError.
// Keys are applied in sorted order. No record is returned on failure.
// Authors, OtherLinks and CustomData are always non-nil afterwards.
func NewRecord(fields map[string]any) (*Record, error) {
	r := &Record{}
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		value := fields[name]
		set, ok := fieldSetters[name]
		if !ok {
			return nil, &UnknownFieldError{Field: name}
		}
		if value == nil {
			continue
		}
		if err := set(r, value); err != nil {
			return nil, &FieldValueError{Field: name, Value: value, Err: err}
		}
	}
	r.fillDefaults()
	return r, nil
}

func (r *Record) fillDefaults() {
	if r.Authors == nil {
		r.Authors = []Author{}
	}
	if r.OtherLinks == nil {
		r.OtherLinks = []Link{}
	}
	if r.CustomData == nil {
		r.CustomData = map[string]any{}
	}
}

// CompleteTitle returns Title.
func (r *Record) CompleteTitle() string { return r.Title }

// SetCompleteTitle sets Title.
func (r *Record) SetCompleteTitle(s string) { r.Title = s }

// ContainerTitle returns SourceTitle.
func (r *Record) ContainerTitle() string { return r.SourceTitle }

// SetContainerTitle sets SourceTitle.
func (r *Record) SetContainerTitle(s string) { r.SourceTitle = s }

// JournalTitle returns SourceTitle. It is the older name for the container
// title and is kept for producers that still use it.
func (r *Record) JournalTitle() string { return r.SourceTitle }

// SetJournalTitle sets SourceTitle.
func (r *Record) SetJournalTitle(s string) { r.SourceTitle = s }

// SchemaOrgTypeURL returns the schema.org type URL for the record's format,
// or "" when there is none.
func (r *Record) SchemaOrgTypeURL() string {
	return TaxonomyURL(r.Format)
}

// UnknownFieldError reports a construction key that is not a record field.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown record field %q", e.Field)
}

// FieldValueError reports a construction value that cannot be stored in
// its field.
type FieldValueError struct {
	Field string
	Value any
	Err   error
}

func (e *FieldValueError) Error() string {
	return fmt.Sprintf("field %q: cannot use %T value: %v", e.Field, e.Value, e.Err)
}

func (e *FieldValueError) Unwrap() error { return e.Err }
