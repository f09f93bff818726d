// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"strings"
)

// SchemaOrgBase is prepended to a format value to form a schema.org type URL.
const SchemaOrgBase = "http://schema.org/"

// Format is the controlled vocabulary for a record's format. It is a closed
// union of two variants: SchemaType, a free-form schema.org CreativeWork type
// name, and FormatTag, one of a fixed set of extension tags for kinds of work
// schema.org does not cover. A nil Format means the format is unknown.
type Format interface {
	// Label returns the vocabulary value as text: the schema type name, or
	// the tag name prefixed with ':'.
	Label() string

	isFormat()
}

// SchemaType is the last path segment of a schema.org type URL, e.g. "Book",
// "Article", "VideoObject". Values are not checked against schema.org.
type SchemaType string

// Label returns the type name unchanged.
func (s SchemaType) Label() string { return string(s) }

func (SchemaType) isFormat() {}

// FormatTag is an extension to the schema.org vocabulary.
type FormatTag int

const (
	// TagSerial is a magazine or journal.
	TagSerial FormatTag = iota + 1
	// TagDissertation is a dissertation or thesis.
	TagDissertation
	// TagConferencePaper is an individual conference paper.
	TagConferencePaper
	// TagConferenceProceedings is a collected proceedings volume.
	TagConferenceProceedings
	// TagReport is a white paper or other report.
	TagReport
	// TagBookItem is a section or excerpt from a book.
	TagBookItem
)

var tagNames = map[FormatTag]string{
	TagSerial:                "serial",
	TagDissertation:          "dissertation",
	TagConferencePaper:       "conference_paper",
	TagConferenceProceedings: "conference_proceedings",
	TagReport:                "report",
	TagBookItem:              "book_item",
}

// tagTaxonomyOverrides maps extension tags to the closest schema.org type.
// Tags without an entry have no schema.org equivalent.
var tagTaxonomyOverrides = map[FormatTag]string{
	TagReport: "Article",
}

// FormatTags returns every extension tag in declaration order.
func FormatTags() []FormatTag {
	return []FormatTag{
		TagSerial,
		TagDissertation,
		TagConferencePaper,
		TagConferenceProceedings,
		TagReport,
		TagBookItem,
	}
}

// String returns the tag name, e.g. "conference_paper".
func (t FormatTag) String() string {
	if name, ok := tagNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FormatTag(%d)", int(t))
}

// Label returns the tag name prefixed with ':'.
func (t FormatTag) Label() string { return ":" + t.String() }

// Valid reports whether t is one of the known extension tags.
func (t FormatTag) Valid() bool {
	_, ok := tagNames[t]
	return ok
}

func (FormatTag) isFormat() {}

// ParseFormatTag returns the tag with the given name. A leading ':' is
// accepted.
func ParseFormatTag(name string) (FormatTag, error) {
	name = strings.TrimPrefix(strings.TrimSpace(name), ":")
	for tag, n := range tagNames {
		if n == name {
			return tag, nil
		}
	}
	return 0, fmt.Errorf("unknown format tag %q", name)
}

// ParseFormat reads the textual form of a Format. Text starting with ':'
// names an extension tag; anything else is a SchemaType. Empty text yields a
// nil Format.
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, nil
	case strings.HasPrefix(s, ":"):
		tag, err := ParseFormatTag(s)
		if err != nil {
			return nil, err
		}
		return tag, nil
	default:
		return SchemaType(s), nil
	}
}

// TaxonomyURL translates a format into a schema.org type URL. Schema types
// pass through unchecked; extension tags go through the override table.
// It returns "" for a nil format or a tag with no schema.org equivalent.
func TaxonomyURL(f Format) string {
	switch v := f.(type) {
	case SchemaType:
		return SchemaOrgBase + string(v)
	case FormatTag:
		if mapped, ok := tagTaxonomyOverrides[v]; ok {
			return SchemaOrgBase + mapped
		}
	}
	return ""
}
