// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecordDefaults(t *testing.T) {
	r, err := NewRecord(nil)
	require.NoError(t, err)

	assert.NotNil(t, r.Authors)
	assert.Empty(t, r.Authors)
	assert.NotNil(t, r.OtherLinks)
	assert.Empty(t, r.OtherLinks)
	assert.NotNil(t, r.CustomData)
	assert.Empty(t, r.CustomData)

	assert.Equal(t, "", r.Title)
	assert.Nil(t, r.Format)
	assert.Nil(t, r.LinkIsFulltext)
	assert.True(t, r.PublicationDate.IsZero())
}

func TestNewRecordDefaultsAreNotShared(t *testing.T) {
	a, err := NewRecord(map[string]any{"title": "A"})
	require.NoError(t, err)
	b, err := NewRecord(map[string]any{"title": "B"})
	require.NoError(t, err)

	a.Authors = append(a.Authors, Author{Last: "Smith"})
	a.OtherLinks = append(a.OtherLinks, Link{URL: "http://example.org"})
	a.CustomData["k"] = "v"

	assert.Empty(t, b.Authors)
	assert.Empty(t, b.OtherLinks)
	assert.Empty(t, b.CustomData)
}

func TestNewRecordSetsFields(t *testing.T) {
	fulltext := true
	r, err := NewRecord(map[string]any{
		"unique_id":                "W123",
		"suppress_link_generation": true,
		"title":                    "Attention Is All You Need",
		"link":                     "https://arxiv.org/abs/1706.03762",
		"link_is_fulltext":         &fulltext,
		"format":                   TagConferencePaper,
		"format_display_string":    "Conference paper",
		"language_code":            "en",
		"year":                     "2017",
		"publication_date":         "2017-06-12",
		"volume":                   30,
		"issue":                    "1",
		"start_page":               "5998",
		"end_page":                 "6008",
		"source_title":             "NeurIPS",
		"issn":                     "1049-5258",
		"isbn":                     "9781510860964",
		"oclc_number":              "1036037745",
		"doi":                      "10.5555/3295222.3295349",
		"publisher":                "Curran Associates",
		"external_citation_blob":   "ctx_ver=Z39.88-2004",
		"abstract":                 HTML("<p>The dominant models</p>"),
		"authors":                  []string{"Ashish Vaswani", "Noam Shazeer"},
		"other_links":              []Link{{URL: "https://arxiv.org/pdf/1706.03762", Type: "application/pdf"}},
		"custom_data":              map[string]any{"score": 0.9},
		"decorator_reference":      "ArxivDecorator",
		"display_configuration":    map[string]any{"heading": "Preprints"},
		"engine_id":                "arxiv",
	})
	require.NoError(t, err)

	assert.Equal(t, "W123", r.UniqueID)
	assert.True(t, r.SuppressLinkGeneration)
	require.NotNil(t, r.LinkIsFulltext)
	assert.True(t, *r.LinkIsFulltext)
	assert.Equal(t, TagConferencePaper, r.Format)
	assert.Equal(t, 2017, r.Year)
	assert.Equal(t, time.Date(2017, 6, 12, 0, 0, 0, 0, time.UTC), r.PublicationDate)
	assert.Equal(t, "30", r.Volume)
	assert.Equal(t, "NeurIPS", r.SourceTitle)
	assert.Equal(t, "<p>The dominant models</p>", r.Abstract)
	assert.True(t, r.AbstractHTMLSafe)
	assert.Equal(t, []Author{{Display: "Ashish Vaswani"}, {Display: "Noam Shazeer"}}, r.Authors)
	assert.Len(t, r.OtherLinks, 1)
	assert.Equal(t, 0.9, r.CustomData["score"])
	assert.Equal(t, "ArxivDecorator", r.DecoratorReference)
	assert.Equal(t, "Preprints", r.DisplayConfiguration["heading"])
	assert.Equal(t, "arxiv", r.EngineID)
}

func TestNewRecordUnknownField(t *testing.T) {
	r, err := NewRecord(map[string]any{
		"title":  "Paper",
		"titel":  "typo",
		"author": "Smith",
	})
	require.Error(t, err)
	assert.Nil(t, r)

	var unknown *UnknownFieldError
	require.True(t, errors.As(err, &unknown))
	// Keys are applied in sorted order, so "author" is reported first.
	assert.Equal(t, "author", unknown.Field)
}

func TestNewRecordUnknownFieldWithNilValue(t *testing.T) {
	_, err := NewRecord(map[string]any{"nope": nil})

	var unknown *UnknownFieldError
	assert.ErrorAs(t, err, &unknown)
}

func TestNewRecordFieldValueErrors(t *testing.T) {
	tests := []struct {
		name  string
		field string
		value any
	}{
		{"year not a number", "year", "nineteen"},
		{"date not a date", "publication_date", "last tuesday"},
		{"format wrong type", "format", 42},
		{"format invalid tag", "format", FormatTag(99)},
		{"authors not a list", "authors", "Smith"},
		{"author unknown key", "authors", []any{map[string]any{"surname": "Smith"}}},
		{"links not a list", "other_links", "http://example.org"},
		{"link unknown key", "other_links", []any{map[string]any{"href": "x"}}},
		{"custom data not a map", "custom_data", []string{"a"}},
		{"suppress not a bool", "suppress_link_generation", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRecord(map[string]any{tt.field: tt.value})
			assert.Nil(t, r)

			var fve *FieldValueError
			require.ErrorAs(t, err, &fve)
			assert.Equal(t, tt.field, fve.Field)
		})
	}
}

func TestNewRecordAuthorsFromDecodedMaps(t *testing.T) {
	r, err := NewRecord(map[string]any{
		"authors": []any{
			map[string]any{"first": "Ada", "last": "Lovelace"},
			"Charles Babbage",
		},
	})
	require.NoError(t, err)
	require.Len(t, r.Authors, 2)
	assert.Equal(t, "Lovelace, Ada", r.Authors[0].Name())
	assert.Equal(t, "Charles Babbage", r.Authors[1].Name())
}

func TestNewRecordLinksFromDecodedMaps(t *testing.T) {
	r, err := NewRecord(map[string]any{
		"other_links": []any{
			map[string]any{"url": "https://example.org/a.pdf", "label": "PDF", "rel": []any{"alternate"}},
		},
	})
	require.NoError(t, err)
	require.Len(t, r.OtherLinks, 1)
	assert.Equal(t, Link{URL: "https://example.org/a.pdf", Label: "PDF", Rel: []string{"alternate"}}, r.OtherLinks[0])
}

func TestNewRecordFormatString(t *testing.T) {
	r, err := NewRecord(map[string]any{"format": "Book"})
	require.NoError(t, err)
	assert.Equal(t, SchemaType("Book"), r.Format)

	r, err = NewRecord(map[string]any{"format": ""})
	require.NoError(t, err)
	assert.Nil(t, r.Format)
}

func TestNewRecordPlainAbstractIsNotSafe(t *testing.T) {
	r, err := NewRecord(map[string]any{"abstract": "a < b"})
	require.NoError(t, err)
	assert.Equal(t, "a < b", r.Abstract)
	assert.False(t, r.AbstractHTMLSafe)
}

func TestNewRecordLinkIsFulltextTriState(t *testing.T) {
	r, err := NewRecord(nil)
	require.NoError(t, err)
	assert.Nil(t, r.LinkIsFulltext)

	r, err = NewRecord(map[string]any{"link_is_fulltext": false})
	require.NoError(t, err)
	require.NotNil(t, r.LinkIsFulltext)
	assert.False(t, *r.LinkIsFulltext)
}

func TestTitleSynonym(t *testing.T) {
	r, err := NewRecord(map[string]any{"title": "Original"})
	require.NoError(t, err)
	assert.Equal(t, "Original", r.CompleteTitle())

	r.SetCompleteTitle("Changed")
	assert.Equal(t, "Changed", r.Title)

	r.Title = "Direct"
	assert.Equal(t, "Direct", r.CompleteTitle())

	r, err = NewRecord(map[string]any{"complete_title": "Via synonym"})
	require.NoError(t, err)
	assert.Equal(t, "Via synonym", r.Title)
}

func TestContainerTitleSynonym(t *testing.T) {
	r, err := NewRecord(map[string]any{"source_title": "Nature"})
	require.NoError(t, err)
	assert.Equal(t, "Nature", r.ContainerTitle())

	r.SetContainerTitle("Science")
	assert.Equal(t, "Science", r.SourceTitle)

	r.SourceTitle = "Cell"
	assert.Equal(t, "Cell", r.ContainerTitle())

	r, err = NewRecord(map[string]any{"container_title": "PLOS ONE"})
	require.NoError(t, err)
	assert.Equal(t, "PLOS ONE", r.SourceTitle)
}

func TestJournalTitleSynonym(t *testing.T) {
	r, err := NewRecord(map[string]any{"journal_title": "The Lancet"})
	require.NoError(t, err)
	assert.Equal(t, "The Lancet", r.SourceTitle)
	assert.Equal(t, "The Lancet", r.ContainerTitle())
	assert.Equal(t, "The Lancet", r.JournalTitle())

	r.SetJournalTitle("BMJ")
	assert.Equal(t, "BMJ", r.SourceTitle)
	assert.Equal(t, "BMJ", r.ContainerTitle())

	r.SetContainerTitle("JAMA")
	assert.Equal(t, "JAMA", r.JournalTitle())
}

func TestFieldNames(t *testing.T) {
	names := FieldNames()
	assert.Contains(t, names, "language_display_string")
	assert.Contains(t, names, "container_title")
	assert.Contains(t, names, "journal_title")
	assert.IsIncreasing(t, names)

	for _, name := range names {
		_, err := NewRecord(map[string]any{name: nil})
		assert.NoError(t, err, name)
	}
}

func TestAuthorName(t *testing.T) {
	tests := []struct {
		name   string
		author Author
		want   string
	}{
		{"display wins", Author{First: "A", Last: "B", Display: "Dr. B"}, "Dr. B"},
		{"last and first", Author{First: "Grace", Last: "Hopper"}, "Hopper, Grace"},
		{"with middle", Author{First: "John", Middle: "von", Last: "Neumann"}, "Neumann, John von"},
		{"last only", Author{Last: "Euclid"}, "Euclid"},
		{"first only", Author{First: "Plato"}, "Plato"},
		{"empty", Author{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.author.Name(); got != tt.want {
				t.Errorf("Name() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEngineConfigStamp(t *testing.T) {
	cfg := EngineConfig{
		Decorator:              "Plain",
		ForDisplay:             map[string]any{"heading": "Articles"},
		SuppressLinkGeneration: true,
	}
	fields := cfg.Stamp(map[string]any{"title": "T", "engine_id": "override"}, "openalex")

	assert.Equal(t, "T", fields["title"])
	assert.Equal(t, "override", fields["engine_id"])
	assert.Equal(t, "Plain", fields["decorator_reference"])
	assert.Equal(t, true, fields["suppress_link_generation"])

	fields = EngineConfig{ID: "scholar"}.Stamp(nil, "openalex")
	assert.Equal(t, map[string]any{"engine_id": "scholar"}, fields)
}
