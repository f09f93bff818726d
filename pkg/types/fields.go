// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/spf13/cast"
)

// fieldSetters is the closed set of construction keys. Synonym keys write
// the same field as their canonical key.
var fieldSetters = map[string]func(*Record, any) error{
	"unique_id":                stringSetter(func(r *Record) *string { return &r.UniqueID }),
	"suppress_link_generation": setSuppressLinkGeneration,
	"other_links":              setOtherLinks,
	"title":                    stringSetter(func(r *Record) *string { return &r.Title }),
	"complete_title":           stringSetter(func(r *Record) *string { return &r.Title }),
	"link":                     stringSetter(func(r *Record) *string { return &r.Link }),
	"link_is_fulltext":         setLinkIsFulltext,
	"format":                   setFormat,
	"format_display_string":    stringSetter(func(r *Record) *string { return &r.FormatDisplayString }),
	"language_code":            stringSetter(func(r *Record) *string { return &r.LanguageCode }),
	"language_display_string":  stringSetter(func(r *Record) *string { return &r.languageDisplay }),
	"year":                     setYear,
	"publication_date":         setPublicationDate,
	"volume":                   stringSetter(func(r *Record) *string { return &r.Volume }),
	"issue":                    stringSetter(func(r *Record) *string { return &r.Issue }),
	"start_page":               stringSetter(func(r *Record) *string { return &r.StartPage }),
	"end_page":                 stringSetter(func(r *Record) *string { return &r.EndPage }),
	"source_title":             stringSetter(func(r *Record) *string { return &r.SourceTitle }),
	"container_title":          stringSetter(func(r *Record) *string { return &r.SourceTitle }),
	"journal_title":            stringSetter(func(r *Record) *string { return &r.SourceTitle }),
	"issn":                     stringSetter(func(r *Record) *string { return &r.ISSN }),
	"isbn":                     stringSetter(func(r *Record) *string { return &r.ISBN }),
	"oclc_number":              stringSetter(func(r *Record) *string { return &r.OCLCNumber }),
	"doi":                      stringSetter(func(r *Record) *string { return &r.DOI }),
	"publisher":                stringSetter(func(r *Record) *string { return &r.Publisher }),
	"external_citation_blob":   stringSetter(func(r *Record) *string { return &r.ExternalCitationBlob }),
	"abstract":                 setAbstract,
	"authors":                  setAuthors,
	"custom_data":              setCustomData,
	"decorator_reference":      stringSetter(func(r *Record) *string { return &r.DecoratorReference }),
	"display_configuration":    setDisplayConfiguration,
	"engine_id":                stringSetter(func(r *Record) *string { return &r.EngineID }),
}

// FieldNames returns every construction key, sorted.
func FieldNames() []string {
	return slices.Sorted(maps.Keys(fieldSetters))
}

func stringSetter(field func(*Record) *string) func(*Record, any) error {
	return func(r *Record, v any) error {
		s, err := cast.ToStringE(v)
		if err != nil {
			return err
		}
		*field(r) = s
		return nil
	}
}

func setSuppressLinkGeneration(r *Record, v any) error {
	b, err := cast.ToBoolE(v)
	if err != nil {
		return err
	}
	r.SuppressLinkGeneration = b
	return nil
}

func setLinkIsFulltext(r *Record, v any) error {
	if p, ok := v.(*bool); ok {
		r.LinkIsFulltext = p
		return nil
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return err
	}
	r.LinkIsFulltext = &b
	return nil
}

func setFormat(r *Record, v any) error {
	switch f := v.(type) {
	case FormatTag:
		if !f.Valid() {
			return fmt.Errorf("unknown format tag %d", int(f))
		}
		r.Format = f
	case SchemaType:
		if f == "" {
			r.Format = nil
			return nil
		}
		r.Format = f
	case string:
		r.Format = nil
		if f != "" {
			r.Format = SchemaType(f)
		}
	default:
		return fmt.Errorf("want string, SchemaType or FormatTag")
	}
	return nil
}

func setYear(r *Record, v any) error {
	y, err := cast.ToIntE(v)
	if err != nil {
		return err
	}
	r.Year = y
	return nil
}

func setPublicationDate(r *Record, v any) error {
	if s, ok := v.(string); ok && s == "" {
		r.PublicationDate = time.Time{}
		return nil
	}
	t, err := cast.ToTimeE(v)
	if err != nil {
		return err
	}
	r.PublicationDate = t
	return nil
}

func setAbstract(r *Record, v any) error {
	if h, ok := v.(HTML); ok {
		r.Abstract = string(h)
		r.AbstractHTMLSafe = true
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return err
	}
	r.Abstract = s
	r.AbstractHTMLSafe = false
	return nil
}

func setAuthors(r *Record, v any) error {
	switch a := v.(type) {
	case []Author:
		r.Authors = a
		return nil
	case []string:
		authors := make([]Author, len(a))
		for i, name := range a {
			authors[i] = Author{Display: name}
		}
		r.Authors = authors
		return nil
	case []any:
		authors := make([]Author, 0, len(a))
		for i, item := range a {
			author, err := toAuthor(item)
			if err != nil {
				return fmt.Errorf("author %d: %w", i, err)
			}
			authors = append(authors, author)
		}
		r.Authors = authors
		return nil
	default:
		return fmt.Errorf("want a list of authors")
	}
}

func toAuthor(v any) (Author, error) {
	switch a := v.(type) {
	case Author:
		return a, nil
	case string:
		return Author{Display: a}, nil
	}
	m, err := cast.ToStringMapStringE(v)
	if err != nil {
		return Author{}, err
	}
	for k := range m {
		switch k {
		case "first", "last", "middle", "display":
		default:
			return Author{}, fmt.Errorf("unknown author key %q", k)
		}
	}
	return Author{First: m["first"], Last: m["last"], Middle: m["middle"], Display: m["display"]}, nil
}

func setOtherLinks(r *Record, v any) error {
	switch l := v.(type) {
	case []Link:
		r.OtherLinks = l
		return nil
	case []any:
		links := make([]Link, 0, len(l))
		for i, item := range l {
			link, err := toLink(item)
			if err != nil {
				return fmt.Errorf("link %d: %w", i, err)
			}
			links = append(links, link)
		}
		r.OtherLinks = links
		return nil
	default:
		return fmt.Errorf("want a list of links")
	}
}

func toLink(v any) (Link, error) {
	if l, ok := v.(Link); ok {
		return l, nil
	}
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return Link{}, err
	}
	var link Link
	for k, val := range m {
		switch k {
		case "url":
			link.URL, err = cast.ToStringE(val)
		case "label":
			link.Label, err = cast.ToStringE(val)
		case "type":
			link.Type, err = cast.ToStringE(val)
		case "target":
			link.Target, err = cast.ToStringE(val)
		case "rel":
			link.Rel, err = cast.ToStringSliceE(val)
		default:
			err = fmt.Errorf("unknown link key %q", k)
		}
		if err != nil {
			return Link{}, err
		}
	}
	return link, nil
}

func setCustomData(r *Record, v any) error {
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return err
	}
	r.CustomData = m
	return nil
}

func setDisplayConfiguration(r *Record, v any) error {
	m, err := cast.ToStringMapE(v)
	if err != nil {
		return err
	}
	r.DisplayConfiguration = m
	return nil
}
