// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"io"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/hitnorm/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	ISBN           string    `yaml:"ISBN,omitempty"`
	ISSN           string    `yaml:"ISSN,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Publisher      string    `yaml:"publisher,omitempty"`
	Language       string    `yaml:"language,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
	Number         string    `yaml:"number,omitempty"`
	Authority      string    `yaml:"authority,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

const usptoAuthority = "United States Patent and Trademark Office"

// usPatentID matches US grant and application numbers such as US7654321B2
// and US20230012345A1.
var usPatentID = regexp.MustCompile(`^US\d{6,11}[A-Z]?\d?$`)

// cslSchemaTypes maps schema.org type names onto CSL item types.
var cslSchemaTypes = map[string]string{
	"Article":            "article-journal",
	"ScholarlyArticle":   "article-journal",
	"NewsArticle":        "article-newspaper",
	"BlogPosting":        "post-weblog",
	"Book":               "book",
	"Chapter":            "chapter",
	"Thesis":             "thesis",
	"Report":             "report",
	"Dataset":            "dataset",
	"WebPage":            "webpage",
	"WebSite":            "webpage",
	"Map":                "map",
	"Movie":              "motion_picture",
	"MusicRecording":     "song",
	"SoftwareSourceCode": "software",
}

// cslTagTypes maps format tags onto CSL item types.
var cslTagTypes = map[types.FormatTag]string{
	types.TagSerial:                "periodical",
	types.TagDissertation:          "thesis",
	types.TagConferencePaper:       "paper-conference",
	types.TagConferenceProceedings: "book",
	types.TagReport:                "report",
	types.TagBookItem:              "chapter",
}

// FormatCSL writes records as a CSL-YAML list to w.
func FormatCSL(records []*types.Record, w io.Writer) error {
	items := make([]CSLItem, len(records))
	for i, r := range records {
		items[i] = toCSLItem(r)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a record to a CSLItem.
func toCSLItem(r *types.Record) CSLItem {
	item := CSLItem{
		ID:             cslID(r),
		Type:           cslType(r.Format),
		Title:          r.Title,
		Abstract:       r.Abstract,
		DOI:            r.DOI,
		ISBN:           r.ISBN,
		ISSN:           r.ISSN,
		ContainerTitle: r.ContainerTitle(),
		Volume:         r.Volume,
		Issue:          r.Issue,
		Page:           pageRange(r.StartPage, r.EndPage),
		Publisher:      r.Publisher,
		Language:       r.LanguageISO6391(),
		URL:            ResolveLink(r),
	}
	if item.Language == "" {
		item.Language = r.LanguageCode
	}

	for _, a := range r.Authors {
		item.Author = append(item.Author, cslName(a))
	}

	switch {
	case !r.PublicationDate.IsZero():
		d := r.PublicationDate
		item.Issued = &CSLDate{DateParts: [][]int{{d.Year(), int(d.Month()), d.Day()}}}
	case r.Year != 0:
		item.Issued = &CSLDate{DateParts: [][]int{{r.Year}}}
	}

	if isPatent(r) {
		item.Type = "patent"
		item.Number = r.UniqueID
		item.Authority = usptoAuthority
		item.DOI = ""
		item.ContainerTitle = ""
	}
	return item
}

func cslID(r *types.Record) string {
	switch {
	case r.UniqueID != "":
		return r.UniqueID
	case r.DOI != "":
		return r.DOI
	default:
		return normalizeID(r.Title)
	}
}

// normalizeID builds a citation key from a title when the record carries no
// identifier.
func normalizeID(title string) string {
	words := strings.Fields(strings.ToLower(title))
	if len(words) > 4 {
		words = words[:4]
	}
	return strings.Join(words, "-")
}

func cslType(f types.Format) string {
	switch f := f.(type) {
	case types.FormatTag:
		if t, ok := cslTagTypes[f]; ok {
			return t
		}
	case types.SchemaType:
		if t, ok := cslSchemaTypes[string(f)]; ok {
			return t
		}
	}
	return "article"
}

// isPatent reports whether r came from a patent engine or carries a US
// patent number as its identifier.
func isPatent(r *types.Record) bool {
	return r.EngineID == "patentsview" || usPatentID.MatchString(r.UniqueID)
}

func pageRange(start, end string) string {
	switch {
	case start == "":
		return ""
	case end == "" || end == start:
		return start
	default:
		return start + "-" + end
	}
}

// cslName converts a structured author. Display-only names are split on the
// last space: everything before is given, the last token is family.
// Single-token names use the literal field.
func cslName(a types.Author) CSLName {
	if a.Last != "" {
		return CSLName{
			Family: a.Last,
			Given:  strings.TrimSpace(a.First + " " + a.Middle),
		}
	}
	return parseAuthorName(a.Display)
}

// parseAuthorName splits a full name string into CSL family/given parts.
func parseAuthorName(name string) CSLName {
	name = strings.TrimSpace(name)
	if name == "" {
		return CSLName{}
	}
	idx := strings.LastIndex(name, " ")
	if idx < 0 {
		return CSLName{Literal: name}
	}
	return CSLName{
		Given:  name[:idx],
		Family: name[idx+1:],
	}
}
