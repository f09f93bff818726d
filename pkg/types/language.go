// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageInfo is the result of a language taxonomy lookup.
type LanguageInfo struct {
	// Name is the English display name, e.g. "English".
	Name string
	// ISO6391 is the two-letter code, empty when the language has none.
	ISO6391 string
	// ISO6393 is the three-letter code.
	ISO6393 string
}

// LanguageTaxonomy resolves an ISO 639-1 or 639-3 code.
type LanguageTaxonomy interface {
	Find(code string) (LanguageInfo, bool)
}

// Languages is the taxonomy consulted by records. It defaults to the CLDR
// data shipped with golang.org/x/text.
var Languages LanguageTaxonomy = cldrTaxonomy{}

type cldrTaxonomy struct{}

// Find parses code as a bare ISO 639 language subtag. Region or script
// suffixes ("en-US") are not language codes and are not found. Deprecated
// codes report the current code.
func (cldrTaxonomy) Find(code string) (LanguageInfo, bool) {
	base, err := language.ParseBase(strings.TrimSpace(code))
	if err != nil {
		return LanguageInfo{}, false
	}
	tag, err := language.Compose(base)
	if err != nil || tag == language.Und {
		return LanguageInfo{}, false
	}
	// Withdrawn codes ("iw", "in", "ji") resolve to their replacements.
	tag, _ = language.DeprecatedBase.Canonicalize(tag)
	base, _ = tag.Base()
	name := display.English.Languages().Name(tag)
	if name == "" {
		return LanguageInfo{}, false
	}

	info := LanguageInfo{Name: name, ISO6393: base.ISO3()}
	if s := base.String(); len(s) == 2 {
		info.ISO6391 = s
	}
	return info, true
}

// languageMemo caches one taxonomy lookup, keyed on the code it was computed
// for. A lookup for a different code replaces the cached entry.
type languageMemo struct {
	mu    sync.Mutex
	valid bool
	code  string
	info  LanguageInfo
	found bool
}

func (m *languageMemo) lookup(code string) (LanguageInfo, bool) {
	if code == "" {
		return LanguageInfo{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.valid || m.code != code {
		m.info, m.found = Languages.Find(code)
		m.code = code
		m.valid = true
	}
	return m.info, m.found
}

// LanguageDisplayString returns the explicit display string if one was set,
// otherwise the taxonomy name for LanguageCode. It returns "" when neither
// is available.
func (r *Record) LanguageDisplayString() string {
	if r.languageDisplay != "" {
		return r.languageDisplay
	}
	info, ok := r.language.lookup(r.LanguageCode)
	if !ok {
		return ""
	}
	return info.Name
}

// SetLanguageDisplayString overrides the display string derived from
// LanguageCode. Setting "" restores derivation.
func (r *Record) SetLanguageDisplayString(s string) {
	r.languageDisplay = s
}

// LanguageDisplayOverride returns the explicitly set display string, or ""
// when the display string is derived.
func (r *Record) LanguageDisplayOverride() string {
	return r.languageDisplay
}

// LanguageISO6391 returns the two-letter code for LanguageCode, or "".
func (r *Record) LanguageISO6391() string {
	info, _ := r.language.lookup(r.LanguageCode)
	return info.ISO6391
}

// LanguageISO6393 returns the three-letter code for LanguageCode, or "".
func (r *Record) LanguageISO6393() string {
	info, _ := r.language.lookup(r.LanguageCode)
	return info.ISO6393
}
