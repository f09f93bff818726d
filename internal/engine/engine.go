// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine maps native search-engine payloads onto normalized records.
//
// Each adapter decodes one already-fetched payload format and builds records
// through types.NewRecord, so an adapter that emits a field the record does
// not know fails loudly instead of dropping data. The Normalizer runs several
// payloads at once and merges hits that more than one engine returned.
package engine

import (
	"context"
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/pdiddy/hitnorm/pkg/types"
)

// Engine decodes one native payload format. Each adapter (arXiv, OpenAlex,
// Semantic Scholar, PatentsView, hit files) implements this interface.
type Engine interface {
	Name() string
	Decode(ctx context.Context, r io.Reader, cfg types.EngineConfig) ([]*types.Record, error)
}

// Registry maps adapter names to engines.
type Registry struct {
	engines map[string]Engine
}

// NewRegistry returns a registry holding the given engines.
func NewRegistry(engines ...Engine) *Registry {
	reg := &Registry{engines: make(map[string]Engine, len(engines))}
	for _, e := range engines {
		reg.engines[e.Name()] = e
	}
	return reg
}

// Default returns a registry with every built-in adapter.
func Default() *Registry {
	return NewRegistry(
		&ArxivEngine{},
		&OpenAlexEngine{},
		&SemanticScholarEngine{},
		&PatentsViewEngine{},
		&HitFileEngine{},
	)
}

// Get returns the engine registered under name.
func (reg *Registry) Get(name string) (Engine, bool) {
	e, ok := reg.engines[name]
	return e, ok
}

// Names returns the registered adapter names, sorted.
func (reg *Registry) Names() []string {
	names := make([]string, 0, len(reg.engines))
	for name := range reg.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Source is one payload to normalize.
type Source struct {
	// Name labels the payload in logs and errors, e.g. a file path.
	Name   string
	Engine Engine
	Config types.EngineConfig
	Reader io.Reader
}

// Output holds normalized records and merge statistics.
type Output struct {
	Records      []*types.Record
	DupsRemoved  int
	SourceErrors []string
}

// Normalizer decodes payloads and merges duplicate hits.
type Normalizer struct {
	Logger *zap.Logger
}

func (n *Normalizer) logger() *zap.Logger {
	if n.Logger == nil {
		return zap.NewNop()
	}
	return n.Logger
}

// Normalize decodes every source concurrently. Records keep source order,
// then the engine's native order; no re-ranking happens. A source that fails
// is logged and reported in Output.SourceErrors. Normalize fails only when
// there are no sources, every source failed, or ctx is cancelled.
func (n *Normalizer) Normalize(ctx context.Context, sources []Source) (Output, error) {
	if len(sources) == 0 {
		return Output{}, fmt.Errorf("no sources to normalize")
	}
	log := n.logger()

	type sourceResult struct {
		records []*types.Record
		err     error
	}
	results := make([]sourceResult, len(sources))

	var wg sync.WaitGroup
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			records, err := src.Engine.Decode(ctx, src.Reader, src.Config)
			results[i] = sourceResult{records: records, err: err}
		}(i, src)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	var all []*types.Record
	var sourceErrors []string
	for i, res := range results {
		src := sources[i]
		if res.err != nil {
			sourceErrors = append(sourceErrors, fmt.Sprintf("%s: %v", src.Name, res.err))
			log.Warn("source failed",
				zap.String("source", src.Name),
				zap.String("engine", src.Engine.Name()),
				zap.Error(res.err))
			continue
		}
		log.Debug("source decoded",
			zap.String("source", src.Name),
			zap.String("engine", src.Engine.Name()),
			zap.Int("records", len(res.records)))
		all = append(all, res.records...)
	}

	if len(sourceErrors) == len(sources) {
		return Output{SourceErrors: sourceErrors}, fmt.Errorf("all %d sources failed", len(sources))
	}

	deduped, removed := deduplicate(all)
	if removed > 0 {
		log.Info("merged duplicate records", zap.Int("removed", removed))
	}

	return Output{
		Records:      deduped,
		DupsRemoved:  removed,
		SourceErrors: sourceErrors,
	}, nil
}

// deduplicate merges records that share a DOI, a unique id, or a normalized
// title into the first occurrence.
func deduplicate(records []*types.Record) ([]*types.Record, int) {
	seen := make(map[string]int) // dedup key → index in deduped
	var deduped []*types.Record
	removed := 0

	for _, r := range records {
		keys := dedupKeys(r)
		merged := false
		for _, key := range keys {
			if idx, ok := seen[key]; ok {
				mergeInto(deduped[idx], r)
				removed++
				merged = true
				// The merged record may now carry keys it lacked before.
				for _, k := range dedupKeys(deduped[idx]) {
					if _, taken := seen[k]; !taken {
						seen[k] = idx
					}
				}
				break
			}
		}
		if merged {
			continue
		}

		idx := len(deduped)
		deduped = append(deduped, r)
		for _, key := range keys {
			if _, taken := seen[key]; !taken {
				seen[key] = idx
			}
		}
	}
	return deduped, removed
}

// dedupKeys returns the keys r is merged on. A unique id is only meaningful
// within the engine that issued it, so it is keyed with the engine id; ids
// that are global (arXiv ids, DOIs) also get an engine-free key.
func dedupKeys(r *types.Record) []string {
	var keys []string
	if r.DOI != "" {
		keys = append(keys, "doi:"+strings.ToLower(r.DOI))
	}
	if r.UniqueID != "" {
		keys = append(keys, "id:"+r.EngineID+":"+r.UniqueID)
		switch {
		case isArxivID(r.UniqueID):
			keys = append(keys, "arxiv:"+r.UniqueID)
		case isDOI(r.UniqueID) && !strings.EqualFold(r.UniqueID, r.DOI):
			keys = append(keys, "doi:"+strings.ToLower(r.UniqueID))
		}
	}
	if t := normalizeTitle(r.Title); t != "" {
		keys = append(keys, "title:"+t)
	}
	return keys
}

// isArxivID returns true if the string looks like a new-style arXiv ID
// (e.g. "2301.07041").
func isArxivID(s string) bool {
	if len(s) < 9 {
		return false
	}
	return s[4] == '.' && s[0] >= '0' && s[0] <= '9'
}

// isDOI returns true if the string looks like a bare DOI (e.g. "10.1000/xyz").
func isDOI(s string) bool {
	return strings.HasPrefix(s, "10.") && strings.Contains(s, "/")
}

// mergeInto fills empty fields of dst from src and records src's engine.
func mergeInto(dst, src *types.Record) {
	fill := func(d *string, s string) {
		if *d == "" {
			*d = s
		}
	}
	fill(&dst.Title, src.Title)
	fill(&dst.Link, src.Link)
	fill(&dst.Abstract, src.Abstract)
	fill(&dst.DOI, src.DOI)
	fill(&dst.ISSN, src.ISSN)
	fill(&dst.ISBN, src.ISBN)
	fill(&dst.SourceTitle, src.SourceTitle)
	fill(&dst.Volume, src.Volume)
	fill(&dst.Issue, src.Issue)
	fill(&dst.StartPage, src.StartPage)
	fill(&dst.EndPage, src.EndPage)
	fill(&dst.Publisher, src.Publisher)
	fill(&dst.LanguageCode, src.LanguageCode)

	if len(dst.Authors) == 0 && len(src.Authors) > 0 {
		dst.Authors = slices.Clone(src.Authors)
	}
	if dst.Year == 0 {
		dst.Year = src.Year
	}
	if dst.PublicationDate.IsZero() {
		dst.PublicationDate = src.PublicationDate
	}
	if dst.Format == nil {
		dst.Format = src.Format
	}
	if dst.LinkIsFulltext == nil {
		dst.LinkIsFulltext = src.LinkIsFulltext
	}

	for _, l := range src.OtherLinks {
		if l.URL == dst.Link || slices.ContainsFunc(dst.OtherLinks, func(o types.Link) bool { return o.URL == l.URL }) {
			continue
		}
		dst.OtherLinks = append(dst.OtherLinks, l)
	}

	if src.EngineID != "" && src.EngineID != dst.EngineID {
		if dst.CustomData == nil {
			dst.CustomData = map[string]any{}
		}
		// Records read back from hit files carry the list as []any.
		engines := cast.ToStringSlice(dst.CustomData[MergedEnginesKey])
		if !slices.Contains(engines, src.EngineID) {
			dst.CustomData[MergedEnginesKey] = append(engines, src.EngineID)
		}
	}
}

// MergedEnginesKey is the CustomData key listing engines whose duplicate
// hits were merged into a record.
const MergedEnginesKey = "merged_engines"

// normalizeTitle returns a lowercased, punctuation-stripped version of the title.
func normalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// build constructs a record stamped with the profile's identity.
func build(cfg types.EngineConfig, adapter string, fields map[string]any) (*types.Record, error) {
	r, err := types.NewRecord(cfg.Stamp(fields, adapter))
	if err != nil {
		return nil, fmt.Errorf("building %s record: %w", adapter, err)
	}
	return r, nil
}

// limit truncates records to cfg.MaxResults when it is positive.
func limit(records []*types.Record, cfg types.EngineConfig) []*types.Record {
	if cfg.MaxResults > 0 && len(records) > cfg.MaxResults {
		return records[:cfg.MaxResults]
	}
	return records
}

// collapseSpace trims s and folds internal runs of whitespace, which Atom
// and JSON titles often carry from line-wrapped sources.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitPages splits a page range like "5998-6008" or "12–19".
func splitPages(pages string) (start, end string) {
	pages = strings.TrimSpace(pages)
	if i := strings.IndexAny(pages, "-–"); i >= 0 {
		start = strings.TrimSpace(pages[:i])
		_, size := utf8.DecodeRuneInString(pages[i:])
		end = strings.TrimSpace(pages[i+size:])
		return start, end
	}
	return pages, ""
}
