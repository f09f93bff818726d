// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/hitnorm/pkg/types"
)

// PatentsViewEngine decodes PatentsView patent search responses.
type PatentsViewEngine struct{}

// Name returns the adapter identifier.
func (e *PatentsViewEngine) Name() string { return "patentsview" }

// Decode maps each patent onto a record. Patents have no schema.org
// CreativeWork type, so the format is left unset and labeled for display.
func (e *PatentsViewEngine) Decode(ctx context.Context, r io.Reader, cfg types.EngineConfig) ([]*types.Record, error) {
	var pvr patentsViewResponse
	if err := json.NewDecoder(r).Decode(&pvr); err != nil {
		return nil, fmt.Errorf("parsing PatentsView response: %w", err)
	}

	var records []*types.Record
	for _, patent := range pvr.Patents {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if patent.PatentID == "" {
			continue
		}

		fields := map[string]any{
			"unique_id":             "US" + patent.PatentID,
			"title":                 collapseSpace(patent.PatentTitle),
			"abstract":              patent.PatentAbstract,
			"format_display_string": "Patent",
			"language_code":         "en",
		}

		// Inventors stand in for authors.
		authors := make([]types.Author, 0, len(patent.Inventors))
		for _, inv := range patent.Inventors {
			if inv.InventorNameLast == "" {
				continue
			}
			authors = append(authors, types.Author{First: inv.InventorNameFirst, Last: inv.InventorNameLast})
		}
		fields["authors"] = authors

		if patent.PatentDate != "" {
			if t, parseErr := time.Parse("2006-01-02", patent.PatentDate); parseErr == nil {
				fields["publication_date"] = t
				fields["year"] = t.Year()
			}
		}

		custom := map[string]any{"patent_number": patent.PatentID}
		if patent.PatentType != "" {
			custom["patent_type"] = patent.PatentType
		}
		if patent.NumClaims > 0 {
			custom["num_claims"] = patent.NumClaims
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

// PatentsView API JSON structures.
type patentsViewResponse struct {
	Patents []patentsViewPatent `json:"patents"`
	Count   int                 `json:"count"`
	Total   int                 `json:"total_patent_count"`
}

type patentsViewPatent struct {
	PatentID       string                `json:"patent_id"`
	PatentTitle    string                `json:"patent_title"`
	PatentAbstract string                `json:"patent_abstract"`
	PatentDate     string                `json:"patent_date"`
	PatentType     string                `json:"patent_type"`
	NumClaims      int                   `json:"patent_num_claims"`
	Inventors      []patentsViewInventor `json:"inventors"`
}

type patentsViewInventor struct {
	InventorNameFirst string `json:"inventor_name_first"`
	InventorNameLast  string `json:"inventor_name_last"`
}
