// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"io"

	"github.com/pdiddy/hitnorm/internal/hitfile"
	"github.com/pdiddy/hitnorm/pkg/types"
)

// HitFileEngine reads hit files, so hand-curated or previously exported
// hits can be merged with live engine payloads.
type HitFileEngine struct{}

// Name returns the adapter identifier.
func (e *HitFileEngine) Name() string { return "hitfile" }

// Decode reads a hit file. The profile's MaxResults applies as for any
// other engine.
func (e *HitFileEngine) Decode(ctx context.Context, r io.Reader, cfg types.EngineConfig) ([]*types.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	records, err := hitfile.Read(r, cfg)
	if err != nil {
		return nil, err
	}
	return limit(records, cfg), nil
}
