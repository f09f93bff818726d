// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"net/url"

	"github.com/pdiddy/hitnorm/pkg/types"
)

const doiResolver = "https://doi.org/"

// ResolveLink returns the outbound link for r. A producer-supplied Link is
// returned as is. Otherwise a DOI resolver link is generated, unless the
// record suppresses link generation, in which case ResolveLink returns "".
func ResolveLink(r *types.Record) string {
	if r.Link != "" {
		return r.Link
	}
	if r.SuppressLinkGeneration {
		return ""
	}
	if r.DOI != "" {
		return doiResolver + (&url.URL{Path: r.DOI}).EscapedPath()
	}
	return ""
}
