// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"io"

	"github.com/pdiddy/hitnorm/internal/hitfile"
	"github.com/pdiddy/hitnorm/pkg/types"
)

// Outputs lists the names accepted by Write.
var Outputs = []string{"table", "json", "csl", "yaml"}

// Write renders records in the named output format. "yaml" writes a hit
// file that can be read back with the hitfile engine.
func Write(output string, records []*types.Record, w io.Writer) error {
	switch output {
	case "table", "":
		FormatTable(records, w)
		return nil
	case "json":
		return FormatJSON(records, w)
	case "csl":
		return FormatCSL(records, w)
	case "yaml":
		return hitfile.Write(w, records)
	default:
		return fmt.Errorf("unknown output format %q (want one of %v)", output, Outputs)
	}
}
