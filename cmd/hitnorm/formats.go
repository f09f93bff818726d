// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/hitnorm/pkg/types"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "Print the format tags and their schema.org type URLs",
	Long: `Formats lists the extension format tags a record may carry and the
schema.org type URL each maps to. Any other format is a schema.org type name
(e.g. Book, Article) and maps to ` + types.SchemaOrgBase + `<name>.`,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		for _, tag := range types.FormatTags() {
			url := types.TaxonomyURL(tag)
			if url == "" {
				url = "-"
			}
			fmt.Fprintf(w, "%-25s  %s\n", tag.Label(), url)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
