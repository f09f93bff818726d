// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/hitnorm/internal/engine"
	"github.com/pdiddy/hitnorm/internal/export"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize --engine NAME FILE...",
	Short: "Normalize captured engine responses into records",
	Long: `Normalize decodes one or more payloads captured from a search engine
(use - for stdin), maps every hit onto a normalized record, and merges hits
that share a DOI, identifier, or title. Records keep the order the engine
returned them in.

NAME is an engine profile from the config file or an adapter name. Run
"hitnorm engines" to list both.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().String("engine", "", "engine profile or adapter that produced the files")
	normalizeCmd.Flags().String("output", "table", "output format: table, json, csl, yaml")
	normalizeCmd.Flags().Int("max-results", 0, "keep at most N records per file (overrides the profile)")
	_ = normalizeCmd.MarkFlagRequired("engine")
	_ = viper.BindPFlag("output", normalizeCmd.Flags().Lookup("output"))

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	name, _ := cmd.Flags().GetString("engine")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	output := viper.GetString("output")

	profiles, err := loadProfiles(viper.GetViper())
	if err != nil {
		return err
	}
	e, cfg, err := resolveEngine(engine.Default(), profiles, name)
	if err != nil {
		return err
	}
	if maxResults > 0 {
		cfg.MaxResults = maxResults
	}

	if err := checkInputs(args); err != nil {
		return err
	}

	sources := make([]engine.Source, 0, len(args))
	for _, path := range args {
		r, closeFn, err := openInput(cmd, path)
		if err != nil {
			return err
		}
		defer closeFn()
		sources = append(sources, engine.Source{Name: path, Engine: e, Config: cfg, Reader: r})
	}

	n := &engine.Normalizer{Logger: logger.With(zap.String("engine", name))}
	out, err := n.Normalize(cmd.Context(), sources)
	for _, msg := range out.SourceErrors {
		fmt.Fprintln(cmd.ErrOrStderr(), "Warning:", msg)
	}
	if err != nil {
		return err
	}

	if err := export.Write(output, out.Records, cmd.OutOrStdout()); err != nil {
		return err
	}
	if out.DupsRemoved > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d duplicates merged\n", out.DupsRemoved)
	}
	return nil
}

// checkInputs rejects a repeated "-": sources are decoded concurrently and
// stdin can only be read once.
func checkInputs(paths []string) error {
	stdin := 0
	for _, path := range paths {
		if path == "-" {
			stdin++
		}
	}
	if stdin > 1 {
		return fmt.Errorf("stdin (-) can be given only once, got it %d times", stdin)
	}
	return nil
}

// openInput opens path for reading; "-" is the command's stdin.
func openInput(cmd *cobra.Command, path string) (io.Reader, func(), error) {
	if path == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return f, func() { f.Close() }, nil
}
