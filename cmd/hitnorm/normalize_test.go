// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arxivFeed = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v1</id>
    <title>Attention Is All You Need</title>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
  </entry>
</feed>`

func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(bytes.NewBufferString(stdin))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNormalizeCommandJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed.xml")
	require.NoError(t, os.WriteFile(path, []byte(arxivFeed), 0o644))

	// The same feed twice: the second copy merges into the first.
	stdout, stderr, err := runCLI(t, arxivFeed, "normalize", "--engine", "arxiv", "--output", "json", path, "-")
	require.NoError(t, err)

	var records []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &records))
	require.Len(t, records, 1)
	assert.Equal(t, "1706.03762", records[0]["unique_id"])
	assert.Equal(t, "http://schema.org/Article", records[0]["schema_org_type_url"])
	assert.Contains(t, stderr, "1 duplicates merged")
}

func TestNormalizeCommandUnknownEngine(t *testing.T) {
	_, _, err := runCLI(t, "", "normalize", "--engine", "google", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown engine "google"`)
}

func TestNormalizeCommandMissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "normalize", "--engine", "arxiv", filepath.Join(t.TempDir(), "nope.xml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening")
}

func TestNormalizeCommandRepeatedStdin(t *testing.T) {
	_, _, err := runCLI(t, arxivFeed, "normalize", "--engine", "arxiv", "-", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stdin (-) can be given only once")
}

func TestCheckInputs(t *testing.T) {
	tests := []struct {
		name    string
		paths   []string
		wantErr bool
	}{
		{"files only", []string{"a.json", "b.json"}, false},
		{"one stdin", []string{"a.json", "-"}, false},
		{"two stdin", []string{"-", "a.json", "-"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkInputs(tt.paths)
			if (err != nil) != tt.wantErr {
				t.Errorf("checkInputs(%v) error = %v, wantErr %v", tt.paths, err, tt.wantErr)
			}
		})
	}
}
