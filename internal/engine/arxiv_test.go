// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/hitnorm/pkg/types"
)

const sampleArxivSearchXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:arxiv="http://arxiv.org/schemas/atom">
  <entry>
    <id>http://arxiv.org/abs/1706.03762v1</id>
    <title>Attention Is All
      You Need</title>
    <summary>  We propose a new architecture based solely on attention mechanisms.
</summary>
    <published>2017-06-12T17:57:34Z</published>
    <author><name>Ashish Vaswani</name></author>
    <author><name>Noam Shazeer</name></author>
    <arxiv:doi>10.48550/arXiv.1706.03762</arxiv:doi>
    <arxiv:comment>15 pages, 5 figures</arxiv:comment>
    <arxiv:journal_ref>NeurIPS 2017</arxiv:journal_ref>
    <arxiv:primary_category term="cs.CL" scheme="http://arxiv.org/schemas/atom"/>
    <link href="http://arxiv.org/abs/1706.03762v1" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/1706.03762v1" rel="related" type="application/pdf"/>
    <link title="doi" href="http://dx.doi.org/10.48550/arXiv.1706.03762" rel="related"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/1810.04805v2</id>
    <title>BERT: Pre-training of Deep Bidirectional Transformers</title>
    <summary>We introduce BERT.</summary>
    <published>2018-10-11T00:00:00Z</published>
    <author><name>Jacob Devlin</name></author>
  </entry>
  <entry>
    <id>http://arxiv.org/api/errors#incorrect_id_format</id>
    <title>Error</title>
  </entry>
</feed>`

func TestArxivDecode(t *testing.T) {
	e := &ArxivEngine{}
	records, err := e.Decode(context.Background(), strings.NewReader(sampleArxivSearchXML), types.EngineConfig{})
	if err != nil {
		t.Fatalf("ArxivEngine.Decode: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2 (error entry skipped)", len(records))
	}

	r := records[0]
	if r.UniqueID != "1706.03762" {
		t.Errorf("UniqueID = %q, want %q", r.UniqueID, "1706.03762")
	}
	if r.Title != "Attention Is All You Need" {
		t.Errorf("Title = %q", r.Title)
	}
	if r.EngineID != "arxiv" {
		t.Errorf("EngineID = %q, want %q", r.EngineID, "arxiv")
	}
	assert.Equal(t, "We propose a new architecture based solely on attention mechanisms.", r.Abstract)
	assert.Equal(t, []types.Author{{Display: "Ashish Vaswani"}, {Display: "Noam Shazeer"}}, r.Authors)
	assert.Equal(t, 2017, r.Year)
	assert.Equal(t, time.Date(2017, 6, 12, 17, 57, 34, 0, time.UTC), r.PublicationDate)
	assert.Equal(t, "http://arxiv.org/abs/1706.03762v1", r.Link)
	require.NotNil(t, r.LinkIsFulltext)
	assert.False(t, *r.LinkIsFulltext)
	assert.Equal(t, "10.48550/arXiv.1706.03762", r.DOI)
	assert.Equal(t, "http://schema.org/Article", r.SchemaOrgTypeURL())
	assert.Equal(t, []types.Link{
		{URL: "http://arxiv.org/pdf/1706.03762v1", Label: "PDF", Type: "application/pdf"},
		{URL: "http://dx.doi.org/10.48550/arXiv.1706.03762", Label: "DOI"},
	}, r.OtherLinks)
	assert.Equal(t, map[string]any{
		"primary_category": "cs.CL",
		"journal_ref":      "NeurIPS 2017",
		"comment":          "15 pages, 5 figures",
	}, r.CustomData)

	bert := records[1]
	assert.Equal(t, "1810.04805", bert.UniqueID)
	assert.Empty(t, bert.DOI)
	assert.Empty(t, bert.OtherLinks)
	assert.NotNil(t, bert.OtherLinks)
}

func TestArxivDecodeMaxResults(t *testing.T) {
	e := &ArxivEngine{}
	records, err := e.Decode(context.Background(), strings.NewReader(sampleArxivSearchXML), types.EngineConfig{MaxResults: 1})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestArxivDecodeMalformed(t *testing.T) {
	e := &ArxivEngine{}
	_, err := e.Decode(context.Background(), strings.NewReader("<feed><entry>"), types.EngineConfig{})
	if err == nil {
		t.Fatal("expected error for malformed XML")
	}
	if !strings.Contains(err.Error(), "parsing arXiv response") {
		t.Errorf("error = %v, want parse context", err)
	}
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/1706.03762v5", "1706.03762"},
		{"http://arxiv.org/abs/2301.12345", "2301.12345"},
		{"https://arxiv.org/abs/2301.07041v2", "2301.07041"},
		{"http://arxiv.org/abs/hep-th/9901001v1", "hep-th/9901001"},
		{"not a url", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := extractArxivID(tt.input)
			if got != tt.want {
				t.Errorf("extractArxivID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
