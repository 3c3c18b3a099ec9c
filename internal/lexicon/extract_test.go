package lexicon

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(DefaultRegistry())
}

func TestExtractFields_SchemaMapping(t *testing.T) {
	r := NewRegistry()
	r.Register("post-like-A", Schema{
		Fields: map[Field]FieldMapping{
			FieldContent: Exact("text"),
			FieldDate:    Exact("createdAt"),
		},
	})
	e := NewEngine(r)

	rec := Record{
		Type: "post-like-A",
		Value: map[string]any{
			"text":      "Hello",
			"createdAt": "2024-12-20T10:00:00Z",
		},
	}
	f := e.ExtractFields(rec)
	assert.Equal(t, "Hello", f.Content)
	require.NotNil(t, f.Date)
	assert.Equal(t, 2024, f.Date.Year())
	assert.Equal(t, ConfidenceHigh, e.ExtractionConfidence(rec))
}

func TestExtractFields_BlobImageURL(t *testing.T) {
	e := testEngine(t)
	rec := Record{
		URI: "scheme://author1/x/rkey",
		Value: map[string]any{
			"image": map[string]any{
				"ref": map[string]any{"hash": "cid123"},
			},
		},
	}
	f := e.ExtractFields(rec)
	assert.Contains(t, f.Image, "author1")
	assert.Contains(t, f.Image, "cid123")
}

func TestExtractFields_HeuristicsForUnknownLexicon(t *testing.T) {
	e := testEngine(t)
	rec := Record{
		Value: map[string]any{
			"$type":       "custom.unseen",
			"title":       "T",
			"description": "D",
		},
	}
	f := e.ExtractFields(rec)
	assert.Equal(t, "T", f.Title)
	assert.Equal(t, "D", f.Content)

	conf := e.ExtractionConfidence(rec)
	assert.NotEqual(t, ConfidenceHigh, conf)
}

func TestExtractFields_ImageFallsBackToFirstOfImages(t *testing.T) {
	e := testEngine(t)
	f := e.ExtractFields(Record{
		Value: map[string]any{"images": []any{"a.jpg"}},
	})
	assert.Equal(t, "a.jpg", f.Image)
	require.Len(t, f.Images, 1)
	assert.Equal(t, "a.jpg", f.Images[0].URL)
}

func TestExtractFields_Totality(t *testing.T) {
	e := testEngine(t)
	records := []Record{
		{},
		{Value: map[string]any{}},
		{Value: map[string]any{
			"title":  map[string]any{"nested": true},
			"images": "not-a-list",
			"tags":   123.0,
			"date":   true,
			"items":  42.0,
		}},
		{Value: map[string]any{"$type": "app.bsky.feed.post", "embed": "garbage"}},
	}
	for _, rec := range records {
		f := e.ExtractFields(rec)
		assert.NotNil(t, f.Images)
		assert.NotNil(t, f.Tags)
	}
}

func TestExtractFields_Deterministic(t *testing.T) {
	e := testEngine(t)
	rec := Record{
		URI: "at://did:plc:abc/app.bsky.feed.post/rkey",
		CID: "bafyabc",
		Value: map[string]any{
			"$type":     "app.bsky.feed.post",
			"text":      "hello world",
			"createdAt": "2024-01-01T00:00:00Z",
			"tags":      []any{"one", "two"},
		},
	}
	assert.Equal(t, e.ExtractFields(rec), e.ExtractFields(rec))
}

func TestExtractFields_SchemaPrecedesHeuristics(t *testing.T) {
	r := NewRegistry()
	r.Register("custom.note", Schema{
		Fields: map[Field]FieldMapping{
			FieldContent: Exact("text"),
		},
	})
	e := NewEngine(r)

	// Both the schema name and a heuristic name are present; the
	// schema mapping must win.
	f := e.ExtractFields(Record{
		Type: "custom.note",
		Value: map[string]any{
			"text":    "from schema",
			"content": "from heuristics",
		},
	})
	assert.Equal(t, "from schema", f.Content)
}

func TestExtractFields_ExtractorFailureFallsThrough(t *testing.T) {
	r := NewRegistry()
	r.Register("custom.flaky", Schema{
		Fields: map[Field]FieldMapping{
			FieldTitle:   Extractor(func(Record) (any, error) { return nil, errors.New("boom") }),
			FieldContent: Extractor(func(Record) (any, error) { panic("worse") }),
		},
	})
	e := NewEngine(r)

	f := e.ExtractFields(Record{
		Type: "custom.flaky",
		Value: map[string]any{
			"title": "heuristic title",
			"text":  "heuristic content",
		},
	})
	assert.Equal(t, "heuristic title", f.Title)
	assert.Equal(t, "heuristic content", f.Content)
}

func TestExtractFields_CandidateOrder(t *testing.T) {
	r := NewRegistry()
	r.Register("custom.ordered", Schema{
		Fields: map[Field]FieldMapping{
			FieldTitle: Candidates("headline", "title"),
		},
	})
	e := NewEngine(r)

	f := e.ExtractFields(Record{
		Type:  "custom.ordered",
		Value: map[string]any{"headline": "first", "title": "second"},
	})
	assert.Equal(t, "first", f.Title)

	f = e.ExtractFields(Record{
		Type:  "custom.ordered",
		Value: map[string]any{"title": "second"},
	})
	assert.Equal(t, "second", f.Title)
}

func TestExtractFields_DottedPathCandidates(t *testing.T) {
	r := NewRegistry()
	r.Register("custom.nested", Schema{
		Fields: map[Field]FieldMapping{
			FieldURL:   Exact("embed.external.uri"),
			FieldTitle: Exact("pages[1].heading"),
		},
	})
	e := NewEngine(r)

	f := e.ExtractFields(Record{
		Type: "custom.nested",
		Value: map[string]any{
			"embed": map[string]any{
				"external": map[string]any{"uri": "https://example.com"},
			},
			"pages": []any{
				map[string]any{"heading": "zero"},
				map[string]any{"heading": "one"},
			},
		},
	})
	assert.Equal(t, "https://example.com", f.URL)
	assert.Equal(t, "one", f.Title)
}

func TestExtractFields_BskyPostEmbeds(t *testing.T) {
	e := testEngine(t)
	rec := Record{
		URI: "at://did:plc:abc/app.bsky.feed.post/3k2a",
		Value: map[string]any{
			"$type":     "app.bsky.feed.post",
			"text":      "look at this",
			"createdAt": "2024-06-01T12:00:00Z",
			"embed": map[string]any{
				"$type": "app.bsky.embed.images",
				"images": []any{
					map[string]any{
						"alt": "a cat",
						"image": map[string]any{
							"$type": "blob",
							"ref":   map[string]any{"$link": "bafycat"},
						},
					},
				},
			},
		},
	}
	f := e.ExtractFields(rec)
	assert.Equal(t, "look at this", f.Content)
	require.Len(t, f.Images, 1)
	assert.Equal(t, "a cat", f.Images[0].Alt)
	assert.Contains(t, f.Images[0].URL, "did:plc:abc")
	assert.Contains(t, f.Images[0].URL, "bafycat")
	assert.Equal(t, f.Images[0].URL, f.Image)
}

func TestExtractFields_IncompleteBlobOmitted(t *testing.T) {
	e := testEngine(t)

	// Missing hash.
	f := e.ExtractFields(Record{
		URI:   "at://did:plc:abc/custom.pic/1",
		Value: map[string]any{"image": map[string]any{"ref": map[string]any{}}},
	})
	assert.Empty(t, f.Image)

	// Missing author identity.
	f = e.ExtractFields(Record{
		Value: map[string]any{"image": map[string]any{"ref": map[string]any{"$link": "bafyx"}}},
	})
	assert.Empty(t, f.Image)
}

func TestExtractFields_ViewStyleImages(t *testing.T) {
	e := testEngine(t)
	f := e.ExtractFields(Record{
		Value: map[string]any{
			"image":  map[string]any{"thumb": "https://cdn/thumb.jpg", "fullsize": "https://cdn/full.jpg"},
			"banner": map[string]any{"url": "https://cdn/banner.jpg"},
		},
	})
	assert.Equal(t, "https://cdn/thumb.jpg", f.Image)
	assert.Equal(t, "https://cdn/banner.jpg", f.Banner)
}

func TestExtractFields_CustomCDNTemplate(t *testing.T) {
	e := NewEngine(DefaultRegistry(),
		WithCDNTemplate("https://media.example/{did}/{cid}"))
	f := e.ExtractFields(Record{
		URI:   "at://did:plc:xyz/custom.pic/1",
		Value: map[string]any{"image": map[string]any{"$type": "blob", "ref": map[string]any{"$link": "bafyq"}}},
	})
	assert.Equal(t, "https://media.example/did:plc:xyz/bafyq", f.Image)
}

func TestExtractFields_EnvelopeMetadata(t *testing.T) {
	e := testEngine(t)
	rec := Record{
		URI: "at://did:plc:abc/custom.thing/1",
		CID: "bafymeta",
		Value: map[string]any{
			"$type": "custom.thing",
			"title": "t",
		},
	}
	f := e.ExtractFields(rec)
	assert.Equal(t, "custom.thing", f.Type)
	assert.Equal(t, rec.URI, f.URI)
	assert.Equal(t, "bafymeta", f.CID)
	assert.Equal(t, rec.Value, f.Raw)
}

func TestExtractFields_LongContentUntouched(t *testing.T) {
	e := testEngine(t)
	long := strings.Repeat("x", 600)
	f := e.ExtractFields(Record{Value: map[string]any{"content": long}})
	assert.Equal(t, long, f.Content)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   any
		want bool
	}{
		{"2024-12-20T10:00:00Z", true},
		{"2024-12-20T10:00:00.123Z", true},
		{"2024-12-20", true},
		{"not-a-date", false},
		{"", false},
		{true, false},
		{float64(1700000000), true},
		{float64(1700000000000), true},
		{float64(-5), false},
	}
	for _, tc := range cases {
		got := parseDate(tc.in)
		if tc.want {
			assert.NotNil(t, got, "input %v", tc.in)
		} else {
			assert.Nil(t, got, "input %v", tc.in)
		}
	}

	sec := parseDate(float64(1700000000))
	ms := parseDate(float64(1700000000000))
	require.NotNil(t, sec)
	require.NotNil(t, ms)
	assert.True(t, sec.Equal(*ms))

	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	got := parseDate(now)
	require.NotNil(t, got)
	assert.True(t, got.Equal(now))
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]any{
		"a",
		map[string]any{"name": "b"},
		map[string]any{"tag": "c"},
		map[string]any{"val": "d"},
		"  ",
		map[string]any{"other": "e"},
		42.0,
	})
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)

	assert.Equal(t, []string{"solo"}, normalizeTags("solo"))
	assert.Nil(t, normalizeTags(42.0))
	assert.Nil(t, normalizeTags([]any{}))
}

func TestResolvePath(t *testing.T) {
	root := map[string]any{
		"a": map[string]any{
			"b": []any{
				"zero",
				map[string]any{"c": "deep"},
			},
		},
	}
	assert.Equal(t, "zero", resolvePath(root, "a.b[0]"))
	assert.Equal(t, "deep", resolvePath(root, "a.b[1].c"))
	assert.Nil(t, resolvePath(root, "a.b[5]"))
	assert.Nil(t, resolvePath(root, "a.x.y"))
	assert.Nil(t, resolvePath(root, "a.b[bad]"))
}
