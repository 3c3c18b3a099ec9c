package lexicon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults_ActorProfile(t *testing.T) {
	e := testEngine(t)
	rec := Record{
		URI: "at://did:plc:abc/app.bsky.actor.profile/self",
		Value: map[string]any{
			"$type":       "app.bsky.actor.profile",
			"displayName": "Vincent",
			"description": "gardener of small internets",
			"avatar": map[string]any{
				"$type": "blob",
				"ref":   map[string]any{"$link": "bafyavatar"},
			},
			"banner": map[string]any{
				"$type": "blob",
				"ref":   map[string]any{"$link": "bafybanner"},
			},
		},
	}
	f := e.ExtractFields(rec)
	assert.Equal(t, "Vincent", f.Title)
	assert.Equal(t, "gardener of small internets", f.Content)
	assert.Contains(t, f.Image, "bafyavatar")
	assert.Contains(t, f.Banner, "bafybanner")

	s := e.SuggestLayout(rec)
	assert.Equal(t, "profile", s.Layout)
}

func TestDefaults_WhitewindEntry(t *testing.T) {
	e := testEngine(t)
	f := e.ExtractFields(Record{
		Value: map[string]any{
			"$type":     "com.whtwnd.blog.entry",
			"title":     "On spores",
			"content":   "Long form writing.",
			"createdAt": "2024-03-01T00:00:00Z",
		},
	})
	assert.Equal(t, "On spores", f.Title)
	assert.Equal(t, "Long form writing.", f.Content)
	require.NotNil(t, f.Date)
}

func TestDefaults_LeafletDocument(t *testing.T) {
	e := testEngine(t)
	rec := Record{
		Value: map[string]any{
			"$type": "pub.leaflet.document",
			"title": "A leaflet",
			"pages": []any{
				map[string]any{
					"blocks": []any{
						map[string]any{"block": map[string]any{"plaintext": "first block"}},
						map[string]any{"block": map[string]any{"plaintext": "second block"}},
						map[string]any{"block": map[string]any{"$type": "pub.leaflet.blocks.image"}},
					},
				},
			},
		},
	}
	f := e.ExtractFields(rec)
	assert.Equal(t, "A leaflet", f.Title)
	assert.Equal(t, "first block\n\nsecond block", f.Content)
	assert.Equal(t, "leaflet", e.SuggestLayout(rec).Layout)
}

func TestDefaults_LinkatCards(t *testing.T) {
	e := testEngine(t)
	f := e.ExtractFields(Record{
		Value: map[string]any{
			"$type": "blue.linkat.board",
			"cards": []any{
				map[string]any{"url": "https://one.example", "text": "one"},
				map[string]any{"url": "https://two.example", "text": "two"},
			},
		},
	})
	require.Len(t, f.Items, 2)
}

func TestDefaults_SmokeSignalEvent(t *testing.T) {
	e := testEngine(t)
	f := e.ExtractFields(Record{
		Value: map[string]any{
			"$type":       "events.smokesignal.calendar.event",
			"name":        "Garden meetup",
			"description": "Bring seeds.",
			"startsAt":    "2025-05-01T18:00:00Z",
		},
	})
	assert.Equal(t, "Garden meetup", f.Title)
	assert.Equal(t, "Bring seeds.", f.Content)
	require.NotNil(t, f.Date)
	assert.Equal(t, 2025, f.Date.Year())
}

func TestRecord_AuthorID(t *testing.T) {
	cases := map[string]string{
		"at://did:plc:abc/app.bsky.feed.post/1": "did:plc:abc",
		"scheme://author1/x/rkey":               "author1",
		"":                                      "",
	}
	for uri, want := range cases {
		assert.Equal(t, want, Record{URI: uri}.AuthorID(), "uri %q", uri)
	}
}

func TestRecord_TypeID(t *testing.T) {
	assert.Equal(t, "a.b.c", Record{Type: "x", Value: map[string]any{"$type": "a.b.c"}}.TypeID())
	assert.Equal(t, "x", Record{Type: "x", Value: map[string]any{}}.TypeID())
}
