package lexicon

import "strings"

// DefaultRegistry builds the schema table for the lexicons the site
// renders precisely. Everything else goes through the heuristic table.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register("app.bsky.feed.post", Schema{
		Fields: map[Field]FieldMapping{
			FieldContent: Exact("text"),
			FieldDate:    Exact("createdAt"),
			FieldImages:  Extractor(postEmbedImages),
			FieldURL:     Candidates("embed.external.uri", "embed.media.external.uri"),
			FieldTags:    Exact("tags"),
		},
	})

	r.Register("app.bsky.actor.profile", Schema{
		Fields: map[Field]FieldMapping{
			FieldTitle:   Exact("displayName"),
			FieldContent: Exact("description"),
			FieldImage:   Exact("avatar"),
			FieldBanner:  Exact("banner"),
		},
		Layout: "profile",
	})

	r.Register("app.bsky.graph.list", Schema{
		Fields: map[Field]FieldMapping{
			FieldTitle:   Exact("name"),
			FieldContent: Exact("description"),
			FieldImage:   Exact("avatar"),
			FieldDate:    Exact("createdAt"),
		},
		Layout: LayoutList,
	})

	r.Register("app.bsky.feed.generator", Schema{
		Fields: map[Field]FieldMapping{
			FieldTitle:   Exact("displayName"),
			FieldContent: Exact("description"),
			FieldImage:   Exact("avatar"),
			FieldDate:    Exact("createdAt"),
		},
	})

	r.Register("com.whtwnd.blog.entry", Schema{
		Fields: map[Field]FieldMapping{
			FieldTitle:   Exact("title"),
			FieldContent: Exact("content"),
			FieldDate:    Candidates("publishedAt", "createdAt"),
		},
		Layout: LayoutPost,
	})

	r.Register("blue.linkat.board", Schema{
		Fields: map[Field]FieldMapping{
			FieldItems: Extractor(linkatCards),
		},
		Layout: LayoutLinks,
	})

	// Single-emoji status records render fine but carry little signal,
	// so the override keeps them out of the high bucket.
	r.Register("xyz.statusphere.status", Schema{
		Fields: map[Field]FieldMapping{
			FieldContent: Exact("status"),
			FieldDate:    Exact("createdAt"),
		},
		Confidence: ConfidenceMedium,
	})

	r.Register("events.smokesignal.calendar.event", Schema{
		Fields: map[Field]FieldMapping{
			FieldTitle:   Exact("name"),
			FieldContent: Candidates("description", "text"),
			FieldDate:    Candidates("startsAt", "createdAt"),
		},
	})

	r.Register("pub.leaflet.document", Schema{
		Fields: map[Field]FieldMapping{
			FieldTitle:   Exact("title"),
			FieldContent: Extractor(leafletText),
			FieldDate:    Candidates("publishedAt", "createdAt"),
		},
		Layout: "leaflet",
	})

	// Familiar but too sparse to map; listed so the scorer treats them
	// as understood rather than alien.
	r.MarkKnown(
		"app.bsky.feed.like",
		"app.bsky.feed.repost",
		"app.bsky.graph.follow",
		"app.bsky.graph.block",
		"app.bsky.actor.status",
		"chat.bsky.actor.declaration",
	)

	return r
}

// postEmbedImages digs the image list out of a post's embed, covering
// both plain image embeds and record-with-media embeds.
func postEmbedImages(rec Record) (any, error) {
	embed, ok := rec.Value["embed"].(map[string]any)
	if !ok {
		return nil, nil
	}
	if imgs, ok := embed["images"].([]any); ok {
		return imgs, nil
	}
	if media, ok := embed["media"].(map[string]any); ok {
		if imgs, ok := media["images"].([]any); ok {
			return imgs, nil
		}
	}
	return nil, nil
}

// linkatCards exposes a link board's cards as items.
func linkatCards(rec Record) (any, error) {
	return rec.Value["cards"], nil
}

// leafletText flattens a leaflet document's pages into plain text by
// collecting the plaintext of every block.
func leafletText(rec Record) (any, error) {
	pages, ok := rec.Value["pages"].([]any)
	if !ok {
		return nil, nil
	}
	var parts []string
	for _, p := range pages {
		page, ok := p.(map[string]any)
		if !ok {
			continue
		}
		blocks, ok := page["blocks"].([]any)
		if !ok {
			continue
		}
		for _, b := range blocks {
			wrapper, ok := b.(map[string]any)
			if !ok {
				continue
			}
			block, ok := wrapper["block"].(map[string]any)
			if !ok {
				block = wrapper
			}
			if text, ok := block["plaintext"].(string); ok && text != "" {
				parts = append(parts, text)
			}
		}
	}
	if len(parts) == 0 {
		return nil, nil
	}
	return strings.Join(parts, "\n\n"), nil
}
