package lexicon

// Layout names the engine suggests. Renderers that receive a name they
// do not recognize must fall back to LayoutDefault.
const (
	LayoutImage = "image"
	LayoutLink  = "link"
	LayoutLinks = "links"
	LayoutList  = "list"
	LayoutPost  = "post"
	LayoutCard  = "card"

	LayoutDefault = LayoutCard
)

// Suggestion pairs a layout name with the confidence of the extraction
// that produced it.
type Suggestion struct {
	Layout     string     `json:"layout"`
	Confidence Confidence `json:"confidence"`
}

// SuggestLayout picks a presentation layout for the record. A schema's
// preferred layout short-circuits the heuristics; otherwise the first
// matching rule of a fixed decision list wins.
func (e *Engine) SuggestLayout(rec Record) Suggestion {
	f := e.ExtractFields(rec)
	conf := e.score(rec, f)
	if sch, ok := e.registry.Lookup(rec.TypeID()); ok && sch.Layout != "" {
		return Suggestion{Layout: sch.Layout, Confidence: conf}
	}
	switch {
	case (f.Image != "" || len(f.Images) > 0) && len(f.Content) < 100:
		return Suggestion{Layout: LayoutImage, Confidence: conf}
	case f.URL != "" && len(f.Content) < 200:
		return Suggestion{Layout: LayoutLink, Confidence: conf}
	case len(f.Items) > 0:
		if itemHasLink(f.Items[0]) {
			return Suggestion{Layout: LayoutLinks, Confidence: conf}
		}
		return Suggestion{Layout: LayoutList, Confidence: conf}
	case len(f.Content) > 500:
		return Suggestion{Layout: LayoutPost, Confidence: conf}
	default:
		return Suggestion{Layout: LayoutCard, Confidence: conf}
	}
}

// itemHasLink reports whether a list item exposes a URL-shaped field,
// which is what separates a link collection from a plain list.
func itemHasLink(item any) bool {
	m, ok := item.(map[string]any)
	if !ok {
		return false
	}
	for _, key := range []string{"url", "href", "uri", "link"} {
		if s, ok := m[key].(string); ok && s != "" {
			return true
		}
	}
	return false
}
