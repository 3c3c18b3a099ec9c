package lexicon

import "strings"

// DefaultCDNTemplate is the blob URL template used when no external
// content-delivery configuration is supplied.
const DefaultCDNTemplate = "https://cdn.bsky.app/img/feed_fullsize/plain/{did}/{cid}@jpeg"

// resolveImage turns one of the accepted media representations into a
// fetchable URL: a plain string, an object carrying url/thumb/fullsize,
// a view-style wrapper, or a content-addressed blob reference. Anything
// unresolvable comes back "".
func (e *Engine) resolveImage(rec Record, v any) string {
	switch img := v.(type) {
	case string:
		return img
	case map[string]any:
		for _, key := range []string{"url", "thumb", "fullsize"} {
			if s, ok := img[key].(string); ok && s != "" {
				return s
			}
		}
		if t, _ := img["$type"].(string); t == "blob" || img["ref"] != nil || img["cid"] != nil {
			return e.resolveBlob(rec, img)
		}
		// View-style wrappers nest the real reference under "image".
		if inner, ok := img["image"]; ok {
			return e.resolveImage(rec, inner)
		}
	}
	return ""
}

// resolveImages normalizes an image list to {url, alt} pairs, dropping
// entries that cannot be resolved. A single non-list value is treated
// as a one-element list.
func (e *Engine) resolveImages(rec Record, v any) []ImageRef {
	list, ok := v.([]any)
	if !ok {
		list = []any{v}
	}
	out := []ImageRef{}
	for _, item := range list {
		alt := ""
		if m, ok := item.(map[string]any); ok {
			alt, _ = m["alt"].(string)
		}
		if url := e.resolveImage(rec, item); url != "" {
			out = append(out, ImageRef{URL: url, Alt: alt})
		}
	}
	return out
}

// resolveBlob builds a content-delivery URL for a blob reference. The
// reference must carry a valid CID and the record must carry an author
// identifier in its URI; otherwise the blob is unrenderable and the
// field stays absent.
func (e *Engine) resolveBlob(rec Record, blob map[string]any) string {
	var cid string
	switch ref := blob["ref"].(type) {
	case string:
		cid = ref
	case map[string]any:
		if s, ok := ref["$link"].(string); ok {
			cid = s
		} else if s, ok := ref["hash"].(string); ok {
			// Some producers embed the bare hash instead of a $link.
			cid = s
		}
	}
	if cid == "" {
		// Legacy blob format carries the CID directly.
		cid, _ = blob["cid"].(string)
	}
	// Hashes are passed through as opaque identifiers rather than
	// validated as canonical CIDs; they only need to be URL-safe.
	if cid == "" || strings.ContainsAny(cid, "/ \t\n") {
		return ""
	}
	did := rec.AuthorID()
	if did == "" {
		return ""
	}
	r := strings.NewReplacer("{did}", did, "{cid}", cid)
	return r.Replace(e.cdn)
}
