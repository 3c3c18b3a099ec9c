package lexicon

import (
	"strings"

	"github.com/bluesky-social/indigo/atproto/syntax"
)

// Record is a single stored record: a lexicon type, its decoded value
// payload, and optionally the at:// URI and CID that address it.
type Record struct {
	Type  string         `json:"$type,omitempty"`
	Value map[string]any `json:"value"`
	URI   string         `json:"uri,omitempty"`
	CID   string         `json:"cid,omitempty"`
}

// TypeID returns the lexicon key for the record, preferring the $type
// discriminator embedded in the value payload.
func (r Record) TypeID() string {
	if t, ok := r.Value["$type"].(string); ok && t != "" {
		return t
	}
	return r.Type
}

// AuthorID returns the account identifier embedded in the record's URI,
// or "" when the URI is absent or unparseable.
func (r Record) AuthorID() string {
	if r.URI == "" {
		return ""
	}
	if uri, err := syntax.ParseATURI(r.URI); err == nil {
		return uri.Authority().String()
	}
	// Non-canonical URIs still follow scheme://{author}/{type}/{rkey}.
	rest := r.URI
	if i := strings.Index(rest, "://"); i >= 0 {
		rest = rest[i+3:]
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

// pathRoot is the view of the whole record that dotted-path lookups
// resolve against.
func (r Record) pathRoot() map[string]any {
	root := map[string]any{"value": r.Value}
	if r.URI != "" {
		root["uri"] = r.URI
	}
	if r.CID != "" {
		root["cid"] = r.CID
	}
	if t := r.TypeID(); t != "" {
		root["$type"] = t
	}
	return root
}
