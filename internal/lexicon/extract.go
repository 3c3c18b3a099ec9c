package lexicon

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// ImageRef is one resolved image together with its accessible label.
type ImageRef struct {
	URL string `json:"url"`
	Alt string `json:"alt,omitempty"`
}

// Fields is the canonical, presentation-ready view of a record. Images
// and Tags are always non-nil; other fields are zero when absent.
type Fields struct {
	Title   string         `json:"title,omitempty"`
	Content string         `json:"content,omitempty"`
	URL     string         `json:"url,omitempty"`
	Image   string         `json:"image,omitempty"`
	Images  []ImageRef     `json:"images"`
	Banner  string         `json:"banner,omitempty"`
	Date    *time.Time     `json:"date,omitempty"`
	Author  string         `json:"author,omitempty"`
	Tags    []string       `json:"tags"`
	Items   []any          `json:"items,omitempty"`
	Type    string         `json:"type,omitempty"`
	URI     string         `json:"uri,omitempty"`
	CID     string         `json:"cid,omitempty"`
	Raw     map[string]any `json:"-"`
}

// heuristicNames is the universal candidate table consulted when a
// lexicon has no schema, or its schema yields nothing for a field.
var heuristicNames = map[Field][]string{
	FieldTitle:   {"title", "name", "displayName", "subject", "heading"},
	FieldContent: {"content", "text", "description", "message", "body", "summary", "bio"},
	FieldURL:     {"url", "uri", "link", "href", "website"},
	FieldImage:   {"image", "avatar", "thumbnail", "picture", "photo"},
	FieldImages:  {"images", "photos", "media", "attachments", "blobs"},
	FieldBanner:  {"banner", "coverImage", "cover", "header", "headerImage"},
	FieldDate:    {"createdAt", "indexedAt", "publishedAt", "updatedAt", "timestamp", "date"},
	FieldAuthor:  {"author", "creator", "by", "from"},
	FieldTags:    {"tags", "labels", "categories", "topics", "keywords"},
	FieldItems:   {"items", "links", "entries", "records", "children"},
}

// Engine resolves records into canonical fields, a confidence level and
// a layout suggestion. It is a pure transformation over an immutable
// registry, so a single Engine can serve any number of goroutines.
type Engine struct {
	registry *Registry
	cdn      string
	log      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used to report swallowed extractor
// failures. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithCDNTemplate sets the URL template used to resolve blob references,
// with {did} and {cid} placeholders.
func WithCDNTemplate(t string) Option {
	return func(e *Engine) { e.cdn = t }
}

// NewEngine creates an extraction engine over the given registry.
func NewEngine(reg *Registry, opts ...Option) *Engine {
	e := &Engine{
		registry: reg,
		cdn:      DefaultCDNTemplate,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// HasSchema reports whether a schema is registered for the lexicon.
func (e *Engine) HasSchema(nsid string) bool {
	return e.registry.Has(nsid)
}

// IsKnownLexicon reports whether the lexicon is on the known allow-list.
func (e *Engine) IsKnownLexicon(nsid string) bool {
	return e.registry.Known(nsid)
}

// ExtractFields resolves every canonical field for the record. It never
// fails: the worst case for a hostile or vacuous record is a sparse
// result with empty Images and Tags lists.
func (e *Engine) ExtractFields(rec Record) Fields {
	typeID := rec.TypeID()
	f := Fields{
		Images: []ImageRef{},
		Tags:   []string{},
		Type:   typeID,
		URI:    rec.URI,
		CID:    rec.CID,
		Raw:    rec.Value,
	}
	for _, field := range fieldOrder {
		v, ok := e.extractField(rec, field, typeID)
		if !ok {
			continue
		}
		switch field {
		case FieldTitle:
			f.Title = asString(v)
		case FieldContent:
			f.Content = asString(v)
		case FieldURL:
			f.URL = asString(v)
		case FieldImage:
			f.Image = e.resolveImage(rec, v)
		case FieldImages:
			f.Images = e.resolveImages(rec, v)
		case FieldBanner:
			f.Banner = e.resolveImage(rec, v)
		case FieldDate:
			f.Date = parseDate(v)
		case FieldAuthor:
			f.Author = asString(v)
		case FieldTags:
			if tags := normalizeTags(v); tags != nil {
				f.Tags = tags
			}
		case FieldItems:
			f.Items = asList(v)
		}
	}
	if f.Image == "" && len(f.Images) > 0 {
		f.Image = f.Images[0].URL
	}
	return f
}

// extractField resolves one field: schema mapping first, then the
// universal heuristic table, then absent.
func (e *Engine) extractField(rec Record, field Field, typeID string) (any, bool) {
	if sch, ok := e.registry.Lookup(typeID); ok {
		if m, ok := sch.Fields[field]; ok {
			if v, ok := e.applyMapping(rec, m, field, typeID); ok {
				return v, true
			}
		}
	}
	if v, ok := lookupNames(rec, heuristicNames[field]); ok {
		return v, true
	}
	return nil, false
}

// applyMapping dispatches on the mapping variant. Extractor failures
// are logged and reported as absent so the heuristic fallback runs.
func (e *Engine) applyMapping(rec Record, m FieldMapping, field Field, typeID string) (any, bool) {
	switch m.kind {
	case mappingExact:
		return lookupNames(rec, []string{m.name})
	case mappingCandidates:
		return lookupNames(rec, m.candidates)
	case mappingExtractor:
		v, err := runExtractor(m.fn, rec)
		if err != nil {
			e.log.Warn("schema extractor failed",
				zap.String("lexicon", typeID),
				zap.String("field", string(field)),
				zap.Error(err))
			return nil, false
		}
		if isEmpty(v) {
			return nil, false
		}
		return v, true
	default:
		return nil, false
	}
}

// runExtractor invokes a custom extractor, converting panics into
// errors so no schema entry can take the engine down.
func runExtractor(fn ExtractorFunc, rec Record) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("extractor panic: %v", r)
		}
	}()
	return fn(rec)
}

// lookupNames tries each candidate name in order against the record's
// top-level properties, then the value payload, then (for dotted or
// indexed names) a path walk over the whole record.
func lookupNames(rec Record, names []string) (any, bool) {
	for _, name := range names {
		switch name {
		case "uri":
			if rec.URI != "" {
				return rec.URI, true
			}
		case "cid":
			if rec.CID != "" {
				return rec.CID, true
			}
		}
		if v, ok := rec.Value[name]; ok && !isEmpty(v) {
			return v, true
		}
		if isPath(name) {
			if v := resolvePath(rec.Value, name); !isEmpty(v) {
				return v, true
			}
			if v := resolvePath(rec.pathRoot(), name); !isEmpty(v) {
				return v, true
			}
		}
	}
	return nil, false
}

// isEmpty reports whether a value contributes nothing: nil, empty
// string, or an empty list/object.
func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

// asString coerces scalar JSON values to a display string; structured
// values have no string form and come back empty.
func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

// asList coerces a value into a list, wrapping a single non-empty
// non-list value.
func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case nil:
		return nil
	default:
		if isEmpty(v) {
			return nil
		}
		return []any{v}
	}
}
