package lexicon

// Field identifies one of the canonical semantic fields the engine extracts.
type Field string

const (
	FieldTitle   Field = "title"
	FieldContent Field = "content"
	FieldURL     Field = "url"
	FieldImage   Field = "image"
	FieldImages  Field = "images"
	FieldBanner  Field = "banner"
	FieldDate    Field = "date"
	FieldAuthor  Field = "author"
	FieldTags    Field = "tags"
	FieldItems   Field = "items"
)

// fieldOrder is the order fields are resolved in ExtractFields.
var fieldOrder = []Field{
	FieldTitle, FieldContent, FieldURL, FieldImage, FieldImages,
	FieldBanner, FieldDate, FieldAuthor, FieldTags, FieldItems,
}

// Confidence expresses how much trust a caller should place in the
// extracted fields when deciding whether to auto-render.
type Confidence int

const (
	ConfidenceUnset Confidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "unset"
	}
}

// MarshalJSON renders the level as its name so CLI output stays readable.
func (c Confidence) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// ExtractorFunc is a custom extractor attached to a schema field. It
// receives the full record and may fail; failures are swallowed by the
// engine and treated as "no value".
type ExtractorFunc func(Record) (any, error)

type mappingKind int

const (
	mappingExact mappingKind = iota + 1
	mappingCandidates
	mappingExtractor
)

// FieldMapping is a tagged variant describing how a schema resolves one
// field: a single property name, an ordered list of candidate names, or
// a custom extractor function. Exactly one case is active.
type FieldMapping struct {
	kind       mappingKind
	name       string
	candidates []string
	fn         ExtractorFunc
}

// Exact maps a field to a single property name.
func Exact(name string) FieldMapping {
	return FieldMapping{kind: mappingExact, name: name}
}

// Candidates maps a field to an ordered list of property names; the
// first non-empty match wins.
func Candidates(names ...string) FieldMapping {
	return FieldMapping{kind: mappingCandidates, candidates: names}
}

// Extractor maps a field to a custom extractor function.
func Extractor(fn ExtractorFunc) FieldMapping {
	return FieldMapping{kind: mappingExtractor, fn: fn}
}

// Schema describes how records of one lexicon map onto the canonical
// fields. Confidence, when set, overrides the scorer; Layout, when set,
// short-circuits layout selection.
type Schema struct {
	Fields     map[Field]FieldMapping
	Confidence Confidence
	Layout     string
}

// Registry is the read-only table of lexicon schemas plus the allow-list
// of lexicons considered well understood even without a schema. Build it
// once at startup and hand it to NewEngine; it must not be mutated after
// that, which is what makes the engine safe for concurrent use.
type Registry struct {
	schemas map[string]Schema
	known   map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		schemas: make(map[string]Schema),
		known:   make(map[string]struct{}),
	}
}

// Register adds a schema for a lexicon. Registered lexicons are always
// part of the known set.
func (r *Registry) Register(nsid string, s Schema) {
	r.schemas[nsid] = s
}

// MarkKnown adds lexicons to the allow-list without attaching a schema.
// Useful for types that are familiar but too sparse to map (likes,
// follows, reposts).
func (r *Registry) MarkKnown(nsids ...string) {
	for _, n := range nsids {
		r.known[n] = struct{}{}
	}
}

// Lookup returns the schema for a lexicon, if one is registered.
func (r *Registry) Lookup(nsid string) (Schema, bool) {
	s, ok := r.schemas[nsid]
	return s, ok
}

// Has reports whether a schema is registered for the lexicon.
func (r *Registry) Has(nsid string) bool {
	_, ok := r.schemas[nsid]
	return ok
}

// Known reports whether the lexicon is in the allow-list. Registered
// lexicons are implicitly known, so the two tables cannot drift in the
// direction that would break the confidence floor.
func (r *Registry) Known(nsid string) bool {
	if _, ok := r.schemas[nsid]; ok {
		return true
	}
	_, ok := r.known[nsid]
	return ok
}
