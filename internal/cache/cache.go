package cache

import (
	lru "github.com/hashicorp/golang-lru"

	"spores/internal/lexicon"
)

// Extractor memoizes ExtractFields per record identity (uri@cid), for
// callers that re-render the same records repeatedly. Records without
// an identity bypass the cache: their results cannot be keyed safely.
type Extractor struct {
	engine *lexicon.Engine
	lru    *lru.Cache
}

// New wraps an engine with an LRU of the given size.
func New(engine *lexicon.Engine, size int) (*Extractor, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Extractor{engine: engine, lru: c}, nil
}

// ExtractFields returns the cached result for the record's identity,
// computing and storing it on a miss.
func (x *Extractor) ExtractFields(rec lexicon.Record) lexicon.Fields {
	key := recordKey(rec)
	if key == "" {
		return x.engine.ExtractFields(rec)
	}
	if v, ok := x.lru.Get(key); ok {
		return v.(lexicon.Fields)
	}
	f := x.engine.ExtractFields(rec)
	x.lru.Add(key, f)
	return f
}

// Len reports the number of cached extractions.
func (x *Extractor) Len() int {
	return x.lru.Len()
}

func recordKey(rec lexicon.Record) string {
	if rec.URI == "" {
		return ""
	}
	return rec.URI + "@" + rec.CID
}
