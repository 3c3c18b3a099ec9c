package lexicon

// ExtractionConfidence scores how much to trust extraction for this
// record. Callers use it to decide between auto-rendering and asking a
// human to pick a layout.
func (e *Engine) ExtractionConfidence(rec Record) Confidence {
	return e.score(rec, e.ExtractFields(rec))
}

// score evaluates the confidence rules in strict priority order: schema
// override, then schema presence, then field-count thresholds. A record
// whose lexicon has a registered schema can never score low.
func (e *Engine) score(rec Record, f Fields) Confidence {
	typeID := rec.TypeID()
	if sch, ok := e.registry.Lookup(typeID); ok {
		if sch.Confidence != ConfidenceUnset {
			return sch.Confidence
		}
		return ConfidenceHigh
	}
	n := meaningfulCount(f)
	known := e.registry.Known(typeID)
	switch {
	case known && n >= 3:
		return ConfidenceHigh
	case known && n >= 2, n >= 3:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// meaningfulCount is the number of signal-bearing fields extraction
// actually filled in. The thresholds in score are tuned against this
// exact set of fields.
func meaningfulCount(f Fields) int {
	n := 0
	if f.Title != "" {
		n++
	}
	if f.Content != "" {
		n++
	}
	if f.Image != "" {
		n++
	}
	if len(f.Images) > 0 {
		n++
	}
	if f.URL != "" {
		n++
	}
	if f.Date != nil {
		n++
	}
	if f.Author != "" {
		n++
	}
	if len(f.Tags) > 0 {
		n++
	}
	return n
}
