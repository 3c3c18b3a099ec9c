package lexicon

import (
	"strings"
	"time"

	"github.com/bluesky-social/indigo/atproto/syntax"
)

// dateLayouts are fallbacks for date strings that are not the ISO 8601
// profile atproto records normally carry.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	"January 2, 2006",
}

// parseDate interprets a candidate value as a calendar date. Anything
// unparseable yields nil; no invalid time is ever returned.
func parseDate(v any) *time.Time {
	switch t := v.(type) {
	case time.Time:
		return &t
	case string:
		if t == "" {
			return nil
		}
		if dt, err := syntax.ParseDatetimeLenient(t); err == nil {
			tm := dt.Time()
			return &tm
		}
		for _, layout := range dateLayouts {
			if tm, err := time.Parse(layout, t); err == nil {
				return &tm
			}
		}
	case float64:
		return epochTime(t)
	case int64:
		return epochTime(float64(t))
	case int:
		return epochTime(float64(t))
	}
	return nil
}

// epochTime interprets a numeric timestamp, distinguishing seconds from
// milliseconds by magnitude.
func epochTime(n float64) *time.Time {
	if n <= 0 {
		return nil
	}
	var tm time.Time
	if n > 1e12 {
		tm = time.UnixMilli(int64(n)).UTC()
	} else {
		tm = time.Unix(int64(n), 0).UTC()
	}
	return &tm
}

// normalizeTags flattens a tag list to non-empty strings. Items may be
// plain strings or objects keyed by name, tag or val (the shapes label
// records use in the wild).
func normalizeTags(v any) []string {
	var list []any
	switch t := v.(type) {
	case []any:
		list = t
	case string:
		list = []any{t}
	default:
		return nil
	}
	out := []string{}
	for _, item := range list {
		var s string
		switch t := item.(type) {
		case string:
			s = t
		case map[string]any:
			for _, key := range []string{"name", "tag", "val"} {
				if v, ok := t[key].(string); ok && v != "" {
					s = v
					break
				}
			}
		}
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
