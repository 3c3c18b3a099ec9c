package lexicon

import (
	"strconv"
	"strings"
)

// resolvePath walks a dotted, bracket-indexed path ("a.b", "a.b[2].c")
// through decoded JSON. It returns nil when any step is missing or the
// shape does not match the path.
func resolvePath(root any, path string) any {
	cur := root
	for _, seg := range strings.Split(path, ".") {
		name, idxs, ok := splitSegment(seg)
		if !ok {
			return nil
		}
		if name != "" {
			m, ok := cur.(map[string]any)
			if !ok {
				return nil
			}
			cur = m[name]
		}
		for _, i := range idxs {
			list, ok := cur.([]any)
			if !ok || i < 0 || i >= len(list) {
				return nil
			}
			cur = list[i]
		}
	}
	return cur
}

// splitSegment parses one path segment into a property name and any
// trailing bracket indices ("b[2][0]" -> "b", [2, 0]).
func splitSegment(seg string) (string, []int, bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		return seg, nil, seg != ""
	}
	name := seg[:open]
	rest := seg[open:]
	var idxs []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return "", nil, false
		}
		i, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		idxs = append(idxs, i)
		rest = rest[end+1:]
	}
	return name, idxs, true
}

// isPath reports whether a candidate name needs path resolution rather
// than a plain property lookup.
func isPath(name string) bool {
	return strings.ContainsAny(name, ".[")
}
