package github

import "strings"

// hasNextLink reports whether a Link header advertises a "next" relation.
//
// The parsing is deliberately tolerant and mirrors what GitHub emits:
//
//	<https://api.github.com/user/1/repos?page=2>; rel="next", <...?page=5>; rel="last"
//
// Each comma-separated segment is split on ';' and its parameters on '='.
// A rel value containing "next" (quotes optional) wins. Malformed segments are skipped.
func hasNextLink(header string) bool {
	if strings.TrimSpace(header) == "" {
		return false
	}

	for _, segment := range strings.Split(header, ",") {
		params := strings.Split(segment, ";")
		if len(params) < 2 {
			continue
		}
		for _, param := range params[1:] {
			name, value, ok := strings.Cut(param, "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(name), "rel") {
				continue
			}
			value = strings.Trim(strings.TrimSpace(value), `"'`)
			if strings.Contains(value, "next") {
				return true
			}
		}
	}
	return false
}
