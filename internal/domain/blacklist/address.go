package blacklist

import "strings"

// NormalizeAddress reduces a possibly display-name-wrapped address such as
// `"Jane Doe" <jane@example.com>` to its bare form. Inputs without an angle
// bracket pair are returned unchanged, as is anything the heuristic cannot
// handle (a lone bracket). This is deliberately not an RFC 5322 parser —
// upstream-supplied addresses are assumed well formed.
func NormalizeAddress(raw string) string {
	start := strings.Index(raw, "<")
	end := strings.LastIndex(raw, ">")
	if start < 0 || end < 0 || end <= start {
		return raw
	}
	return raw[start+1 : end]
}
