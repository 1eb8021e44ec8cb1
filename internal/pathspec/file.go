package pathspec

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchesFile reports whether the spec's file pattern selects the given
// path. Backslashes are normalized to forward slashes on both sides.
//
// Patterns containing glob characters match case-insensitively over
// the whole path: `**` spans path segments, `*` and `?` stop at a
// slash. Patterns without glob characters match the full path, a
// `/`-separated path suffix, or the bare file name. An empty pattern
// selects every file.
func MatchesFile(path string, spec Spec) bool {
	candidate := strings.ReplaceAll(path, `\`, "/")
	pattern := strings.ReplaceAll(spec.FilePattern, `\`, "/")

	if pattern == "" {
		return true
	}

	if strings.ContainsAny(pattern, "*?") {
		matched, err := doublestar.Match(strings.ToLower(pattern), strings.ToLower(candidate))
		if err != nil {
			// Malformed patterns, e.g. an unclosed character class,
			// degrade to a containment check with the glob characters
			// stripped rather than failing the run.
			stripped := strings.ToLower(stripGlob(pattern))
			return stripped == "" || strings.Contains(strings.ToLower(candidate), stripped)
		}

		return matched
	}

	if candidate == pattern || strings.HasSuffix(candidate, "/"+pattern) {
		return true
	}

	base := candidate
	if i := strings.LastIndex(candidate, "/"); i >= 0 {
		base = candidate[i+1:]
	}

	return base == pattern
}

func stripGlob(pattern string) string {
	return strings.Map(func(r rune) rune {
		if r == '*' || r == '?' || r == '[' || r == ']' {
			return -1
		}

		return r
	}, pattern)
}
