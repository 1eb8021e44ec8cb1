package pathspec

import (
	"strings"
)

// Spec is a single parsed `file::suite::test` selector.
//
// FilePattern is always the first '::'-delimited component and may be
// empty or contain glob characters. SuitePath holds the suite
// components in order, outermost first. TestName is empty when the
// selector names no test; an empty test-name pattern matches every
// name either way, so no separate "absent" marker is needed.
type Spec struct {
	FilePattern string
	SuitePath   []string
	TestName    string
}

// Parse splits a single selector on the '::' delimiter.
//
// A selector with exactly one trailing component, like "login.cy.ts::Auth",
// is ambiguous: "Auth" could name a suite or a test. It is kept as a
// one-element suite path and resolved by the permissive suite matcher,
// which also covers tests sitting directly in a suite-less file.
func Parse(spec string) Spec {
	components := strings.Split(spec, "::")

	parsed := Spec{FilePattern: components[0]}
	switch rest := components[1:]; len(rest) {
	case 0:
	case 1:
		parsed.SuitePath = rest
	default:
		parsed.SuitePath = rest[:len(rest)-1]
		parsed.TestName = rest[len(rest)-1]
	}

	return parsed
}

// ParseList parses a comma-separated list of selectors, as supplied on
// the command line. Entries are trimmed and empty ones dropped, so an
// empty or whitespace-only input yields no specs.
func ParseList(specs string) []Spec {
	var parsed []Spec
	for _, entry := range strings.Split(specs, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parsed = append(parsed, Parse(entry))
	}

	return parsed
}
