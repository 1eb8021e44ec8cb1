package pathspec

import (
	"strings"
)

// MatchesTest reports whether a test, identified by its enclosing suite
// names (outermost first) and its name, is selected by the spec.
//
// A spec without suite path and test name selects every test of its
// file. Otherwise the suite path must ordered-match the suite names and
// the test name, when given, must occur in the test's name, ignoring
// case. Mismatches are ordinary false results, never errors.
func MatchesTest(suiteNames []string, testName string, spec Spec) bool {
	if len(spec.SuitePath) == 0 && spec.TestName == "" {
		return true
	}

	if len(spec.SuitePath) > 0 && !matchesSuitePath(suiteNames, spec.SuitePath) {
		return false
	}

	if spec.TestName != "" && !strings.Contains(strings.ToLower(testName), strings.ToLower(spec.TestName)) {
		return false
	}

	return true
}

// matchesSuitePath walks the suite names with a single forward-only
// cursor, looking for each path element in order as a case-insensitive
// substring. Suite levels not named by the path may be skipped, so
// deeply nested suites match without naming every level. An element
// that exhausts the remaining suite names fails the whole match.
func matchesSuitePath(suiteNames []string, path []string) bool {
	cursor := 0
	for _, element := range path {
		element = strings.ToLower(element)

		found := false
		for i := cursor; i < len(suiteNames); i++ {
			if strings.Contains(strings.ToLower(suiteNames[i]), element) {
				cursor = i + 1
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
