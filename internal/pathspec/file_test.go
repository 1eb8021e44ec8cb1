package pathspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		path    string
		pattern string
		want    bool
	}{
		{"GlobAnyDirectory", "cypress/e2e/auth/login.cy.ts", "**/*.cy.ts", true},
		{"GlobTopLevelFile", "login.cy.ts", "**/*.cy.ts", true},
		{"GlobAnchoredPrefixMismatch", "e2e/login.cy.ts", "cypress/e2e/**/*.cy.ts", false},
		{"GlobAnchoredPrefixMatch", "cypress/e2e/auth/login.cy.ts", "cypress/e2e/**/*.cy.ts", true},
		{"GlobZeroSegments", "cypress/e2e/login.cy.ts", "cypress/e2e/**/*.cy.ts", true},
		{"StarStaysInSegment", "e2e/auth/login.cy.ts", "e2e/*.cy.ts", false},
		{"QuestionMarkSingleChar", "spec1.ts", "spec?.ts", true},
		{"QuestionMarkNotSlash", "a/b.ts", "a?b.ts", false},
		{"GlobIsCaseInsensitive", "Cypress/E2E/Login.cy.ts", "cypress/**/login.cy.ts", true},
		{"ExactMatch", "e2e/login.cy.ts", "e2e/login.cy.ts", true},
		{"PathSuffix", "repo/cypress/e2e/login.cy.ts", "e2e/login.cy.ts", true},
		{"BareFilename", "cypress/e2e/login.cy.ts", "login.cy.ts", true},
		{"PlainMismatch", "cypress/e2e/login.cy.ts", "logout.cy.ts", false},
		{"PlainIsCaseSensitive", "cypress/e2e/Login.cy.ts", "login.cy.ts", false},
		{"PartialSegmentIsNoSuffix", "cypress/e2e/xlogin.cy.ts", "login.cy.ts", false},
		{"BackslashesNormalized", `cypress\e2e\login.cy.ts`, "cypress/e2e/login.cy.ts", true},
		{"BackslashPattern", "cypress/e2e/login.cy.ts", `cypress\e2e\login.cy.ts`, true},
		{"EmptyPatternMatchesEverything", "any/file.ts", "", true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := MatchesFile(test.path, Spec{FilePattern: test.pattern})
			assert.Equal(t, test.want, got, "path %q pattern %q", test.path, test.pattern)
		})
	}

	t.Run("MalformedGlobFallsBackToContainment", func(t *testing.T) {
		t.Parallel()

		// An unclosed character class is not a valid glob; the stripped
		// remainder "login" is checked for containment instead.
		assert.True(t, MatchesFile("e2e/login.cy.ts", Spec{FilePattern: "login[*"}))
		assert.False(t, MatchesFile("e2e/logout.cy.ts", Spec{FilePattern: "login[*"}))
	})
}
