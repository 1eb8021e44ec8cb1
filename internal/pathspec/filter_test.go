package pathspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	t.Parallel()

	t.Run("KeepsOnlySpecsMatchingTheFile", func(t *testing.T) {
		t.Parallel()

		specs := ParseList("login.cy.ts::Auth,logout.cy.ts::Logout")
		require.Len(t, specs, 2)

		f := NewFilter("cypress/e2e/login.cy.ts", specs)
		require.NotNil(t, f)
		assert.Equal(t, "cypress/e2e/login.cy.ts", f.SpecFile)
		require.Len(t, f.Specs, 1)
		assert.Equal(t, "login.cy.ts", f.Specs[0].FilePattern)
	})

	t.Run("NilWhenNoSpecMatches", func(t *testing.T) {
		t.Parallel()

		specs := ParseList("login.cy.ts::Auth")
		assert.Nil(t, NewFilter("cypress/e2e/settings.cy.ts", specs))
	})

	t.Run("MatchesIsADisjunctionAcrossSpecs", func(t *testing.T) {
		t.Parallel()

		specs := ParseList("login.cy.ts::Auth,login.cy.ts::Recovery")
		f := NewFilter("cypress/e2e/login.cy.ts", specs)
		require.NotNil(t, f)

		assert.True(t, f.Matches([]string{"Auth"}, "t"))
		assert.True(t, f.Matches([]string{"Recovery"}, "t"))
		assert.False(t, f.Matches([]string{"Other"}, "t"))
	})

	t.Run("SuiteAndTestDecision", func(t *testing.T) {
		t.Parallel()

		specs := ParseList("login.cy.ts::User Authentication::should login")
		f := NewFilter("cypress/e2e/login.cy.ts", specs)
		require.NotNil(t, f)

		assert.True(t, f.Matches([]string{"User Authentication"}, "should login successfully"))
		assert.False(t, f.Matches([]string{"Other"}, "should login successfully"))
	})
}
