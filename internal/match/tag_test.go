package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testsieve/testsieve/internal/filter"
)

func TestTagSet(t *testing.T) {
	t.Parallel()

	t.Run("ValidTags", func(t *testing.T) {
		t.Parallel()

		set, err := NewTagSet("@smoke", "@fast")
		require.NoError(t, err)
		assert.Equal(t, TagSet{"@smoke": {}, "@fast": {}}, set)
		assert.Equal(t, []string{"@fast", "@smoke"}, set.Strings())
	})

	t.Run("ValidationStopsAtFirstViolation", func(t *testing.T) {
		t.Parallel()

		set, err := NewTagSet("@smoke", "slow", "flaky")
		assert.Nil(t, set)

		var tagErr *TagError
		require.ErrorAs(t, err, &tagErr)
		assert.Equal(t, "slow", tagErr.Tag)
		assert.Equal(t, DeclaredTag, tagErr.Origin)
		assert.EqualError(t, err, `invalid tag "slow": tags must start with '@', did you mean "@slow"?`)
	})

	t.Run("CollectTagsInheritsSuiteTags", func(t *testing.T) {
		t.Parallel()

		set, err := CollectTags([]string{"@fast"}, []string{"@smoke"}, []string{"@auth", "@smoke"})
		require.NoError(t, err)
		assert.Equal(t, []string{"@auth", "@fast", "@smoke"}, set.Strings())
	})

	t.Run("CollectTagsValidatesInheritedTags", func(t *testing.T) {
		t.Parallel()

		_, err := CollectTags([]string{"@fast"}, []string{"smoke"})

		var tagErr *TagError
		require.ErrorAs(t, err, &tagErr)
		assert.Equal(t, "smoke", tagErr.Tag)
	})
}

func TestTagMatcher(t *testing.T) {
	t.Parallel()

	t.Run("ExactCaseSensitiveMembership", func(t *testing.T) {
		t.Parallel()

		matcher := NewTagMatcher(TagSet{"@Smoke": {}})

		matched, err := matcher.Match("@Smoke")
		assert.NoError(t, err)
		assert.True(t, matched)

		matched, err = matcher.Match("@smoke")
		assert.NoError(t, err)
		assert.False(t, matched, "tag matching is case-sensitive")
	})

	t.Run("IdentifierWithoutPrefixFailsEvenForEmptySet", func(t *testing.T) {
		t.Parallel()

		matcher := NewTagMatcher(TagSet{})

		matched, err := matcher.Match("smoke")
		assert.False(t, matched)

		var tagErr *TagError
		require.ErrorAs(t, err, &tagErr)
		assert.Equal(t, "smoke", tagErr.Tag)
		assert.Equal(t, FilterIdentifier, tagErr.Origin)
	})

	t.Run("MalformedDeclaredTagFailsEveryCall", func(t *testing.T) {
		t.Parallel()

		matcher := NewTagMatcher(TagSet{"smoke": {}})

		for i := 0; i < 2; i++ {
			_, err := matcher.Match("@smoke")

			var tagErr *TagError
			require.ErrorAs(t, err, &tagErr)
			assert.Equal(t, DeclaredTag, tagErr.Origin)
		}
	})
}

func TestTagFiltering(t *testing.T) {
	t.Parallel()

	// Compiled expressions evaluated against per-test tag sets, the
	// primary use of the whole engine.
	tests := []struct {
		name       string
		expression string
		tags       []string
		want       bool
	}{
		{"SmokeNotSlowMatches", "@smoke and not @slow", []string{"@smoke", "@fast"}, true},
		{"SmokeNotSlowRejectsSlow", "@smoke and not @slow", []string{"@smoke", "@slow"}, false},
		{"GroupedOrMatches", "(@smoke or @regression) and not @flaky", []string{"@regression"}, true},
		{"GroupedOrRejectsFlaky", "(@smoke or @regression) and not @flaky", []string{"@smoke", "@flaky"}, false},
		{"EmptyExpressionMatchesAnything", "  ", []string{"@whatever"}, true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			expr, err := filter.Compile(test.expression)
			require.NoError(t, err)

			set, err := NewTagSet(test.tags...)
			require.NoError(t, err)

			matched, err := expr.Evaluate(NewTagMatcher(set))
			assert.NoError(t, err)
			assert.Equal(t, test.want, matched)
		})
	}

	t.Run("MalformedIdentifierSurfacesFromEvaluate", func(t *testing.T) {
		t.Parallel()

		expr, err := filter.Compile("@smoke and slow")
		require.NoError(t, err)

		set, err := NewTagSet("@smoke", "@slow")
		require.NoError(t, err)

		_, err = expr.Evaluate(NewTagMatcher(set))
		var tagErr *TagError
		require.ErrorAs(t, err, &tagErr)
		assert.Equal(t, "slow", tagErr.Tag)
		assert.Equal(t, FilterIdentifier, tagErr.Origin)
	})
}
