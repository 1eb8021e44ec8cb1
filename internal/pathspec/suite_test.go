package pathspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesTest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		spec       string
		suiteNames []string
		testName   string
		want       bool
	}{
		{"FileOnlySelectsEverything", "f.ts", []string{"Any", "Suite"}, "any test", true},
		{"SuiteSubstring", "f.ts::Auth::login", []string{"User Authentication"}, "should login successfully", true},
		{"SuiteMismatch", "f.ts::Auth::login", []string{"Other"}, "should login successfully", false},
		{"TestNameSubstring", "f.ts::Auth::LOGIN", []string{"Auth"}, "should login", true},
		{"TestNameMismatch", "f.ts::Auth::logout", []string{"Auth"}, "should login", false},
		{"OrderedWithSkips", "f.ts::A::B::t", []string{"A", "X", "B"}, "some t here", true},
		{"ReversedOrderFails", "f.ts::A::B::t", []string{"B", "A"}, "some t here", false},
		{"SameSuiteNotReused", "f.ts::A::A::t", []string{"A"}, "t", false},
		{"EveryLevelNeedNotBeNamed", "f.ts::Root::Leaf::t", []string{"Root", "Middle", "Inner", "Leaf"}, "a t", true},
		{"SuitePathExhaustsSuiteNames", "f.ts::A::B::C::t", []string{"A", "B"}, "t", false},
		{"CaseInsensitiveSuites", "f.ts::auth::t", []string{"AUTH"}, "t", true},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			got := MatchesTest(test.suiteNames, test.testName, Parse(test.spec))
			assert.Equal(t, test.want, got)
		})
	}

	// A single trailing component is stored as a suite-path element and
	// matched strictly as one. That conveniently also selects tests
	// sitting directly in a suite-less file when the host reports the
	// file itself as the sole suite scope, but it does not fall back to
	// test-name matching when suite matching fails.
	t.Run("SingleTrailingComponentAmbiguity", func(t *testing.T) {
		t.Parallel()

		spec := Parse("f.ts::login")
		assert.Equal(t, []string{"login"}, spec.SuitePath)
		assert.Empty(t, spec.TestName)

		assert.True(t, MatchesTest([]string{"Login Flow"}, "whatever", spec),
			"matches as a suite substring")
		assert.False(t, MatchesTest([]string{"Other"}, "should login", spec),
			"no fallback to test-name matching")
		assert.False(t, MatchesTest(nil, "should login", spec),
			"no suites to match against means no match")
	})
}
