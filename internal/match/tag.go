package match

import (
	"fmt"
	"strings"

	"github.com/testsieve/testsieve/internal/filter"
	"golang.org/x/exp/slices"
)

// TagOrigin is a type used for grouping where an invalid tag came from.
type TagOrigin string

const (
	// DeclaredTag marks a tag declared on a test or suite.
	DeclaredTag TagOrigin = "tag"
	// FilterIdentifier marks an identifier used in a tags filter expression.
	FilterIdentifier TagOrigin = "filter expression identifier"
)

// TagError is returned for tags missing the required '@' prefix,
// either declared on a test or suite or used in a filter expression.
type TagError struct {
	Tag    string
	Origin TagOrigin
}

func (e *TagError) Error() string {
	return fmt.Sprintf("invalid %s %q: tags must start with '@', did you mean %q?", e.Origin, e.Tag, "@"+e.Tag)
}

// ValidateTag returns a TagError if the given tag lacks the '@' prefix.
func ValidateTag(tag string, origin TagOrigin) error {
	if !strings.HasPrefix(tag, "@") {
		return &TagError{Tag: tag, Origin: origin}
	}

	return nil
}

// TagSet is a set of '@'-prefixed test tags.
type TagSet map[string]struct{}

// NewTagSet validates the given tags and collects them into a set.
// Validation stops at the first tag missing the '@' prefix.
func NewTagSet(tags ...string) (TagSet, error) {
	set := make(TagSet, len(tags))
	for _, tag := range tags {
		if err := ValidateTag(tag, DeclaredTag); err != nil {
			return nil, err
		}

		set[tag] = struct{}{}
	}

	return set, nil
}

// CollectTags aggregates a test's own tags with the tags inherited from
// its enclosing suites, outermost first, into one validated set.
func CollectTags(ownTags []string, suiteTags ...[]string) (TagSet, error) {
	var all []string
	for _, tags := range suiteTags {
		all = append(all, tags...)
	}

	return NewTagSet(append(all, ownTags...)...)
}

// Strings returns the tags in sorted order, for stable output.
func (t TagSet) Strings() []string {
	tags := make([]string, 0, len(t))
	for tag := range t {
		tags = append(tags, tag)
	}

	slices.Sort(tags)
	return tags
}

// NewTagMatcher returns a matcher that reports whether an expression
// identifier names one of the given tags. Matching is exact and
// case-sensitive set membership.
//
// Both the tags and the identifier must carry the '@' prefix. The
// prefix is checked on every call rather than up front, so malformed
// declarations surface even against an empty tag set and callers must
// expect filtering to fail loudly.
func NewTagMatcher(tags TagSet) filter.Matcher {
	return filter.MatcherFunc(func(ident string) (bool, error) {
		for tag := range tags {
			if err := ValidateTag(tag, DeclaredTag); err != nil {
				return false, err
			}
		}

		if err := ValidateTag(ident, FilterIdentifier); err != nil {
			return false, err
		}

		_, ok := tags[ident]
		return ok, nil
	})
}
