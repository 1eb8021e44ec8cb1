package selection

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/testsieve/testsieve/internal/filter"
	"github.com/testsieve/testsieve/internal/manifest"
	"github.com/testsieve/testsieve/internal/match"
	"github.com/testsieve/testsieve/internal/pathspec"
	"go.uber.org/zap"
)

// Filters carries the raw filter strings a run was configured with.
// Every field is optional; an empty string places no restriction.
type Filters struct {
	// Tags is a boolean expression over '@'-prefixed tags.
	Tags string
	// Tests is a boolean expression over test name substrings.
	Tests string
	// Specs is a comma-separated list of file::suite::test selectors.
	Specs string
}

// Selector decides which tests of a suite tree should run.
//
// It holds the compiled filter expressions and an explicit stack of the
// suites currently entered. Callers walk their suite tree, push and pop
// suites via EnterSuite and LeaveSuite, and ask ShouldRun for every
// test they encounter. A Selector must not be shared between
// goroutines without external locking.
type Selector struct {
	tagsExpr  *filter.Expression
	testsExpr *filter.Expression
	specs     []pathspec.Spec

	logger *zap.SugaredLogger

	currentFile  string
	pathFilter   *pathspec.Filter
	fileExcluded bool
	stack        []suiteFrame
}

type suiteFrame struct {
	name string
	tags []string
}

// NewSelector parses the path specs and compiles the filter
// expressions. An unparsable expression fails the whole run here
// instead of being silently ignored, since running the wrong tests is
// worse than not running any.
func NewSelector(filters Filters, logger *zap.SugaredLogger) (*Selector, error) {
	s := &Selector{
		specs:  pathspec.ParseList(filters.Specs),
		logger: logger,
	}

	var err error
	if s.tagsExpr, err = filter.Compile(filters.Tags); err != nil {
		return nil, errors.Wrap(err, "cannot compile tags filter")
	}
	if s.testsExpr, err = filter.Compile(filters.Tests); err != nil {
		return nil, errors.Wrap(err, "cannot compile tests filter")
	}

	return s, nil
}

// BeginFile resets the per-file state and builds the path filter for
// the given spec file. When path specs are configured and none of them
// matches the file, every test in it is excluded.
func (s *Selector) BeginFile(specFile string) {
	s.currentFile = specFile
	s.stack = s.stack[:0]
	s.pathFilter = nil
	s.fileExcluded = false

	if len(s.specs) == 0 {
		return
	}

	s.pathFilter = pathspec.NewFilter(specFile, s.specs)
	if s.pathFilter == nil {
		s.fileExcluded = true
		s.logger.Debugw("No path spec matches file, excluding it", zap.String("file", specFile))
	}
}

// IncludesFile reports whether any configured path spec selects the
// given file, for file-level pre-filtering. Without path specs every
// file is included.
func (s *Selector) IncludesFile(specFile string) bool {
	return len(s.specs) == 0 || pathspec.NewFilter(specFile, s.specs) != nil
}

// EnterSuite pushes a suite and its declared tags onto the suite stack.
func (s *Selector) EnterSuite(name string, tags ...string) {
	s.stack = append(s.stack, suiteFrame{name: name, tags: tags})
}

// LeaveSuite pops the innermost suite off the suite stack.
func (s *Selector) LeaveSuite() {
	if len(s.stack) > 0 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// SuiteNames returns the names of the currently entered suites,
// outermost first.
func (s *Selector) SuiteNames() []string {
	names := make([]string, len(s.stack))
	for i, frame := range s.stack {
		names[i] = frame.name
	}

	return names
}

// ShouldRun decides whether the given test, declared with the given own
// tags inside the currently entered suites, should execute.
//
// The configured filters are conjoined in a fixed order: path specs,
// then the tags expression, then the tests expression; the first
// failing filter settles the decision. Unconfigured filters pass
// unconditionally. The returned error is a tag validation error, which
// callers should surface as a configuration problem.
func (s *Selector) ShouldRun(testName string, tags []string) (bool, error) {
	if s.fileExcluded {
		return false, nil
	}

	if s.pathFilter != nil && !s.pathFilter.Matches(s.SuiteNames(), testName) {
		return false, nil
	}

	if s.tagsExpr.Rule() != nil {
		inherited := make([][]string, 0, len(s.stack))
		for _, frame := range s.stack {
			inherited = append(inherited, frame.tags)
		}

		tagSet, err := match.CollectTags(tags, inherited...)
		if err != nil {
			return false, err
		}

		matched, err := s.tagsExpr.Evaluate(match.NewTagMatcher(tagSet))
		if err != nil {
			return false, err
		}
		if !matched {
			s.logger.Debugw("Test excluded by tags filter",
				zap.String("test", testName), zap.Strings("tags", tagSet.Strings()))
			return false, nil
		}
	}

	matched, err := s.testsExpr.Evaluate(match.NewNameMatcher(testName))
	if err != nil {
		return false, err
	}
	if !matched {
		s.logger.Debugw("Test excluded by tests filter", zap.String("test", testName))
	}

	return matched, nil
}

// SelectedTest is one test that passed every configured filter.
type SelectedTest struct {
	File      string
	SuitePath []string
	Name      string
}

// String renders the test in selector syntax, file::suite::test.
func (t SelectedTest) String() string {
	parts := append([]string{t.File}, t.SuitePath...)
	return strings.Join(append(parts, t.Name), "::")
}

// Select runs every test of the manifest through the configured
// filters and returns the included ones in declaration order.
func (s *Selector) Select(m *manifest.Manifest) ([]SelectedTest, error) {
	var selected []SelectedTest
	for i := range m.Files {
		fromFile, err := s.SelectFile(&m.Files[i])
		if err != nil {
			return nil, err
		}

		selected = append(selected, fromFile...)
	}

	return selected, nil
}

// SelectFile filters a single manifest file, driving the suite stack
// through the file's suite tree.
func (s *Selector) SelectFile(file *manifest.File) ([]SelectedTest, error) {
	s.BeginFile(file.Path)

	var selected []SelectedTest
	appendTest := func(test *manifest.Test) error {
		run, err := s.ShouldRun(test.Name, test.Tags)
		if err != nil {
			return err
		}

		if run {
			selected = append(selected, SelectedTest{
				File:      file.Path,
				SuitePath: s.SuiteNames(),
				Name:      test.Name,
			})
		}

		return nil
	}

	for i := range file.Tests {
		if err := appendTest(&file.Tests[i]); err != nil {
			return nil, err
		}
	}

	var walk func(suite *manifest.Suite) error
	walk = func(suite *manifest.Suite) error {
		s.EnterSuite(suite.Name, suite.Tags...)
		defer s.LeaveSuite()

		for i := range suite.Tests {
			if err := appendTest(&suite.Tests[i]); err != nil {
				return err
			}
		}

		for i := range suite.Suites {
			if err := walk(&suite.Suites[i]); err != nil {
				return err
			}
		}

		return nil
	}

	for i := range file.Suites {
		if err := walk(&file.Suites[i]); err != nil {
			return nil, err
		}
	}

	return selected, nil
}
