package pathspec

// Filter is the subset of all parsed specs that applies to one spec
// file. It is cheap to build and meant to be rebuilt per file, then
// reused for every test in that file.
type Filter struct {
	SpecFile string
	Specs    []Spec
}

// NewFilter collects the specs whose file pattern matches the given
// file. It returns nil when none do; whether that excludes the file or
// leaves it unrestricted is the caller's policy.
func NewFilter(specFile string, specs []Spec) *Filter {
	var matching []Spec
	for _, spec := range specs {
		if MatchesFile(specFile, spec) {
			matching = append(matching, spec)
		}
	}

	if len(matching) == 0 {
		return nil
	}

	return &Filter{SpecFile: specFile, Specs: matching}
}

// Matches reports whether any of the filter's specs selects the test,
// a disjunction across all specs sharing the file.
func (f *Filter) Matches(suiteNames []string, testName string) bool {
	for _, spec := range f.Specs {
		if MatchesTest(suiteNames, testName, spec) {
			return true
		}
	}

	return false
}
