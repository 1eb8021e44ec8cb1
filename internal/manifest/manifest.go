package manifest

import (
	"os"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Manifest describes the test suites of a project as the host test
// runner enumerated them: per spec file a tree of suites, each carrying
// its declared tags, with the tests at every level.
type Manifest struct {
	Files []File `yaml:"files"`
}

// File is one spec file with its top-level suites and tests.
type File struct {
	Path   string  `yaml:"path"`
	Suites []Suite `yaml:"suites"`
	Tests  []Test  `yaml:"tests"`
}

// Suite is one suite scope. Its tags are inherited by every test and
// suite nested inside it.
type Suite struct {
	Name   string   `yaml:"name"`
	Tags   []string `yaml:"tags"`
	Suites []Suite  `yaml:"suites"`
	Tests  []Test   `yaml:"tests"`
}

// Test is a single test with its own declared tags.
type Test struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags"`
}

// FromYAMLFile reads a manifest from the YAML file at the given path.
func FromYAMLFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read manifest file")
	}

	manifest := new(Manifest)
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, errors.Wrap(err, "cannot parse manifest YAML")
	}

	return manifest, nil
}

// WalkFunc visits one test. suiteNames are the names of the enclosing
// suites, outermost first, and tags is the test's flattened tag list,
// ancestor suite tags followed by the test's own. Returning an error
// aborts the walk.
type WalkFunc func(file string, suiteNames []string, testName string, tags []string) error

// Walk visits every test of every file in declaration order, streaming
// the flat (suiteNames, testName, tags) triples that selection
// consumers work with.
func (m *Manifest) Walk(fn WalkFunc) error {
	for _, file := range m.Files {
		for _, test := range file.Tests {
			if err := fn(file.Path, nil, test.Name, test.Tags); err != nil {
				return err
			}
		}

		for _, suite := range file.Suites {
			if err := walkSuite(file.Path, nil, nil, suite, fn); err != nil {
				return err
			}
		}
	}

	return nil
}

func walkSuite(file string, suiteNames []string, inherited []string, suite Suite, fn WalkFunc) error {
	names := append(append([]string{}, suiteNames...), suite.Name)
	tags := append(append([]string{}, inherited...), suite.Tags...)

	for _, test := range suite.Tests {
		flat := append(append([]string{}, tags...), test.Tags...)
		if err := fn(file, names, test.Name, flat); err != nil {
			return err
		}
	}

	for _, nested := range suite.Suites {
		if err := walkSuite(file, names, tags, nested, fn); err != nil {
			return err
		}
	}

	return nil
}
