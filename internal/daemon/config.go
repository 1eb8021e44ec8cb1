package daemon

import (
	"fmt"
	"io"
	"os"

	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
	icingadbconfig "github.com/icinga/icingadb/pkg/config"
	"github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
	"github.com/testsieve/testsieve/internal"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// ConfigFile is the YAML configuration of the testsieve binary.
// Filter strings left empty place no restriction.
type ConfigFile struct {
	Tags    string                 `yaml:"tags"`
	Tests   string                 `yaml:"tests"`
	Specs   string                 `yaml:"specs"`
	Logging icingadbconfig.Logging `yaml:"logging"`
}

// Validate implements the config.Validator interface.
// Validates the entire configuration on startup.
func (c *ConfigFile) Validate() error {
	return c.Logging.Validate()
}

// Flags defines the CLI flags supported by testsieve.
// Filter flags override their config file counterparts.
type Flags struct {
	// Version decides whether to just print the version and exit.
	Version bool `long:"version" description:"print version and exit"`
	// Config is the path to the config file.
	Config   string `short:"c" long:"config" description:"path to config file"`
	Tags     string `long:"tags" description:"boolean tag filter expression, e.g. '@smoke and not @slow'"`
	Tests    string `long:"tests" description:"boolean test name filter expression"`
	Specs    string `long:"spec" description:"comma-separated file::suite::test selectors"`
	Manifest string `short:"m" long:"manifest" description:"path to the suite manifest to filter"`
	Serve    bool   `long:"serve" description:"serve selection requests on stdin/stdout"`
}

// FromYAMLFile loads and validates the config file at the given path.
// Defaults are applied first, so an empty file is a valid configuration.
func FromYAMLFile(path string) (*ConfigFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open config file")
	}
	defer func() { _ = f.Close() }()

	c := new(ConfigFile)
	if err := defaults.Set(c); err != nil {
		return nil, errors.Wrap(err, "cannot set config defaults")
	}

	d := yaml.NewDecoder(f, yaml.DisallowUnknownField())
	// goccy signals an empty document as io.EOF.
	if err := d.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "cannot parse config YAML")
	}

	if err := c.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return c, nil
}

// ParseFlagsAndConfig parses the CLI flags provided to the executable
// and, if -c/--config was given, loads the config file. Filter flags
// override the file's values.
//
// Prints any error during parsing or config loading to os.Stderr and
// exits, otherwise returns the parsed flags and the effective config.
func ParseFlagsAndConfig() (*Flags, *ConfigFile) {
	f := new(Flags)
	if _, err := flags.NewParser(f, flags.Default).Parse(); err != nil {
		if flagErr, ok := err.(*flags.Error); ok && flagErr.Type == flags.ErrHelp {
			os.Exit(ExitSuccess)
		}

		// go-flags already printed the error.
		os.Exit(ExitFailure)
	}

	if f.Version {
		internal.Version.Print("testsieve")
		os.Exit(ExitSuccess)
	}

	conf := new(ConfigFile)
	if f.Config != "" {
		loaded, err := FromYAMLFile(f.Config)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "cannot load config:", err)
			os.Exit(ExitFailure)
		}
		conf = loaded
	} else {
		if err := defaults.Set(conf); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "cannot set config defaults:", err)
			os.Exit(ExitFailure)
		}
		if err := conf.Validate(); err != nil {
			_, _ = fmt.Fprintln(os.Stderr, "invalid configuration:", err)
			os.Exit(ExitFailure)
		}
	}

	if f.Tags != "" {
		conf.Tags = f.Tags
	}
	if f.Tests != "" {
		conf.Tests = f.Tests
	}
	if f.Specs != "" {
		conf.Specs = f.Specs
	}

	return f, conf
}
