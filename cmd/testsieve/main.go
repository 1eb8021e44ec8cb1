package main

import (
	"fmt"
	"os"

	"github.com/icinga/icingadb/pkg/logging"
	"github.com/testsieve/testsieve/internal"
	"github.com/testsieve/testsieve/internal/daemon"
	"github.com/testsieve/testsieve/internal/manifest"
	"github.com/testsieve/testsieve/internal/selection"
	"github.com/testsieve/testsieve/pkg/service"
	"go.uber.org/zap"
)

func main() {
	flags, conf := daemon.ParseFlagsAndConfig()

	logs, err := logging.NewLogging(
		"testsieve",
		conf.Logging.Level,
		conf.Logging.Output,
		conf.Logging.Options,
		conf.Logging.Interval,
	)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "cannot initialize logging:", err)
		os.Exit(daemon.ExitFailure)
	}

	logger := logs.GetLogger()

	selector, err := selection.NewSelector(selection.Filters{
		Tags:  conf.Tags,
		Tests: conf.Tests,
		Specs: conf.Specs,
	}, logs.GetChildLogger("selection").SugaredLogger)
	if err != nil {
		logger.Fatalw("cannot compile filters", zap.Error(err))
	}

	if flags.Serve {
		logger.Infof("Serving selection requests on stdin (%s)", internal.Version.Version)

		svc := newSelectionService(selector, logs.GetChildLogger("service").SugaredLogger)
		if err := service.RunService(svc, os.Stdin, os.Stdout); err != nil {
			logger.Fatalw("service has finished with an error", zap.Error(err))
		}
		return
	}

	if flags.Manifest == "" {
		logger.Fatal("no manifest given, use -m/--manifest or --serve")
	}

	suites, err := manifest.FromYAMLFile(flags.Manifest)
	if err != nil {
		logger.Fatalw("cannot load manifest", zap.Error(err))
	}

	total := 0
	_ = suites.Walk(func(string, []string, string, []string) error {
		total++
		return nil
	})

	selected, err := selector.Select(suites)
	if err != nil {
		logger.Fatalw("selection failed", zap.Error(err))
	}

	logger.Infof("Selected %d of %d tests", len(selected), total)

	for _, test := range selected {
		fmt.Println(test)
	}
}
