package main

import (
	"sync"

	"github.com/testsieve/testsieve/internal"
	"github.com/testsieve/testsieve/internal/selection"
	"github.com/testsieve/testsieve/pkg/service"
	"go.uber.org/zap"
)

// selectionService serves a Selector over the service protocol.
// Requests carry the full suite context, so the suite stack is rebuilt
// per request; the mutex keeps that rebuild atomic should the transport
// ever deliver concurrently.
type selectionService struct {
	mu       sync.Mutex
	selector *selection.Selector
	logger   *zap.SugaredLogger
}

func newSelectionService(selector *selection.Selector, logger *zap.SugaredLogger) *selectionService {
	return &selectionService{selector: selector, logger: logger}
}

func (s *selectionService) GetInfo() *service.Info {
	return &service.Info{Name: "testsieve", Version: internal.Version.Version}
}

// SetFilters replaces the active filters, e.g. when the host reuses the
// process across runs.
func (s *selectionService) SetFilters(req *service.FiltersRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	selector, err := selection.NewSelector(selection.Filters{
		Tags:  req.Tags,
		Tests: req.Tests,
		Specs: req.Specs,
	}, s.logger)
	if err != nil {
		return err
	}

	s.selector = selector
	s.logger.Infow("Filters replaced",
		zap.String("tags", req.Tags), zap.String("tests", req.Tests), zap.String("specs", req.Specs))

	return nil
}

func (s *selectionService) FilterFile(req *service.FileRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.selector.IncludesFile(req.File), nil
}

func (s *selectionService) ShouldRun(req *service.TestRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.selector.BeginFile(req.File)
	for _, suite := range req.Suites {
		s.selector.EnterSuite(suite.Name, suite.Tags...)
	}

	return s.selector.ShouldRun(req.Name, req.Tags)
}

// Assert interface compliance.
var _ service.Service = (*selectionService)(nil)
