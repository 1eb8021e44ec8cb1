// Package service implements the stdio protocol a host test runner
// uses to keep a resident selection engine: it spawns the binary with
// --serve, writes rpc.Request lines to its stdin and reads rpc.Response
// lines from its stdout.
package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/testsieve/testsieve/pkg/rpc"
)

// List of the supported service methods.
const (
	MethodGetInfo    = "GetInfo"
	MethodSetFilters = "SetFilters"
	MethodFilterFile = "FilterFile"
	MethodShouldRun  = "ShouldRun"
)

// Info describes the running selection service.
type Info struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// FiltersRequest carries the raw filter strings for a run.
// Empty fields place no restriction.
type FiltersRequest struct {
	Tags  string `json:"tags"`
	Tests string `json:"tests"`
	Specs string `json:"specs"`
}

// FileRequest asks whether any test of a spec file could run at all.
type FileRequest struct {
	File string `json:"file"`
}

// SuiteRef is one enclosing suite of a candidate test.
type SuiteRef struct {
	Name string   `json:"name"`
	Tags []string `json:"tags,omitempty"`
}

// TestRequest identifies one candidate test: its spec file, the
// enclosing suites outermost first, its name and its own declared tags.
type TestRequest struct {
	File   string     `json:"file"`
	Suites []SuiteRef `json:"suites,omitempty"`
	Name   string     `json:"name"`
	Tags   []string   `json:"tags,omitempty"`
}

// Decision is the boolean answer to a FilterFile or ShouldRun request.
type Decision struct {
	Include bool `json:"include"`
}

// Service is implemented by the selection engine served via RunService.
type Service interface {
	GetInfo() *Info
	SetFilters(req *FiltersRequest) error
	FilterFile(req *FileRequest) (bool, error)
	ShouldRun(req *TestRequest) (bool, error)
}

// RunService reads requests from reader and answers them on writer
// until the host closes its end. Requests are handled strictly in
// order, so a host driving a suite walk sees decisions for the tests
// it just announced.
func RunService(service Service, reader io.Reader, writer io.Writer) error {
	decoder := json.NewDecoder(reader)
	encoder := json.NewEncoder(writer)

	for {
		var request rpc.Request
		if err := decoder.Decode(&request); err != nil {
			if errors.Is(err, io.EOF) {
				// host shut us down
				return nil
			}

			return fmt.Errorf("failed to read request: %w", err)
		}

		response := dispatch(service, request)
		if err := encoder.Encode(response); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
}

func dispatch(service Service, request rpc.Request) rpc.Response {
	response := rpc.Response{Id: request.Id}

	switch request.Method {
	case MethodGetInfo:
		result, err := json.Marshal(service.GetInfo())
		if err != nil {
			response.Error = fmt.Errorf("failed to collect service info: %w", err).Error()
		} else {
			response.Result = result
		}

	case MethodSetFilters:
		var fr FiltersRequest
		if err := json.Unmarshal(request.Params, &fr); err != nil {
			response.Error = fmt.Errorf("failed to json.Unmarshal request: %w", err).Error()
		} else if err := service.SetFilters(&fr); err != nil {
			response.Error = err.Error()
		}

	case MethodFilterFile:
		var fr FileRequest
		if err := json.Unmarshal(request.Params, &fr); err != nil {
			response.Error = fmt.Errorf("failed to json.Unmarshal request: %w", err).Error()
		} else if include, err := service.FilterFile(&fr); err != nil {
			response.Error = err.Error()
		} else {
			response.Result, _ = json.Marshal(Decision{Include: include})
		}

	case MethodShouldRun:
		var tr TestRequest
		if err := json.Unmarshal(request.Params, &tr); err != nil {
			response.Error = fmt.Errorf("failed to json.Unmarshal request: %w", err).Error()
		} else if include, err := service.ShouldRun(&tr); err != nil {
			response.Error = err.Error()
		} else {
			response.Result, _ = json.Marshal(Decision{Include: include})
		}

	default:
		response.Error = fmt.Sprintf("unknown method: %q", request.Method)
	}

	return response
}
