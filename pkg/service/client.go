package service

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/testsieve/testsieve/pkg/rpc"
	"go.uber.org/zap"
)

// Client is the host side of the selection protocol. It drives a
// Service answered by RunService, typically over the stdin/stdout pipes
// of a subprocess running with --serve, and may be shared between
// goroutines.
type Client struct {
	rpc *rpc.RPC
}

// NewClient returns a new Client writing requests to writer and reading
// responses from reader.
func NewClient(writer io.WriteCloser, reader io.Reader, logger *zap.SugaredLogger) *Client {
	return &Client{rpc: rpc.NewRPC(writer, reader, logger)}
}

// GetInfo fetches name and version of the serving selection engine.
func (c *Client) GetInfo() (*Info, error) {
	result, err := c.rpc.Call(MethodGetInfo, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service info: %w", err)
	}

	info := new(Info)
	if err := json.Unmarshal(result, info); err != nil {
		return nil, fmt.Errorf("failed to json.Unmarshal service info: %w", err)
	}

	return info, nil
}

// SetFilters replaces the service's active filters, e.g. when the host
// reuses the process across runs.
func (c *Client) SetFilters(req *FiltersRequest) error {
	params, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to json.Marshal filters: %w", err)
	}

	_, err = c.rpc.Call(MethodSetFilters, params)

	return err
}

// FilterFile reports whether any test of the given spec file could run
// at all, for file-level pre-filtering.
func (c *Client) FilterFile(file string) (bool, error) {
	return c.decide(MethodFilterFile, &FileRequest{File: file})
}

// ShouldRun reports whether the given candidate test should execute.
func (c *Client) ShouldRun(req *TestRequest) (bool, error) {
	return c.decide(MethodShouldRun, req)
}

func (c *Client) decide(method string, req interface{}) (bool, error) {
	params, err := json.Marshal(req)
	if err != nil {
		return false, fmt.Errorf("failed to json.Marshal request: %w", err)
	}

	result, err := c.rpc.Call(method, params)
	if err != nil {
		return false, err
	}

	var decision Decision
	if err := json.Unmarshal(result, &decision); err != nil {
		return false, fmt.Errorf("failed to json.Unmarshal decision: %w", err)
	}

	return decision.Include, nil
}

// Close closes the request writer, asking the service to shut down.
func (c *Client) Close() error {
	return c.rpc.Close()
}
