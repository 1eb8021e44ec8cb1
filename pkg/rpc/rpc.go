package rpc

import (
	"encoding/json"
	"errors"
	"fmt"
	"go.uber.org/zap"
	"io"
	"sync"
)

// Request is one method call sent to the selection service.
type Request struct {
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Id     uint64          `json:"id"`
}

// Response answers exactly one Request, identified by Id.
type Response struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Id     uint64          `json:"id"`
}

// Error is a fatal transport error. Once it occurred, the RPC instance
// is unusable and a new one has to be created.
type Error struct {
	cause error
}

func (err *Error) Error() string {
	return fmt.Sprintf("RPC error: %s", err.cause.Error())
}

func (err *Error) Unwrap() error {
	return err.cause
}

// RPC is the host side of the selection service protocol: newline
// delimited JSON requests and responses over an io pair, typically the
// stdin/stdout of a testsieve subprocess running with --serve.
//
// Calls may be issued from multiple goroutines; responses are matched
// back to their requests by id.
type RPC struct {
	writer    io.Closer // use encoder for writing instead
	encoder   *json.Encoder
	encoderMu sync.Mutex

	decoder *json.Decoder
	logger  *zap.SugaredLogger

	pendingRequests map[uint64]chan Response
	lastRequestId   uint64
	requestsMu      sync.Mutex

	errChannel chan struct{} // never transports a value, only closed through setErr() to signal an occurred error
	err        *Error        // only initialized via setErr(), if a fatal (non-recoverable) error has occurred
	errMu      sync.Mutex
}

// NewRPC creates and returns an RPC instance reading responses from
// reader and writing requests to writer.
func NewRPC(writer io.WriteCloser, reader io.Reader, logger *zap.SugaredLogger) *RPC {
	rpc := &RPC{
		writer:          writer,
		encoder:         json.NewEncoder(writer),
		decoder:         json.NewDecoder(reader),
		pendingRequests: map[uint64]chan Response{},
		logger:          logger,
		errChannel:      make(chan struct{}),
	}

	go rpc.processResponses()

	return rpc
}

// Call sends a request with the given parameters and blocks until its
// response arrives. Returns the Response.Result or an error.
//
// Two different kinds of error can be returned:
//   - rpc.Error: Communication failed and future calls on this instance won't work.
//   - Response.Error: The service answered with an error (non-fatal for the RPC object).
func (r *RPC) Call(method string, params json.RawMessage) (json.RawMessage, error) {
	if err := r.Err(); err != nil {
		return nil, err
	}

	promise := make(chan Response, 1)

	r.requestsMu.Lock()
	r.lastRequestId++
	newId := r.lastRequestId
	r.pendingRequests[newId] = promise
	r.requestsMu.Unlock()

	r.encoderMu.Lock()
	err := r.encoder.Encode(Request{Method: method, Params: params, Id: newId})
	r.encoderMu.Unlock()
	if err != nil {
		r.setErr(fmt.Errorf("failed to write request: %w", err))

		return nil, r.Err()
	}

	select {
	case response := <-promise:
		if response.Error != "" {
			return nil, errors.New(response.Error)
		}

		return response.Result, nil

	case <-r.errChannel:
		return nil, r.Err()
	}
}

// Err returns the fatal error of this instance, if any occurred yet.
func (r *RPC) Err() error {
	select {
	case <-r.errChannel:
		return r.err
	default:
		return nil
	}
}

// Close closes the request writer, which a well-behaved service answers
// by shutting down.
func (r *RPC) Close() error {
	r.encoderMu.Lock()
	defer r.encoderMu.Unlock()

	return r.writer.Close()
}

func (r *RPC) setErr(err error) {
	r.errMu.Lock()
	defer r.errMu.Unlock()

	if r.err == nil {
		r.err = &Error{cause: err}
		close(r.errChannel)
	}
}

// processResponses delivers responses to their promise channel,
// identified by response id. In case of any error, all pending
// requests are dropped.
func (r *RPC) processResponses() {
	defer func() {
		r.requestsMu.Lock()
		r.logger.Infof("dropping %d pending request(s)", len(r.pendingRequests))
		r.pendingRequests = nil
		r.requestsMu.Unlock()
	}()

	for r.Err() == nil {
		var response Response
		if err := r.decoder.Decode(&response); err != nil {
			if !errors.Is(err, io.EOF) { // not a service shutdown
				r.setErr(fmt.Errorf("failed to decode json response: %w", err))
			}

			return
		}

		r.requestsMu.Lock()
		promise := r.pendingRequests[response.Id]
		delete(r.pendingRequests, response.Id)
		r.requestsMu.Unlock()

		if promise != nil {
			promise <- response
		} else {
			r.logger.Warn("Ignored response for unknown ID:", response.Id)
		}
	}
}
