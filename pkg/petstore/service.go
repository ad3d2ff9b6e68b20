package petstore

import (
	"context"
	"fmt"
	"net/http"
	"reflect"

	"github.com/samvad-hq/petstore-client/internal/domain"
	"github.com/samvad-hq/petstore-client/pkg/httpclient"
)

// PetService is the resource client for /pet. It holds no per-call state and
// is safe for concurrent use.
type PetService struct {
	transport httpclient.Client
	cfg       Configuration
	ops       OperationSet
	log       Logger
}

// Option customises a PetService.
type Option func(*PetService)

// WithLogger sets the logger used for per-call debug records. Any
// internal/logger.Logger satisfies it.
func WithLogger(l Logger) Option {
	return func(s *PetService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithOperations replaces the dispatch table, e.g. with one derived from an OpenAPI document.
func WithOperations(ops OperationSet) Option {
	return func(s *PetService) {
		if len(ops) > 0 {
			s.ops = ops
		}
	}
}

// CallOption customises a single call.
type CallOption func(*callOptions)

type callOptions struct {
	headers map[string]string
}

// WithHeader adds an extra request header. Operation headers and auth win on conflict.
func WithHeader(key, value string) CallOption {
	return func(o *callOptions) {
		if o.headers == nil {
			o.headers = make(map[string]string)
		}
		o.headers[key] = value
	}
}

// NewPetService wires a transport and configuration into a client.
func NewPetService(transport httpclient.Client, cfg Configuration, opts ...Option) *PetService {
	s := &PetService{
		transport: transport,
		cfg:       cfg.normalize(),
		ops:       PetOperations(),
		log:       noopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Operations exposes the dispatch table in use.
func (s *PetService) Operations() OperationSet { return s.ops }

// BasePath is the normalized base URL requests are sent to.
func (s *PetService) BasePath() string { return s.cfg.BasePath }

// execute is the one routine every operation goes through.
func (s *PetService) execute(ctx context.Context, op Operation, args Args, opts ...CallOption) (httpclient.Response, error) {
	var co callOptions
	for _, opt := range opts {
		opt(&co)
	}

	req, err := buildRequest(s.cfg, op, args, co.headers)
	if err != nil {
		return nil, err
	}

	var resp httpclient.Response
	switch req.method {
	case http.MethodGet:
		resp, err = s.transport.Get(ctx, req.url, req.headers)
	case http.MethodPost:
		resp, err = s.transport.Post(ctx, req.url, req.body, req.headers)
	case http.MethodPut:
		resp, err = s.transport.Put(ctx, req.url, req.body, req.headers)
	case http.MethodDelete:
		resp, err = s.transport.Delete(ctx, req.url, req.headers)
	default:
		return nil, fmt.Errorf("operation %s: unsupported method %s", op.ID, req.method)
	}
	if err != nil {
		s.log.DebugObj("petstore call failed", "petstore_call", map[string]any{
			"operation": op.ID,
			"method":    req.method,
			"url":       req.url,
			"error":     err.Error(),
		})
		return nil, err
	}
	s.log.DebugObj("petstore call", "petstore_call", map[string]any{
		"operation": op.ID,
		"method":    req.method,
		"url":       req.url,
		"status":    resp.StatusCode(),
	})
	return resp, nil
}

func call[T any](ctx context.Context, s *PetService, opID string, args Args, opts ...CallOption) (*Response[T], error) {
	op, err := s.ops.Lookup(opID)
	if err != nil {
		return nil, err
	}
	resp, err := s.execute(ctx, op, args, opts...)
	if err != nil {
		return nil, err
	}

	out := &Response[T]{StatusCode: resp.StatusCode(), Header: resp.Header()}
	if err := decodePayload(op.ID, resp.Body(), out.Header, op.Produces, &out.Payload); err != nil {
		return nil, err
	}
	return out, nil
}

func bodyOf[T any](r *Response[T], err error) (T, error) {
	if err != nil {
		var zero T
		return zero, err
	}
	return r.Payload, nil
}

// resultTypes maps operation ids to the payload type Invoke decodes into.
var resultTypes = map[string]func() any{
	OpAddPet:            func() any { return new(domain.Pet) },
	OpDeletePet:         func() any { return new(domain.ApiResponse) },
	OpFindPetsByStatus:  func() any { return new(domain.Pets) },
	OpFindPetsByTags:    func() any { return new(domain.Pets) },
	OpGetPetByID:        func() any { return new(domain.Pet) },
	OpUpdatePet:         func() any { return new(domain.Pet) },
	OpUpdatePetWithForm: func() any { return new(domain.ApiResponse) },
	OpUploadFile:        func() any { return new(domain.ApiResponse) },
}

// Invoke runs any operation in the table by id. mode selects between the
// decoded payload and a *Response[any] envelope. Operations without a known
// payload type yield the raw body bytes.
func (s *PetService) Invoke(ctx context.Context, opID string, args Args, mode Observe, opts ...CallOption) (any, error) {
	op, err := s.ops.Lookup(opID)
	if err != nil {
		return nil, err
	}
	resp, err := s.execute(ctx, op, args, opts...)
	if err != nil {
		return nil, err
	}

	var target any = new([]byte)
	if newResult, ok := resultTypes[op.ID]; ok {
		target = newResult()
	}
	if err := decodePayload(op.ID, resp.Body(), resp.Header(), op.Produces, target); err != nil {
		return nil, err
	}

	env := &Response[any]{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Payload:    reflect.ValueOf(target).Elem().Interface(),
	}
	return env.Observe(mode), nil
}
