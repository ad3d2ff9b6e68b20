package httpclient

import (
	"context"
	"net/http"
)

//go:generate mockgen -source=interfaces.go -destination=mock/transport_mock.go -package=mock

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// Bodies are sent as-is; encoding them is the caller's job.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
	Post(ctx context.Context, url string, body []byte, headers map[string]string) (Response, error)
	Put(ctx context.Context, url string, body []byte, headers map[string]string) (Response, error)
	Delete(ctx context.Context, url string, headers map[string]string) (Response, error)
}
