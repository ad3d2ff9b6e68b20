package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
}

// NewRestyClient creates a new RestyClient with the specified timeout.
func NewRestyClient(timeout time.Duration) *RestyClient {
	return &RestyClient{client: newRestyBaseClient(timeout)}
}

// NewRestyHTTPClient exposes a configured resty.Client for callers needing custom verbs.
func NewRestyHTTPClient(timeout time.Duration) *resty.Client {
	return newRestyBaseClient(timeout)
}

// newRestyBaseClient creates a new resty.Client with the specified timeout.
func newRestyBaseClient(timeout time.Duration) *resty.Client {
	c := resty.New()
	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	return c
}

// Get performs an HTTP GET request with the specified context, URL, and headers.
func (r *RestyClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.do(ctx, http.MethodGet, url, nil, headers)
}

// Post performs an HTTP POST request carrying body.
func (r *RestyClient) Post(ctx context.Context, url string, body []byte, headers map[string]string) (Response, error) {
	return r.do(ctx, http.MethodPost, url, body, headers)
}

// Put performs an HTTP PUT request carrying body.
func (r *RestyClient) Put(ctx context.Context, url string, body []byte, headers map[string]string) (Response, error) {
	return r.do(ctx, http.MethodPut, url, body, headers)
}

// Delete performs an HTTP DELETE request.
func (r *RestyClient) Delete(ctx context.Context, url string, headers map[string]string) (Response, error) {
	return r.do(ctx, http.MethodDelete, url, nil, headers)
}

func (r *RestyClient) do(ctx context.Context, method, url string, body []byte, headers map[string]string) (Response, error) {
	req := r.client.R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, url)
	if err != nil {
		return nil, fmt.Errorf("http %s %s: %w", method, url, err)
	}
	if code := resp.StatusCode(); code < http.StatusOK || code >= http.StatusMultipleChoices {
		return nil, &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: code,
			Header:     resp.Header(),
			Body:       resp.Body(),
		}
	}
	return &restyResponseAdapter{resp: resp}, nil
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte        { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int     { return r.resp.StatusCode() }
func (r *restyResponseAdapter) Header() http.Header { return r.resp.Header() }
