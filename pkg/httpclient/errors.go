package httpclient

import (
	"fmt"
	"net/http"
	"strings"
)

const maxErrorSnippet = 512

// StatusError reports a response outside the 2xx range. The response is kept so
// callers can inspect the server's answer.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, bodySnippet(e.Body, e.StatusCode))
}

func bodySnippet(body []byte, status int) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return http.StatusText(status)
	}
	if len(s) > maxErrorSnippet {
		return s[:maxErrorSnippet] + "..."
	}
	return s
}
