package petstore

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"mime"
	"net/http"
	"strings"
)

// Observe selects what a call hands back: the decoded payload or the full envelope.
type Observe int

const (
	ObserveBody Observe = iota
	ObserveResponse
)

func (o Observe) String() string {
	if o == ObserveResponse {
		return "response"
	}
	return "body"
}

// ParseObserve accepts "body" or "response".
func ParseObserve(s string) (Observe, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "body":
		return ObserveBody, nil
	case "response":
		return ObserveResponse, nil
	}
	return ObserveBody, fmt.Errorf("unknown observe mode %q", s)
}

// Response is the envelope returned by the XWithResponse methods.
type Response[T any] struct {
	StatusCode int
	Header     http.Header
	Payload    T
}

// Observe projects the envelope: the payload for ObserveBody, the envelope itself otherwise.
func (r *Response[T]) Observe(mode Observe) any {
	if mode == ObserveResponse {
		return r
	}
	return r.Payload
}

func decodePayload(opID string, body []byte, header http.Header, produces []string, out any) error {
	if len(body) == 0 {
		return nil
	}

	if raw, ok := out.(*[]byte); ok {
		*raw = append((*raw)[:0], body...)
		return nil
	}

	var err error
	if isXML(header.Get("Content-Type"), produces) {
		err = xml.Unmarshal(body, out)
	} else {
		err = json.Unmarshal(body, out)
	}
	if err != nil {
		return fmt.Errorf("decode %s response: %w", opID, err)
	}
	return nil
}

func isXML(contentType string, produces []string) bool {
	if contentType != "" {
		if mt, _, err := mime.ParseMediaType(contentType); err == nil {
			return strings.HasSuffix(mt, "xml")
		}
	}
	for _, p := range produces {
		if strings.Contains(p, "xml") {
			return true
		}
	}
	return false
}
