package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRestyClientSendsHeadersAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "1" {
			t.Errorf("missing header, got %q", got)
		}
		raw, _ := io.ReadAll(r.Body)
		if string(raw) != `{"name":"doggie"}` {
			t.Errorf("unexpected body %q", raw)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := NewRestyClient(2 * time.Second)
	resp, err := client.Put(context.Background(), srv.URL, []byte(`{"name":"doggie"}`), map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if resp.StatusCode() != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode())
	}
	if string(resp.Body()) != `{"ok":true}` {
		t.Fatalf("unexpected body %q", resp.Body())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
}

func TestRestyClientReturnsStatusErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "Pet not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewRestyClient(time.Second)
	_, err := client.Delete(context.Background(), srv.URL+"/pet/1", nil)
	if err == nil {
		t.Fatalf("expected error on 404")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if statusErr.StatusCode != http.StatusNotFound || statusErr.Method != http.MethodDelete {
		t.Fatalf("unexpected status error %+v", statusErr)
	}
}

func TestBodySnippetFallsBackToStatusText(t *testing.T) {
	if got := bodySnippet(nil, http.StatusBadRequest); got != "Bad Request" {
		t.Fatalf("bodySnippet returned %q", got)
	}
	long := make([]byte, maxErrorSnippet+20)
	for i := range long {
		long[i] = 'x'
	}
	if got := bodySnippet(long, http.StatusInternalServerError); len(got) != maxErrorSnippet+3 {
		t.Fatalf("expected truncated snippet, got %d chars", len(got))
	}
}
