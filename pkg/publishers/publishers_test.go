package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestLoadRegistryParsesBrokerSections(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.json")
	raw := `{
  "publishers": [
    {"id": " queue ", "type": "SQS", "sqs": {"uri": "http://localhost:4566/000000000000/pets", "region": "us-east-1", "endpoint": "http://localhost:4566"}},
    {"id": "topic", "type": "sns", "enabled": false, "sns": {"topic_arn": "arn:aws:sns:us-east-1:000000000000:pets", "region": "us-east-1"}},
    {"id": "gcp", "type": "pubsub", "pubsub": {"project_id": "demo", "topic": "pets"}},
    {"id": "hook", "type": "http", "http": {"url": "https://example.com/hook", "headers": {" X-A ": "1", "X-Empty": " "}}}
  ]
}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 4 {
		t.Fatalf("expected 4 publishers, got %d", len(reg.All()))
	}

	q, ok := reg.ByID("queue")
	if !ok || q.Type != TypeSQS || q.SQS.Endpoint != "http://localhost:4566" {
		t.Fatalf("unexpected sqs config %#v", q)
	}
	hook, _ := reg.ByID("hook")
	if hook.HTTP.Method != "POST" || hook.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("expected http defaults, got %#v", hook.HTTP)
	}
	if len(hook.HTTP.Headers) != 1 || hook.HTTP.Headers["X-A"] != "1" {
		t.Fatalf("expected sanitized headers, got %v", hook.HTTP.Headers)
	}
	if len(reg.Enabled()) != 3 {
		t.Fatalf("expected disabled sns entry to be filtered, got %d", len(reg.Enabled()))
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: dup
    type: http
    http: {url: https://example.com}
  - id: dup
    type: http
    http: {url: https://example.com/2}
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidatePublisherConfigBrokerFields(t *testing.T) {
	cases := []PublisherConfig{
		{ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{Region: "us-east-1"}},
		{ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "http://q"}},
		{ID: "t", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "us-east-1"}},
		{ID: "g", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "p"}},
		{ID: "g", Type: TypePubSub},
		{Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}
	for i, cfg := range cases {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Fatalf("case %d: expected validation error for %#v", i, cfg)
		}
	}
}
