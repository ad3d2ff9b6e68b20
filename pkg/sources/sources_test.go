package sources

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadRegistryYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sources.yaml")
	content := `
sources:
  - id: available-dogs
    name: Available pets
    type: by_status
    values: [available, " pending "]
    enrich: true
    request_delay_ms: 750
    config:
      user_agent: petwatch/1.0
      headers:
        X-Team: adoption
  - id: friendly
    name: Friendly tag
    type: BY_TAGS
    values: [friendly]
`
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		t.Fatalf("write sources file: %v", err)
	}

	reg, err := LoadRegistry(file)
	if err != nil {
		t.Fatalf("LoadRegistry returned error: %v", err)
	}
	if got := len(reg.All()); got != 2 {
		t.Fatalf("expected 2 sources, got %d", got)
	}

	s, ok := reg.ByID("available-dogs")
	if !ok {
		t.Fatalf("expected source available-dogs to be loaded")
	}
	if len(s.Values) != 2 || s.Values[1] != "pending" {
		t.Fatalf("unexpected values: %#v", s.Values)
	}
	if !s.Enrich {
		t.Fatalf("expected enrich to be set")
	}
	if s.RequestDelay() != 750*time.Millisecond {
		t.Fatalf("unexpected request delay: %v", s.RequestDelay())
	}
	headers := Headers(s)
	if headers["User-Agent"] != "petwatch/1.0" || headers["X-Team"] != "adoption" {
		t.Fatalf("unexpected headers: %#v", headers)
	}
	if len(CallOptions(s)) != 2 {
		t.Fatalf("expected 2 call options")
	}

	tags, _ := reg.ByID("friendly")
	if tags.Type != TypeByTags {
		t.Fatalf("expected type to be normalized, got %q", tags.Type)
	}
	if tags.RequestDelay() != time.Duration(defaultRequestDelayMs)*time.Millisecond {
		t.Fatalf("expected default delay, got %v", tags.RequestDelay())
	}
}

func TestParseRegistryJSON(t *testing.T) {
	reg, err := ParseRegistry([]byte(`{"sources":[{"id":"sold","name":"Sold","type":"by_status","values":["sold"]}]}`), ".json")
	if err != nil {
		t.Fatalf("ParseRegistry: %v", err)
	}
	if _, ok := reg.ByID("sold"); !ok {
		t.Fatalf("expected source sold")
	}
}

func TestParseRegistryValidation(t *testing.T) {
	cases := map[string]string{
		"duplicate id": `
sources:
  - {id: a, name: A, type: by_status, values: [sold]}
  - {id: a, name: B, type: by_tags, values: [x]}
`,
		"missing values": `
sources:
  - {id: a, name: A, type: by_status, values: ["  "]}
`,
		"missing type": `
sources:
  - {id: a, name: A, values: [sold]}
`,
		"empty": `sources: []`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseRegistry([]byte(content), ".yaml"); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
