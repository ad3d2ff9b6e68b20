package sources

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Package sources declares the pet searches the watcher runs (YAML/JSON) and
// the fetchers that execute them against the Petstore.

const (
	TypeByStatus = "by_status"
	TypeByTags   = "by_tags"
)

// Source is one declared search.
type Source struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Type           string         `json:"type" yaml:"type"`
	Values         []string       `json:"values" yaml:"values"`
	Enrich         bool           `json:"enrich" yaml:"enrich"`
	RequestDelayMs int            `json:"request_delay_ms" yaml:"request_delay_ms"`
	Config         map[string]any `json:"config" yaml:"config"`
}

type registryFile struct {
	Sources []Source `json:"sources" yaml:"sources"`
}

// Registry holds the validated sources in file order.
type Registry struct {
	sources []Source
	byID    map[string]Source
}

var defaultRequestDelayMs = 250

// LoadRegistry loads the sources registry from file.
func LoadRegistry(path string) (*Registry, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sources file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}
	return ParseRegistry(raw, filepath.Ext(path))
}

// ParseRegistry decodes and validates a registry document. ext selects the
// decoder (".yaml", ".yml", ".json"); empty tries each in turn.
func ParseRegistry(data []byte, ext string) (*Registry, error) {
	file, err := decodeRegistry(data, ext)
	if err != nil {
		return nil, err
	}
	if len(file.Sources) == 0 {
		return nil, errors.New("sources file contains no sources entries")
	}

	reg := &Registry{byID: make(map[string]Source, len(file.Sources))}
	for i := range file.Sources {
		s := sanitizeSource(file.Sources[i])
		if err := validateSource(s); err != nil {
			return nil, fmt.Errorf("source[%d]: %w", i, err)
		}
		if _, exists := reg.byID[s.ID]; exists {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		reg.sources = append(reg.sources, s)
		reg.byID[s.ID] = s
	}
	return reg, nil
}

// All returns a copy of the loaded sources.
func (r *Registry) All() []Source {
	if r == nil || len(r.sources) == 0 {
		return nil
	}
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// ByID returns the source entry for the given id.
func (r *Registry) ByID(id string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	s, ok := r.byID[strings.TrimSpace(id)]
	return s, ok
}

type unmarshalFn func([]byte, any) error

func decodeRegistry(data []byte, ext string) (registryFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   unmarshalFn
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var file registryFile
		if err := d.fn(data, &file); err == nil {
			return file, nil
		}
	}
	return registryFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

func sanitizeSource(s Source) Source {
	s.ID = strings.TrimSpace(s.ID)
	s.Name = strings.TrimSpace(s.Name)
	s.Type = strings.ToLower(strings.TrimSpace(s.Type))

	values := make([]string, 0, len(s.Values))
	for _, v := range s.Values {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	s.Values = values

	if s.Config == nil {
		s.Config = map[string]any{}
	}
	if s.RequestDelayMs <= 0 {
		s.RequestDelayMs = defaultRequestDelayMs
	}
	return s
}

func validateSource(s Source) error {
	if s.ID == "" {
		return errors.New("id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("name is required for source %q", s.ID)
	}
	if s.Type == "" {
		return fmt.Errorf("type is required for source %q", s.ID)
	}
	if len(s.Values) == 0 {
		return fmt.Errorf("values are required for source %q", s.ID)
	}
	return nil
}

// RequestDelay returns the per-request throttle used while enriching this source's hits.
func (s Source) RequestDelay() time.Duration {
	if s.RequestDelayMs <= 0 {
		return time.Duration(defaultRequestDelayMs) * time.Millisecond
	}
	return time.Duration(s.RequestDelayMs) * time.Millisecond
}
