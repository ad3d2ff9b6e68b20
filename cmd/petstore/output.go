package main

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/samvad-hq/petstore-client/pkg/petstore"
)

type responseView struct {
	StatusCode int         `json:"status_code" yaml:"status_code"`
	Header     http.Header `json:"header" yaml:"header"`
	Payload    any         `json:"payload" yaml:"payload"`
}

// render writes an Invoke result in the requested format.
func render(w io.Writer, v any, format string) error {
	format = strings.ToLower(strings.TrimSpace(format))

	if env, ok := v.(*petstore.Response[any]); ok {
		if format == "xml" {
			if err := writeStatus(w, env.StatusCode, env.Header); err != nil {
				return err
			}
			return render(w, env.Payload, format)
		}
		v = responseView{StatusCode: env.StatusCode, Header: env.Header, Payload: rawAsString(env.Payload)}
	}
	if raw, ok := v.([]byte); ok {
		_, err := w.Write(raw)
		return err
	}

	var (
		out []byte
		err error
	)
	switch format {
	case "", "json":
		out, err = json.MarshalIndent(v, "", "  ")
	case "yaml", "yml":
		out, err = yaml.Marshal(v)
	case "xml":
		out, err = xml.MarshalIndent(v, "", "  ")
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("encode %s output: %w", format, err)
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}

func writeStatus(w io.Writer, status int, header http.Header) error {
	if _, err := fmt.Fprintf(w, "HTTP %d %s\n", status, http.StatusText(status)); err != nil {
		return err
	}
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s: %s\n", k, strings.Join(header[k], ", ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

func rawAsString(v any) any {
	if raw, ok := v.([]byte); ok {
		return string(raw)
	}
	return v
}
