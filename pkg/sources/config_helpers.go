package sources

import (
	"sort"
	"strings"

	"github.com/samvad-hq/petstore-client/pkg/petstore"
)

// ConfigString returns the trimmed string value for key from source.Config or a fallback.
func ConfigString(src Source, key, fallback string) string {
	if src.Config != nil {
		if raw, ok := src.Config[key]; ok {
			if val, ok := raw.(string); ok {
				if trimmed := strings.TrimSpace(val); trimmed != "" {
					return trimmed
				}
			}
		}
	}
	return fallback
}

const (
	ConfigUserAgentKey = "user_agent"
	ConfigHeadersKey   = "headers"
)

// Headers builds the extra request headers declared for a source (skips empty values).
func Headers(src Source) map[string]string {
	headers := make(map[string]string, 2)

	if v := ConfigString(src, ConfigUserAgentKey, ""); v != "" {
		headers["User-Agent"] = v
	}
	if raw, ok := src.Config[ConfigHeadersKey].(map[string]any); ok {
		for k, v := range raw {
			s, ok := v.(string)
			if k = strings.TrimSpace(k); ok && k != "" && strings.TrimSpace(s) != "" {
				headers[k] = strings.TrimSpace(s)
			}
		}
	}
	return headers
}

// CallOptions turns the source headers into per-call client options.
func CallOptions(src Source) []petstore.CallOption {
	headers := Headers(src)
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opts := make([]petstore.CallOption, 0, len(keys))
	for _, k := range keys {
		opts = append(opts, petstore.WithHeader(k, headers[k]))
	}
	return opts
}
