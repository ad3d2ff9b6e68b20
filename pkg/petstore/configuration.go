package petstore

import "strings"

// DefaultBasePath is used when Configuration.BasePath is empty.
const DefaultBasePath = "http://petstore.swagger.io/v2"

// TokenFunc yields the bearer token for a request. It is called on every
// request that requires bearer auth, so rotating tokens are picked up.
type TokenFunc func() string

// StaticToken wraps a fixed token.
func StaticToken(token string) TokenFunc {
	return func() string { return token }
}

// Configuration holds the client-wide settings injected into every resource client.
type Configuration struct {
	BasePath    string
	AccessToken TokenFunc
	// APIKeys maps a security definition name (e.g. "api_key") to its value.
	APIKeys map[string]string
}

// normalize returns a private copy so later changes by the caller do not leak in.
func (c Configuration) normalize() Configuration {
	out := Configuration{
		BasePath:    strings.TrimRight(strings.TrimSpace(c.BasePath), "/"),
		AccessToken: c.AccessToken,
	}
	if out.BasePath == "" {
		out.BasePath = DefaultBasePath
	}
	if len(c.APIKeys) > 0 {
		out.APIKeys = make(map[string]string, len(c.APIKeys))
		for k, v := range c.APIKeys {
			out.APIKeys[k] = v
		}
	}
	return out
}

func (c Configuration) token() (string, bool) {
	if c.AccessToken == nil {
		return "", false
	}
	tok := c.AccessToken()
	return tok, tok != ""
}

func (c Configuration) apiKey(name string) (string, bool) {
	v, ok := c.APIKeys[name]
	return v, ok && v != ""
}
