package app

import (
	"fmt"
	"os"

	"github.com/samvad-hq/petstore-client/internal/config"
	"github.com/samvad-hq/petstore-client/internal/logger"
	"github.com/samvad-hq/petstore-client/internal/storage"
	"github.com/samvad-hq/petstore-client/pkg/httpclient"
	"github.com/samvad-hq/petstore-client/pkg/petstore"
)

// NewPetService builds the Petstore client from config. The bearer token is
// read from tokens on every call and falls back to the configured token.
func NewPetService(cfg *config.Config, tokens storage.TokenStore, log logger.Logger) (*petstore.PetService, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	log = logger.OrNop(log)

	ops, err := LoadOperations(cfg.OpenAPIFile)
	if err != nil {
		return nil, err
	}

	apiCfg := petstore.Configuration{
		BasePath:    cfg.PetstoreBasePath,
		AccessToken: tokenFunc(cfg, tokens, log),
	}
	if cfg.PetstoreAPIKey != "" {
		apiCfg.APIKeys = map[string]string{"api_key": cfg.PetstoreAPIKey}
	}

	transport := httpclient.NewRestyClient(cfg.HTTPTimeout)
	return petstore.NewPetService(transport, apiCfg,
		petstore.WithOperations(ops),
		petstore.WithLogger(log),
	), nil
}

// LoadOperations returns the dispatch table from an OpenAPI file, or the
// built-in table when path is empty.
func LoadOperations(path string) (petstore.OperationSet, error) {
	if path == "" {
		return petstore.PetOperations(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read openapi file: %w", err)
	}
	ops, err := petstore.OperationsFromOpenAPI(raw)
	if err != nil {
		return nil, fmt.Errorf("load operations from %s: %w", path, err)
	}
	return ops, nil
}

func tokenFunc(cfg *config.Config, tokens storage.TokenStore, log logger.Logger) petstore.TokenFunc {
	fallback := cfg.PetstoreAccessToken
	if tokens == nil {
		return petstore.StaticToken(fallback)
	}
	stored := storage.TokenSource(tokens, func(err error) {
		log.WarnObj("stored token unreadable", "token_error", err.Error())
	})
	return func() string {
		if tok := stored(); tok != "" {
			return tok
		}
		return fallback
	}
}
