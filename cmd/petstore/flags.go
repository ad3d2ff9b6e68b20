package main

import (
	"github.com/spf13/pflag"

	"github.com/samvad-hq/petstore-client/internal/config"
	"github.com/samvad-hq/petstore-client/internal/logger"
)

// newFlagSet returns a flag set carrying the config overrides every command accepts.
func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("petstore_base_path", "", "Petstore base URL")
	fs.String("petstore_access_token", "", "bearer token used when none is stored")
	fs.String("petstore_api_key", "", "value sent in the api_key header")
	fs.String("openapi_file", "", "Swagger 2.0 document to build the operation table from")
	fs.String("token_path", "", "bbolt file holding the stored bearer token")
	fs.Int64("http_timeout_seconds", 0, "request timeout in seconds")
	fs.String("log_level", "", "log level")
	return fs
}

// loadConfig parses args into fs and loads config with the changed flags on top.
func loadConfig(fs *pflag.FlagSet, args []string) (*config.Config, logger.Logger, error) {
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	changed := pflag.NewFlagSet(fs.Name(), pflag.ContinueOnError)
	fs.Visit(func(f *pflag.Flag) {
		changed.AddFlag(f)
	})

	cfg, err := config.LoadWithFlags(changed)
	if err != nil {
		return nil, nil, err
	}
	log, err := logger.Init(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}
