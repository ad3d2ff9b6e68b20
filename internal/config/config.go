package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files, environment variables and flags.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`

	PetstoreBasePath    string        `mapstructure:"petstore_base_path"`
	PetstoreAccessToken string        `mapstructure:"petstore_access_token"`
	PetstoreAPIKey      string        `mapstructure:"petstore_api_key"`
	OpenAPIFile         string        `mapstructure:"openapi_file"`
	HTTPTimeoutSeconds  int64         `mapstructure:"http_timeout_seconds"`
	HTTPTimeout         time.Duration `mapstructure:"-"`

	SourcesFile         string        `mapstructure:"sources_file"`
	PublishersFile      string        `mapstructure:"publishers_file"`
	PollIntervalSeconds int64         `mapstructure:"poll_interval"`
	PollInterval        time.Duration `mapstructure:"-"`

	StorageType            string        `mapstructure:"storage_type"`
	BBoltPath              string        `mapstructure:"bbolt_path"`
	TokenPath              string        `mapstructure:"token_path"`
	SeenTTLSeconds         int64         `mapstructure:"seen_ttl_seconds"`
	StorageCleanupSeconds  int64         `mapstructure:"storage_cleanup_interval_seconds"`
	SeenTTL                time.Duration `mapstructure:"-"`
	StorageCleanupInterval time.Duration `mapstructure:"-"`

	TwinAddr string `mapstructure:"twin_addr"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	return LoadWithFlags(nil)
}

// LoadWithFlags is Load with command-line flags bound on top. Flag names use
// the config keys, so a set flag overrides the matching environment variable.
func LoadWithFlags(flags *pflag.FlagSet) (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "petstore-client")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("petstore_base_path", "http://petstore.swagger.io/v2")
	v.SetDefault("petstore_access_token", "")
	v.SetDefault("petstore_api_key", "")
	v.SetDefault("openapi_file", "")
	v.SetDefault("http_timeout_seconds", 15)
	v.SetDefault("sources_file", "./configs/sources.yaml")
	v.SetDefault("publishers_file", "./configs/publishers.yaml")
	v.SetDefault("poll_interval", 300) // seconds
	v.SetDefault("storage_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/petstore.db")
	v.SetDefault("token_path", "./data/petstore-token.db")
	v.SetDefault("seen_ttl_seconds", int64((24*time.Hour)/time.Second))
	v.SetDefault("storage_cleanup_interval_seconds", int64((6*time.Hour)/time.Second))
	v.SetDefault("twin_addr", ":8080")

	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.HTTPTimeoutSeconds <= 0 {
		return nil, fmt.Errorf("invalid http_timeout_seconds (must be positive seconds)")
	}
	cfg.HTTPTimeout = time.Duration(cfg.HTTPTimeoutSeconds) * time.Second

	if cfg.PollIntervalSeconds <= 0 {
		return nil, fmt.Errorf("invalid poll_interval (must be positive seconds)")
	}
	cfg.PollInterval = time.Duration(cfg.PollIntervalSeconds) * time.Second

	if cfg.SeenTTLSeconds <= 0 {
		return nil, fmt.Errorf("invalid seen_ttl_seconds (must be positive seconds)")
	}
	if cfg.StorageCleanupSeconds <= 0 {
		return nil, fmt.Errorf("invalid storage_cleanup_interval_seconds (must be positive seconds)")
	}
	cfg.SeenTTL = time.Duration(cfg.SeenTTLSeconds) * time.Second
	cfg.StorageCleanupInterval = time.Duration(cfg.StorageCleanupSeconds) * time.Second

	return &cfg, nil
}
