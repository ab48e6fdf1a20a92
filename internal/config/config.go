package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"edgetrans/internal/chunk"
	"edgetrans/internal/client"
	"edgetrans/internal/pacer"
	"edgetrans/internal/translate"
	"edgetrans/internal/util"
)

var validate = validator.New()

type Config struct {
	Endpoint  EndpointConfig  `yaml:"endpoint"`
	Translate TranslateConfig `yaml:"translate"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
}

type EndpointConfig struct {
	AuthURL       string `yaml:"auth_url" validate:"required,url"`
	TranslateURL  string `yaml:"translate_url" validate:"required,url"`
	APIVersion    string `yaml:"api_version" validate:"required"`
	TimeoutSecond int    `yaml:"timeout_second" validate:"min=1"`
}

type TranslateConfig struct {
	ChunkSize          int `yaml:"chunk_size" validate:"min=1,max=1000"`
	Retry              int `yaml:"retry" validate:"min=0"`
	CushionMs          int `yaml:"cushion_ms" validate:"min=0"`
	CooldownSecond     int `yaml:"cooldown_second" validate:"min=0"`
	MaxThrottleRetries int `yaml:"max_throttle_retries" validate:"min=1"`
	MaxConcurrent      int `yaml:"max_concurrent" validate:"min=0"`
	RequestsPerMinute  int `yaml:"requests_per_minute" validate:"min=0"`
}

type CacheConfig struct {
	// MaxCost is counted in translated items; 0 disables the cache.
	MaxCost   int64 `yaml:"max_cost" validate:"min=0"`
	TTLSecond int   `yaml:"ttl_second" validate:"min=0"`
}

type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	File  string `yaml:"file"`
}

func Default() Config {
	return Config{
		Endpoint: EndpointConfig{
			AuthURL:       client.DefaultAuthURL,
			TranslateURL:  client.DefaultTranslateURL,
			APIVersion:    client.DefaultAPIVersion,
			TimeoutSecond: int(client.DefaultTimeout / time.Second),
		},
		Translate: TranslateConfig{
			ChunkSize:          chunk.DefaultSize,
			Retry:              translate.DefaultRetry,
			CushionMs:          int(pacer.DefaultCushion / time.Millisecond),
			CooldownSecond:     int(translate.DefaultCooldown / time.Second),
			MaxThrottleRetries: translate.DefaultMaxThrottleRetries,
		},
		Log: LogConfig{Level: "info"},
	}
}

func ResolvePath(input string) (string, error) {
	if input != "" {
		return util.ExpandHome(input)
	}
	return util.DefaultConfigPath()
}

// Load reads path over Default. A missing file is not an error and nothing
// is written; use Save to create one.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (value %v)", fe.Namespace(), fe.ActualTag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c Config) Endpoints() client.Endpoints {
	return client.Endpoints{
		AuthURL:      c.Endpoint.AuthURL,
		TranslateURL: c.Endpoint.TranslateURL,
		APIVersion:   c.Endpoint.APIVersion,
	}
}

func (c Config) Timeout() time.Duration {
	return time.Duration(c.Endpoint.TimeoutSecond) * time.Second
}

// TranslateOptions maps the file settings onto translator options. Token and
// Logger are left for the caller.
func (c Config) TranslateOptions() translate.Options {
	t := c.Translate
	return translate.Options{
		ChunkSize:          t.ChunkSize,
		Retry:              t.Retry,
		Cushion:            time.Duration(t.CushionMs) * time.Millisecond,
		Cooldown:           time.Duration(t.CooldownSecond) * time.Second,
		MaxThrottleRetries: t.MaxThrottleRetries,
		MaxConcurrent:      t.MaxConcurrent,
		RequestsPerMinute:  t.RequestsPerMinute,
		CacheMaxCost:       c.Cache.MaxCost,
		CacheTTL:           time.Duration(c.Cache.TTLSecond) * time.Second,
	}
}
